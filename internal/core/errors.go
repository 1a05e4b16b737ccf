package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a record id does not exist in the collection.
	ErrNotFound = errors.New("record not found")

	// ErrSyncDisabled is returned by sync operations when no backend is configured.
	ErrSyncDisabled = errors.New("sync backend not configured")

	// ErrEmptyFile is wrapped in a ParseError when a file has no header row.
	ErrEmptyFile = errors.New("empty file")
)

// FormatError reports an upload whose extension is not a supported format.
type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	if e.Ext == "" {
		return "unsupported file format: missing extension"
	}
	return fmt.Sprintf("unsupported file format %q", e.Ext)
}

// ParseError reports file content that could not be read as the declared format.
type ParseError struct {
	Format string // "csv" or "xlsx"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is a single field-level rule violation.
type ValidationError struct {
	Row     int    `json:"row"`             // 1-based source row, header is row 1
	Field   string `json:"field"`           // Column name
	Value   string `json:"value,omitempty"` // The offending value, if any
	Message string `json:"message"`         // Human-readable message
}

func (e ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every violation found in a batch.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + ve[0].Error()
	}
	parts := make([]string, 0, 3)
	for i := 0; i < len(ve) && i < 3; i++ {
		parts = append(parts, ve[i].Error())
	}
	msg := fmt.Sprintf("validation failed with %d errors: %s", len(ve), strings.Join(parts, "; "))
	if len(ve) > 3 {
		msg += "; ..."
	}
	return msg
}

// Rows returns the distinct row numbers that have at least one error.
func (ve ValidationErrors) Rows() []int {
	seen := make(map[int]bool)
	var rows []int
	for _, e := range ve {
		if !seen[e.Row] {
			seen[e.Row] = true
			rows = append(rows, e.Row)
		}
	}
	return rows
}

// DuplicateError describes a row whose email is already taken.
// It is used as a skip reason and a single-shot validation message, never as a hard failure.
type DuplicateError struct {
	Email    string
	ExistsID int // Existing record id, 0 when the clash is with an earlier row
	ClashRow int // Earlier row in the same file, 0 when the clash is with the collection
}

func (e *DuplicateError) Error() string {
	switch {
	case e.ExistsID > 0:
		return fmt.Sprintf("duplicate email %q: already used by record %d", e.Email, e.ExistsID)
	case e.ClashRow > 0:
		return fmt.Sprintf("duplicate email %q: already used on row %d", e.Email, e.ClashRow)
	default:
		return fmt.Sprintf("duplicate email %q", e.Email)
	}
}
