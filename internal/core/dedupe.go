package core

// dedupe.go implements the batch import classification.
//
// Each row lands in exactly one bucket, checked in this order:
//
//  1. failed:    name, email, or practiceAreas is blank (reduced presence check)
//  2. duplicate: email matches an existing record or an earlier accepted row
//  3. accepted:  transformed into a draft
//
// Email comparison is case-insensitive on the trimmed address. Nothing here
// mutates the collection; committing the accepted drafts is the caller's call.

import (
	"fmt"
	"strings"
)

// RowOutcome is the batch classification of a single row.
type RowOutcome string

const (
	OutcomeAccepted  RowOutcome = "accepted"
	OutcomeDuplicate RowOutcome = "duplicate"
	OutcomeFailed    RowOutcome = "failed"
)

// BatchStats counts the outcome of a batch import.
type BatchStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
}

// RowIssue describes a skipped row.
type RowIssue struct {
	Row     int        `json:"row"`
	Email   string     `json:"email,omitempty"`
	Outcome RowOutcome `json:"outcome"`
	Reason  string     `json:"reason"`
}

// BatchResult is the full classification of a batch.
type BatchResult struct {
	Stats        BatchStats
	Accepted     []Draft
	AcceptedRows []int
	Skipped      []RowIssue
}

// ClassifyBatch sorts rows into accepted, duplicate, and failed against the
// existing collection, using the built-in defaults for accepted rows.
func ClassifyBatch(rows []Row, existing []Record) BatchResult {
	return Defaults{}.ClassifyBatch(rows, existing)
}

// ClassifyBatch sorts rows into accepted, duplicate, and failed against the existing collection.
func (d Defaults) ClassifyBatch(rows []Row, existing []Record) BatchResult {
	taken := emailIndex(existing)
	acceptedAt := make(map[string]int)

	res := BatchResult{Stats: BatchStats{Total: len(rows)}}
	for i, row := range rows {
		n := rowNumber(row, i)
		email := row.Value(ColEmail)

		if missing := missingFields(row, BatchRequiredFields); len(missing) > 0 {
			res.Stats.Failed++
			res.Skipped = append(res.Skipped, RowIssue{
				Row:     n,
				Email:   email,
				Outcome: OutcomeFailed,
				Reason:  fmt.Sprintf("missing required field(s): %s", strings.Join(missing, ", ")),
			})
			continue
		}

		key := NormalizeEmail(email)
		if dup := duplicateOf(email, key, taken, acceptedAt); dup != nil {
			res.Stats.Duplicates++
			res.Skipped = append(res.Skipped, RowIssue{
				Row:     n,
				Email:   email,
				Outcome: OutcomeDuplicate,
				Reason:  dup.Error(),
			})
			continue
		}

		acceptedAt[key] = n
		res.Stats.Successful++
		res.Accepted = append(res.Accepted, d.Transform(row))
		res.AcceptedRows = append(res.AcceptedRows, n)
	}
	return res
}

// FindDuplicates reports every row whose email clashes with the collection or
// with an earlier row in the same file. Used by the single-shot path, where a
// duplicate blocks the import like any other validation error.
func FindDuplicates(rows []Row, existing []Record) ValidationErrors {
	taken := emailIndex(existing)
	seenAt := make(map[string]int)

	var errs ValidationErrors
	for i, row := range rows {
		email := row.Value(ColEmail)
		if email == "" {
			continue
		}
		n := rowNumber(row, i)
		key := NormalizeEmail(email)
		if dup := duplicateOf(email, key, taken, seenAt); dup != nil {
			errs = append(errs, ValidationError{Row: n, Field: ColEmail, Value: email, Message: dup.Error()})
			continue
		}
		seenAt[key] = n
	}
	return errs
}

func duplicateOf(email, key string, taken map[string]int, earlier map[string]int) *DuplicateError {
	if id, ok := taken[key]; ok {
		return &DuplicateError{Email: email, ExistsID: id}
	}
	if row, ok := earlier[key]; ok {
		return &DuplicateError{Email: email, ClashRow: row}
	}
	return nil
}

// emailIndex maps normalized emails to the first record id using them.
func emailIndex(records []Record) map[string]int {
	idx := make(map[string]int, len(records))
	for _, r := range records {
		key := NormalizeEmail(r.Email)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = r.ID
		}
	}
	return idx
}

func missingFields(row Row, fields []string) []string {
	var missing []string
	for _, f := range fields {
		if !row.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
