package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"unsupported format", &FormatError{Ext: ".xls"}, "FILE002"},
		{"wrapped format error", fmt.Errorf("import: %w", &FormatError{Ext: ".txt"}), "FILE002"},
		{"malformed file", &ParseError{Format: FormatXLSX, Err: errors.New("zip: not a valid zip file")}, "FILE003"},
		{"empty file wins over parse error", &ParseError{Format: FormatCSV, Err: ErrEmptyFile}, "FILE005"},
		{"validation errors", ValidationErrors{{Row: 2, Field: ColEmail, Message: "invalid email format"}}, "VAL001"},
		{"single field", ValidationError{Field: ColName, Message: "required"}, "VAL002"},
		{"duplicate", &DuplicateError{Email: "a@x.com", ExistsID: 1}, "VAL003"},
		{"not found", fmt.Errorf("patch 9: %w", ErrNotFound), "REC001"},
		{"too many imports", ErrTooManyImports, "IMP001"},
		{"cancelled", context.Canceled, "IMP002"},
		{"timed out", fmt.Errorf("import: %w", context.DeadlineExceeded), "IMP003"},
		{"sync disabled", ErrSyncDisabled, "SYNC001"},
		{"sync push failure", errors.New("sync push: redis put \"lawyers.json\": connection refused"), "SYNC002"},
		{"sync pull failure", errors.New("sync pull: github: 401 Unauthorized"), "SYNC002"},
		{"body too large", errors.New("http: request body too large"), "FILE001"},
		{"no file", errors.New("no file provided"), "FILE004"},
		{"bad json", errors.New("invalid request body: unexpected EOF"), "VAL004"},
		{"rate limit", errors.New("Rate limit exceeded"), "RATE001"},
		{"unknown error", errors.New("something strange"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError() = %+v, want message and action", got)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNotFound)
	want := "The requested lawyer profile does not exist (Code: REC001). Refresh the directory and try again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrTooManyImports, true},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsUserFacing(tt.err); got != tt.want {
			t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
