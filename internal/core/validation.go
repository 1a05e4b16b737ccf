package core

// validation.go checks raw rows against the single-shot import rules.
//
// Each row is checked independently and may collect several errors:
//
//  1. Presence: every required column must be non-blank after trimming
//  2. Format: email shape and phone mask, only for non-blank values
//  3. Range: experience >= 0, rating within [0,5], availability in the enum
//
// A missing field yields exactly one error for that field; format checks
// never fire on blank values.

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// Validate checks every row and returns all violations, or nil when the batch is clean.
func Validate(rows []Row) ValidationErrors {
	var errs ValidationErrors
	for i, row := range rows {
		errs = append(errs, ValidateRow(row, rowNumber(row, i))...)
	}
	return errs
}

// ValidateRow returns the violations for a single row numbered n.
func ValidateRow(row Row, n int) []ValidationError {
	var errs []ValidationError
	fail := func(field, value, msg string) {
		errs = append(errs, ValidationError{Row: n, Field: field, Value: value, Message: msg})
	}

	for _, field := range RequiredFields() {
		if !row.Has(field) {
			fail(field, "", "required field is missing")
		}
	}

	if email := row.Value(ColEmail); email != "" && !IsValidEmail(email) {
		fail(ColEmail, email, "invalid email format")
	}

	if phone := row.Value(ColPhone); phone != "" && !IsValidPhone(phone) {
		fail(ColPhone, phone, "phone must match (XXX) XXX-XXXX")
	}

	if exp := row.Value(ColExperience); exp != "" {
		if f, ok := ParseNumber(exp); !ok {
			fail(ColExperience, exp, fmt.Sprintf("invalid %s", fieldTypeName(FieldNumber)))
		} else if f < 0 {
			fail(ColExperience, exp, "experience cannot be negative")
		}
	}

	if rating := row.Value(ColRating); rating != "" {
		if f, ok := ParseNumber(rating); !ok {
			fail(ColRating, rating, fmt.Sprintf("invalid %s", fieldTypeName(FieldNumber)))
		} else if f < 0 || f > 5 {
			fail(ColRating, rating, "rating must be between 0 and 5")
		}
	}

	if avail := row.Value(ColAvailability); avail != "" {
		if _, ok := ParseAvailability(avail); !ok {
			fail(ColAvailability, avail, "availability must be one of: "+availabilityList())
		}
	}

	return errs
}

// IsValidEmail reports whether s has a local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone reports whether s matches (XXX) XXX-XXXX exactly.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// MissingColumns lists required columns absent from a header row.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, field := range RequiredFields() {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// rowNumber prefers the parser's line number and falls back to the
// position in the batch, offset for the header row.
func rowNumber(row Row, i int) int {
	if row.Line > 0 {
		return row.Line
	}
	return i + 2
}

func availabilityList() string {
	names := make([]string, len(Availabilities))
	for i, a := range Availabilities {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
