package core

// convert.go provides the explicit, total coercions used by the transformer.
//
// Every To* function takes a raw cell and a fallback; anything that does not
// parse cleanly degrades to the fallback instead of returning an error.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// numericRegex matches integers, decimals, and scientific notation.
	numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	// groupedRegex matches a number with commas in thousands positions only.
	groupedRegex = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)
)

// ParseNumber parses a numeric cell. Commas are accepted only as thousands
// separators, so a decimal comma such as "4,5" does not parse.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		if !groupedRegex.MatchString(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt parses a non-negative whole count, truncating decimals.
// Returns fallback for blank, non-numeric, or negative input.
func ToInt(s string, fallback int) int {
	f, ok := ParseNumber(s)
	if !ok || f < 0 || f > math.MaxInt32 {
		return fallback
	}
	return int(f)
}

// ToRating parses a rating and clamps it to [0,5].
// Returns fallback for blank or non-numeric input.
func ToRating(s string, fallback float64) float64 {
	f, ok := ParseNumber(s)
	if !ok {
		return fallback
	}
	return math.Min(5, math.Max(0, f))
}

// ToBool is true only for a case-insensitive "true" token.
func ToBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// ToAvailability accepts exact enumeration members only; anything else,
// including a case mismatch, falls back to Available.
func ToAvailability(s string) Availability {
	if a, ok := ParseAvailability(strings.TrimSpace(s)); ok {
		return a
	}
	return Available
}

// ToList splits a comma-separated cell, trimming items and dropping blanks.
// Always returns a non-nil slice.
func ToList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

// cleanList trims every item and drops blanks. Always returns a non-nil slice.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// FormatBool renders a flag the way spreadsheet users expect.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FormatNumber renders a float without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// JoinList flattens a list field for a single cell.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// NormalizeEmail is the deduplication key for an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
