package core

import (
	"sort"
	"strings"
)

// Filter selects a subset of the directory. Zero-valued fields match everything.
// All text comparisons are case-insensitive.
type Filter struct {
	Query         string       // Substring of name, location, practice areas, or specializations
	PracticeArea  string       // Exact practice area
	Location      string       // Substring of location
	Language      string       // Exact spoken language
	Availability  Availability // Exact availability
	MinRating     float64
	MinExperience int
	VerifiedOnly  bool
}

// SortKey orders filtered results.
type SortKey string

const (
	SortDefault    SortKey = ""
	SortRating     SortKey = "rating"
	SortExperience SortKey = "experience"
	SortReviews    SortKey = "reviews"
	SortName       SortKey = "name"
)

// Match reports whether a record satisfies every set condition.
func (f Filter) Match(r Record) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(r.Name, q) && !containsFold(r.Location, q) &&
			!anyContainsFold(r.PracticeAreas, q) && !anyContainsFold(r.Specializations, q) {
			return false
		}
	}
	if f.PracticeArea != "" && !anyEqualFold(r.PracticeAreas, f.PracticeArea) {
		return false
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" && !containsFold(r.Location, loc) {
		return false
	}
	if f.Language != "" && !anyEqualFold(r.Languages, f.Language) {
		return false
	}
	if f.Availability != "" && r.Availability != f.Availability {
		return false
	}
	if r.Rating < f.MinRating || r.Experience < f.MinExperience {
		return false
	}
	if f.VerifiedOnly && !r.Verified {
		return false
	}
	return true
}

// ApplyFilter returns the matching records in the given order.
// The default order is by identifier; numeric sorts are descending.
func ApplyFilter(records []Record, f Filter, key SortKey) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}

	var less func(a, b Record) bool
	switch key {
	case SortRating:
		less = func(a, b Record) bool { return a.Rating > b.Rating }
	case SortExperience:
		less = func(a, b Record) bool { return a.Experience > b.Experience }
	case SortReviews:
		less = func(a, b Record) bool { return a.Reviews > b.Reviews }
	case SortName:
		less = func(a, b Record) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		less = func(a, b Record) bool { return a.ID < b.ID }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// PracticeAreas returns the distinct practice areas in the collection, sorted.
func PracticeAreas(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for _, a := range r.PracticeAreas {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	sort.Strings(out)
	return out
}

func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

func anyContainsFold(items []string, lowerSub string) bool {
	for _, item := range items {
		if containsFold(item, lowerSub) {
			return true
		}
	}
	return false
}

func anyEqualFold(items []string, want string) bool {
	for _, item := range items {
		if strings.EqualFold(item, want) {
			return true
		}
	}
	return false
}
