// Package core provides the business logic for the lawyer directory.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"context"
	"strings"
	"time"
)

// Availability is the booking state shown on a lawyer's profile.
type Availability string

const (
	Available Availability = "Available"
	Limited   Availability = "Limited"
	Busy      Availability = "Busy"
)

// Availabilities lists the valid availability values in display order.
var Availabilities = []Availability{Available, Limited, Busy}

// ParseAvailability returns the matching availability for an exact (case-sensitive) value.
func ParseAvailability(s string) (Availability, bool) {
	for _, a := range Availabilities {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Built-in values for absent optional fields. Deployments override the
// language and image through Defaults.
const (
	DefaultLanguage = "English"
	DefaultImage    = "/placeholder.svg"
	DefaultRating   = 5.0
)

// Record is a single directory entry.
type Record struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	PracticeAreas   []string     `json:"practiceAreas"`
	Experience      int          `json:"experience"`
	Location        string       `json:"location"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email"`
	Rating          float64      `json:"rating"`
	Reviews         int          `json:"reviews"`
	Education       string       `json:"education"`
	Bio             string       `json:"bio"`
	Specializations []string     `json:"specializations,omitempty"`
	Website         string       `json:"website,omitempty"`
	BarNumber       string       `json:"barNumber,omitempty"`
	Languages       []string     `json:"languages,omitempty"`
	HourlyRate      string       `json:"hourlyRate,omitempty"`
	Availability    Availability `json:"availability,omitempty"`
	Verified        bool         `json:"verified"`
	Image           string       `json:"image,omitempty"`
}

// Draft is a record that has not been assigned an identifier yet.
type Draft struct {
	Name            string
	PracticeAreas   []string
	Experience      int
	Location        string
	Phone           string
	Email           string
	Rating          float64
	Reviews         int
	Education       string
	Bio             string
	Specializations []string
	Website         string
	BarNumber       string
	Languages       []string
	HourlyRate      string
	Availability    Availability
	Verified        bool
	Image           string
}

// WithID turns the draft into a record carrying the given identifier.
func (d Draft) WithID(id int) Record {
	return Record{
		ID:              id,
		Name:            d.Name,
		PracticeAreas:   cloneStrings(d.PracticeAreas),
		Experience:      d.Experience,
		Location:        d.Location,
		Phone:           d.Phone,
		Email:           d.Email,
		Rating:          d.Rating,
		Reviews:         d.Reviews,
		Education:       d.Education,
		Bio:             d.Bio,
		Specializations: cloneStrings(d.Specializations),
		Website:         d.Website,
		BarNumber:       d.BarNumber,
		Languages:       cloneStrings(d.Languages),
		HourlyRate:      d.HourlyRate,
		Availability:    d.Availability,
		Verified:        d.Verified,
		Image:           d.Image,
	}
}

// Draft returns the record's content without its identifier.
func (r Record) Draft() Draft {
	return Draft{
		Name:            r.Name,
		PracticeAreas:   cloneStrings(r.PracticeAreas),
		Experience:      r.Experience,
		Location:        r.Location,
		Phone:           r.Phone,
		Email:           r.Email,
		Rating:          r.Rating,
		Reviews:         r.Reviews,
		Education:       r.Education,
		Bio:             r.Bio,
		Specializations: cloneStrings(r.Specializations),
		Website:         r.Website,
		BarNumber:       r.BarNumber,
		Languages:       cloneStrings(r.Languages),
		HourlyRate:      r.HourlyRate,
		Availability:    r.Availability,
		Verified:        r.Verified,
		Image:           r.Image,
	}
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (r Record) Clone() Record {
	return r.Draft().WithID(r.ID)
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name            *string       `json:"name,omitempty"`
	PracticeAreas   *[]string     `json:"practiceAreas,omitempty"`
	Experience      *int          `json:"experience,omitempty"`
	Location        *string       `json:"location,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	Email           *string       `json:"email,omitempty"`
	Rating          *float64      `json:"rating,omitempty"`
	Reviews         *int          `json:"reviews,omitempty"`
	Education       *string       `json:"education,omitempty"`
	Bio             *string       `json:"bio,omitempty"`
	Specializations *[]string     `json:"specializations,omitempty"`
	Website         *string       `json:"website,omitempty"`
	BarNumber       *string       `json:"barNumber,omitempty"`
	Languages       *[]string     `json:"languages,omitempty"`
	HourlyRate      *string       `json:"hourlyRate,omitempty"`
	Availability    *Availability `json:"availability,omitempty"`
	Verified        *bool         `json:"verified,omitempty"`
	Image           *string       `json:"image,omitempty"`
}

// Apply returns a copy of r with the patch's non-nil fields applied.
func (p Patch) Apply(r Record) Record {
	out := r.Clone()
	setString(&out.Name, p.Name)
	setStrings(&out.PracticeAreas, p.PracticeAreas)
	if p.Experience != nil {
		out.Experience = *p.Experience
	}
	setString(&out.Location, p.Location)
	setString(&out.Phone, p.Phone)
	setString(&out.Email, p.Email)
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.Reviews != nil {
		out.Reviews = *p.Reviews
	}
	setString(&out.Education, p.Education)
	setString(&out.Bio, p.Bio)
	setStrings(&out.Specializations, p.Specializations)
	setString(&out.Website, p.Website)
	setString(&out.BarNumber, p.BarNumber)
	setStrings(&out.Languages, p.Languages)
	setString(&out.HourlyRate, p.HourlyRate)
	if p.Availability != nil {
		out.Availability = *p.Availability
	}
	if p.Verified != nil {
		out.Verified = *p.Verified
	}
	setString(&out.Image, p.Image)
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = cleanList(*v)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Repository owns the in-memory collection of records.
// Implementations must be safe for concurrent use.
type Repository interface {
	List() []Record
	Get(id int) (Record, error)
	Len() int
	Add(d Draft) Record
	Patch(id int, p Patch) (Record, error)
	Delete(id int) error
	DeleteMany(ids []int) int
	// Commit runs plan against a snapshot of the collection while holding the
	// write lock and appends the drafts it returns.
	Commit(plan func(existing []Record) ([]Draft, error)) ([]Record, error)
	// Replace swaps the whole collection, keeping identifier assignment monotonic.
	Replace(records []Record)
}

// Syncer reads and writes the collection to a remote document store.
type Syncer interface {
	Pull(ctx context.Context) ([]Record, error)
	Push(ctx context.Context, records []Record) error
	Backend() string
}

// ImportMode distinguishes the two ingestion paths.
type ImportMode string

const (
	// ModeSingleShot validates the whole file and blocks on any error.
	ModeSingleShot ImportMode = "single"
	// ModeBatch skips failed and duplicate rows individually.
	ModeBatch ImportMode = "batch"
)

// ImportResult is the outcome of an import run.
type ImportResult struct {
	ImportID       string            `json:"importId"`
	Mode           ImportMode        `json:"mode"`
	FileName       string            `json:"fileName"`
	Committed      bool              `json:"committed"`
	MissingColumns []string          `json:"missingColumns,omitempty"`
	Stats          BatchStats        `json:"stats"`
	Errors         []ValidationError `json:"errors,omitempty"`
	Skipped        []RowIssue        `json:"skipped,omitempty"`
	Records        []Record          `json:"records,omitempty"`
	Duration       time.Duration     `json:"durationNs"`
}
