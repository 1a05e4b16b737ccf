package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// lawyerRequest is the body of POST /api/lawyers. It carries the same rules
// as a file import row.
type lawyerRequest struct {
	Name            string            `json:"name" validate:"required,notblank"`
	PracticeAreas   []string          `json:"practiceAreas" validate:"required,min=1,dive,notblank"`
	Experience      int               `json:"experience" validate:"gte=0"`
	Location        string            `json:"location" validate:"required,notblank"`
	Phone           string            `json:"phone" validate:"required,lawyer_phone"`
	Email           string            `json:"email" validate:"required,lawyer_email"`
	Rating          *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews         int               `json:"reviews" validate:"gte=0"`
	Education       string            `json:"education" validate:"required,notblank"`
	Bio             string            `json:"bio" validate:"required,notblank"`
	Specializations []string          `json:"specializations"`
	Website         string            `json:"website" validate:"omitempty,url"`
	BarNumber       string            `json:"barNumber"`
	Languages       []string          `json:"languages"`
	HourlyRate      string            `json:"hourlyRate"`
	Availability    core.Availability `json:"availability" validate:"omitempty,availability"`
	Verified        bool              `json:"verified"`
	Image           string            `json:"image"`
}

func (req lawyerRequest) draft() core.Draft {
	rating := core.DefaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	return core.Draft{
		Name:            strings.TrimSpace(req.Name),
		PracticeAreas:   core.ToList(strings.Join(req.PracticeAreas, ",")),
		Experience:      req.Experience,
		Location:        strings.TrimSpace(req.Location),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Rating:          rating,
		Reviews:         req.Reviews,
		Education:       strings.TrimSpace(req.Education),
		Bio:             strings.TrimSpace(req.Bio),
		Specializations: core.ToList(strings.Join(req.Specializations, ",")),
		Website:         strings.TrimSpace(req.Website),
		BarNumber:       strings.TrimSpace(req.BarNumber),
		Languages:       core.ToList(strings.Join(req.Languages, ",")),
		HourlyRate:      strings.TrimSpace(req.HourlyRate),
		Availability:    req.Availability,
		Verified:        req.Verified,
		Image:           strings.TrimSpace(req.Image),
	}
}

// patchRequest is the body of PATCH /api/lawyers/{id}. Absent fields are unchanged.
type patchRequest struct {
	Name            *string            `json:"name" validate:"omitempty,notblank"`
	PracticeAreas   *[]string          `json:"practiceAreas" validate:"omitempty,min=1,dive,notblank"`
	Experience      *int               `json:"experience" validate:"omitempty,gte=0"`
	Location        *string            `json:"location" validate:"omitempty,notblank"`
	Phone           *string            `json:"phone" validate:"omitempty,lawyer_phone"`
	Email           *string            `json:"email" validate:"omitempty,lawyer_email"`
	Rating          *float64           `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews         *int               `json:"reviews" validate:"omitempty,gte=0"`
	Education       *string            `json:"education" validate:"omitempty,notblank"`
	Bio             *string            `json:"bio" validate:"omitempty,notblank"`
	Specializations *[]string          `json:"specializations"`
	Website         *string            `json:"website" validate:"omitempty,url"`
	BarNumber       *string            `json:"barNumber"`
	Languages       *[]string          `json:"languages"`
	HourlyRate      *string            `json:"hourlyRate"`
	Availability    *core.Availability `json:"availability" validate:"omitempty,availability"`
	Verified        *bool              `json:"verified"`
	Image           *string            `json:"image"`
}

func (req patchRequest) patch() core.Patch {
	return core.Patch{
		Name:            req.Name,
		PracticeAreas:   req.PracticeAreas,
		Experience:      req.Experience,
		Location:        req.Location,
		Phone:           req.Phone,
		Email:           req.Email,
		Rating:          req.Rating,
		Reviews:         req.Reviews,
		Education:       req.Education,
		Bio:             req.Bio,
		Specializations: req.Specializations,
		Website:         req.Website,
		BarNumber:       req.BarNumber,
		Languages:       req.Languages,
		HourlyRate:      req.HourlyRate,
		Availability:    req.Availability,
		Verified:        req.Verified,
		Image:           req.Image,
	}
}

type bulkDeleteRequest struct {
	IDs []int `json:"ids" validate:"required,min=1"`
}

// listResponse wraps a filtered listing.
type listResponse struct {
	Lawyers []core.Record `json:"lawyers"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
}

// handleListLawyers returns the directory, filtered and sorted by query parameters.
func (s *Server) handleListLawyers(w http.ResponseWriter, r *http.Request) {
	f, key := parseFilter(r)
	records := s.service.List(f, key)
	writeJSON(w, listResponse{Lawyers: records, Count: len(records), Total: s.service.Count()})
}

func (s *Server) handleGetLawyer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lawyerID(w, r)
	if !ok {
		return
	}
	rec, err := s.service.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

func (s *Server) handleCreateLawyer(w http.ResponseWriter, r *http.Request) {
	var req lawyerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if fields := s.validator.Struct(&req); fields != nil {
		respondFieldErrors(w, r, fields)
		return
	}

	rec := s.service.Create(r.Context(), req.draft())
	writeJSONStatus(w, http.StatusCreated, rec)
}

func (s *Server) handlePatchLawyer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lawyerID(w, r)
	if !ok {
		return
	}

	var req patchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if fields := s.validator.Struct(&req); fields != nil {
		respondFieldErrors(w, r, fields)
		return
	}

	rec, err := s.service.Update(r.Context(), id, req.patch())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

func (s *Server) handleDeleteLawyer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lawyerID(w, r)
	if !ok {
		return
	}
	if err := s.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if fields := s.validator.Struct(&req); fields != nil {
		respondFieldErrors(w, r, fields)
		return
	}

	deleted := s.service.DeleteMany(r.Context(), req.IDs)
	writeJSON(w, map[string]int{"requested": len(req.IDs), "deleted": deleted})
}

func (s *Server) handlePracticeAreas(w http.ResponseWriter, r *http.Request) {
	areas := s.service.PracticeAreas()
	if areas == nil {
		areas = []string{}
	}
	writeJSON(w, map[string][]string{"practiceAreas": areas})
}

// lawyerID parses the {id} route parameter, answering 404 for anything that
// is not a positive integer.
func (s *Server) lawyerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, r, core.ErrNotFound)
		return 0, false
	}
	return id, true
}

// parseFilter reads directory filters and the sort key from the query string.
// Unparseable numbers are ignored.
func parseFilter(r *http.Request) (core.Filter, core.SortKey) {
	q := r.URL.Query()
	f := core.Filter{
		Query:        q.Get("q"),
		PracticeArea: q.Get("practiceArea"),
		Location:     q.Get("location"),
		Language:     q.Get("language"),
		Availability: core.Availability(q.Get("availability")),
	}
	if v, err := strconv.ParseFloat(q.Get("minRating"), 64); err == nil {
		f.MinRating = v
	}
	if v, err := strconv.Atoi(q.Get("minExperience")); err == nil {
		f.MinExperience = v
	}
	if v, err := strconv.ParseBool(q.Get("verified")); err == nil {
		f.VerifiedOnly = v
	}

	var key core.SortKey
	switch k := core.SortKey(q.Get("sort")); k {
	case core.SortRating, core.SortExperience, core.SortReviews, core.SortName:
		key = k
	}
	return f, key
}
