package core

// Defaults holds the directory-wide values for a blank languages or image
// field. The zero value uses DefaultLanguage and DefaultImage.
type Defaults struct {
	Language string
	Image    string
}

func (d Defaults) languages() []string {
	if d.Language == "" {
		return []string{DefaultLanguage}
	}
	return []string{d.Language}
}

func (d Defaults) image() string {
	if d.Image == "" {
		return DefaultImage
	}
	return d.Image
}

// Complete fills the defaulted fields of a manually entered draft.
func (d Defaults) Complete(dr Draft) Draft {
	if len(dr.Languages) == 0 {
		dr.Languages = d.languages()
	}
	if dr.Image == "" {
		dr.Image = d.image()
	}
	if dr.Availability == "" {
		dr.Availability = Available
	}
	return dr
}

// Transform maps a raw row using the built-in defaults.
func Transform(row Row) Draft {
	return Defaults{}.Transform(row)
}

// TransformAll maps every row using the built-in defaults.
func TransformAll(rows []Row) []Draft {
	return Defaults{}.TransformAll(rows)
}

// Transform maps a raw row to a record draft. It is pure and total: any input,
// including an empty row, produces a draft with every list field non-nil and
// every unparseable scalar at its documented default.
func (d Defaults) Transform(row Row) Draft {
	languages := ToList(row.Get(ColLanguages))
	if len(languages) == 0 {
		languages = d.languages()
	}

	image := row.Value(ColImage)
	if image == "" {
		image = d.image()
	}

	return Draft{
		Name:            row.Value(ColName),
		PracticeAreas:   ToList(row.Get(ColPracticeAreas)),
		Experience:      ToInt(row.Get(ColExperience), 0),
		Location:        row.Value(ColLocation),
		Phone:           row.Value(ColPhone),
		Email:           row.Value(ColEmail),
		Rating:          ToRating(row.Get(ColRating), DefaultRating),
		Reviews:         ToInt(row.Get(ColReviews), 0),
		Education:       row.Value(ColEducation),
		Bio:             row.Value(ColBio),
		Specializations: ToList(row.Get(ColSpecializations)),
		Website:         row.Value(ColWebsite),
		BarNumber:       row.Value(ColBarNumber),
		Languages:       languages,
		HourlyRate:      row.Value(ColHourlyRate),
		Availability:    ToAvailability(row.Get(ColAvailability)),
		Verified:        ToBool(row.Get(ColVerified)),
		Image:           image,
	}
}

// TransformAll maps every row.
func (d Defaults) TransformAll(rows []Row) []Draft {
	out := make([]Draft, len(rows))
	for i, row := range rows {
		out[i] = d.Transform(row)
	}
	return out
}
