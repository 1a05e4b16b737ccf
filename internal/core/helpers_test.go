package core

import "fmt"

// validFields returns a row that passes every single-shot rule.
func validFields() map[string]string {
	return map[string]string{
		ColName:          "Jane Doe",
		ColPracticeAreas: "Family Law, Divorce",
		ColExperience:    "12",
		ColLocation:      "Austin, TX",
		ColPhone:         "(512) 555-0100",
		ColEmail:         "jane@example.com",
		ColEducation:     "JD, UT Law",
		ColBio:           "Family law attorney.",
	}
}

// validRow returns validFields as a row, with overrides applied.
// An override of "-" deletes the column.
func validRow(overrides map[string]string) Row {
	fields := validFields()
	for k, v := range overrides {
		if v == "-" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	return NewRow(fields)
}

// fullRecord has every field populated with distinct values.
func fullRecord(id int) Record {
	return Record{
		ID:              id,
		Name:            fmt.Sprintf("Lawyer %d", id),
		PracticeAreas:   []string{"Family Law", "Divorce"},
		Experience:      10 + id,
		Location:        "Austin, TX",
		Phone:           "(512) 555-0100",
		Email:           fmt.Sprintf("lawyer%d@example.com", id),
		Rating:          4.5,
		Reviews:         120,
		Education:       "JD, UT Law",
		Bio:             "Says \"hello\", often.",
		Specializations: []string{"Mediation", "Child Custody"},
		Website:         "https://example.com",
		BarNumber:       "TX-123",
		Languages:       []string{"English", "Spanish"},
		HourlyRate:      "$250-$350",
		Availability:    Limited,
		Verified:        true,
		Image:           "https://example.com/p.jpg",
	}
}
