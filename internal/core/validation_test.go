package core

import (
	"reflect"
	"testing"
)

func TestValidateRow_ValidRowHasNoErrors(t *testing.T) {
	if errs := ValidateRow(validRow(nil), 2); len(errs) != 0 {
		t.Errorf("ValidateRow() = %v, want none", errs)
	}

	// optional fields at valid values
	row := validRow(map[string]string{ColRating: "0", ColAvailability: "Busy", ColExperience: "0"})
	if errs := ValidateRow(row, 2); len(errs) != 0 {
		t.Errorf("ValidateRow() = %v, want none", errs)
	}
}

func TestValidateRow_MissingFieldYieldsExactlyOneError(t *testing.T) {
	for _, field := range RequiredFields() {
		for _, variant := range []string{"-", "", "   "} {
			row := validRow(map[string]string{field: variant})
			errs := ValidateRow(row, 7)

			count := 0
			for _, e := range errs {
				if e.Field == field {
					count++
					if e.Row != 7 {
						t.Errorf("%s: Row = %d, want 7", field, e.Row)
					}
				}
			}
			if count != 1 {
				t.Errorf("missing %s (%q): got %d errors for field, want 1 (%v)", field, variant, count, errs)
			}
			if len(errs) != 1 {
				t.Errorf("missing %s (%q): got %d errors total, want 1", field, variant, len(errs))
			}
		}
	}
}

func TestValidateRow_Rules(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		field     string
	}{
		{"email without domain", map[string]string{ColEmail: "jane@"}, ColEmail},
		{"email without tld", map[string]string{ColEmail: "jane@example"}, ColEmail},
		{"email with space", map[string]string{ColEmail: "jane doe@example.com"}, ColEmail},
		{"phone without parens", map[string]string{ColPhone: "512-555-0100"}, ColPhone},
		{"phone with extension", map[string]string{ColPhone: "(512) 555-0100 x2"}, ColPhone},
		{"experience text", map[string]string{ColExperience: "ten"}, ColExperience},
		{"experience negative", map[string]string{ColExperience: "-1"}, ColExperience},
		{"rating above range", map[string]string{ColRating: "5.5"}, ColRating},
		{"rating below range", map[string]string{ColRating: "-0.1"}, ColRating},
		{"rating text", map[string]string{ColRating: "great"}, ColRating},
		{"rating decimal comma", map[string]string{ColRating: "4,5"}, ColRating},
		{"experience decimal comma", map[string]string{ColExperience: "1,5"}, ColExperience},
		{"availability lowercase", map[string]string{ColAvailability: "available"}, ColAvailability},
		{"availability unknown", map[string]string{ColAvailability: "Away"}, ColAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRow(validRow(tt.overrides), 2)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.field)
			}
			if errs[0].Value == "" {
				t.Error("Value should carry the offending input")
			}
		})
	}
}

func TestValidateRow_AccumulatesErrors(t *testing.T) {
	row := validRow(map[string]string{
		ColName:   "-",
		ColEmail:  "bad",
		ColPhone:  "bad",
		ColRating: "9",
	})
	errs := ValidateRow(row, 3)
	if len(errs) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(errs), errs)
	}
}

func TestValidate_RowNumbers(t *testing.T) {
	rows := []Row{
		validRow(nil),
		validRow(map[string]string{ColEmail: "bad"}),
		{Line: 9, Fields: validRow(map[string]string{ColPhone: "bad"}).Fields},
	}

	errs := Validate(rows)
	if got := errs.Rows(); !reflect.DeepEqual(got, []int{3, 9}) {
		t.Errorf("Rows() = %v, want [3 9]", got)
	}

	if errs := Validate([]Row{validRow(nil)}); errs != nil {
		t.Errorf("Validate(clean) = %v, want nil", errs)
	}
}

func TestMissingColumns(t *testing.T) {
	header := []string{ColName, ColEmail, ColPhone, "extra"}
	want := []string{ColPracticeAreas, ColExperience, ColLocation, ColEducation, ColBio}
	if got := MissingColumns(header); !reflect.DeepEqual(got, want) {
		t.Errorf("MissingColumns() = %v, want %v", got, want)
	}

	if got := MissingColumns(RequiredFields()); got != nil {
		t.Errorf("MissingColumns(all) = %v, want nil", got)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	one := ValidationErrors{{Row: 2, Field: ColEmail, Message: "invalid email format"}}
	if got := one.Error(); got != "validation failed: row 2: email: invalid email format" {
		t.Errorf("Error() = %q", got)
	}

	many := ValidationErrors{{Row: 2}, {Row: 3}, {Row: 4}, {Row: 5}}
	if got := many.Error(); got[len(got)-5:] != "; ..." {
		t.Errorf("Error() should be truncated: %q", got)
	}
}
