package core

// schema.go describes the tabular column layout shared by the importer,
// validator and exporter. Column names are case-sensitive camelCase and must
// match the header row of an import file exactly.

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldList
	FieldInt
	FieldNumber
	FieldBool
	FieldEnum
)

// Column names.
const (
	ColID              = "id"
	ColName            = "name"
	ColPracticeAreas   = "practiceAreas"
	ColExperience      = "experience"
	ColLocation        = "location"
	ColPhone           = "phone"
	ColEmail           = "email"
	ColRating          = "rating"
	ColReviews         = "reviews"
	ColEducation       = "education"
	ColBio             = "bio"
	ColSpecializations = "specializations"
	ColWebsite         = "website"
	ColBarNumber       = "barNumber"
	ColLanguages       = "languages"
	ColHourlyRate      = "hourlyRate"
	ColAvailability    = "availability"
	ColVerified        = "verified"
	ColImage           = "image"
)

// FieldSpec defines the rules for a single import column.
type FieldSpec struct {
	Name     string    // Column header name (must match exactly)
	Type     FieldType // Expected data type
	Required bool      // Must be present and non-blank for the single-shot path
	Example  string    // Sample value used in the import template
}

// FieldSpecs lists every importable column in export order.
var FieldSpecs = []FieldSpec{
	{Name: ColName, Type: FieldText, Required: true, Example: "Jane Doe"},
	{Name: ColPracticeAreas, Type: FieldList, Required: true, Example: "Family Law, Divorce"},
	{Name: ColExperience, Type: FieldInt, Required: true, Example: "12"},
	{Name: ColLocation, Type: FieldText, Required: true, Example: "Austin, TX"},
	{Name: ColPhone, Type: FieldText, Required: true, Example: "(512) 555-0100"},
	{Name: ColEmail, Type: FieldText, Required: true, Example: "jane.doe@example.com"},
	{Name: ColRating, Type: FieldNumber, Example: "4.8"},
	{Name: ColReviews, Type: FieldInt, Example: "120"},
	{Name: ColEducation, Type: FieldText, Required: true, Example: "JD, University of Texas School of Law"},
	{Name: ColBio, Type: FieldText, Required: true, Example: "Compassionate family law attorney."},
	{Name: ColSpecializations, Type: FieldList, Example: "Child Custody, Mediation"},
	{Name: ColWebsite, Type: FieldText, Example: "https://janedoe.law"},
	{Name: ColBarNumber, Type: FieldText, Example: "TX-123456"},
	{Name: ColLanguages, Type: FieldList, Example: "English, Spanish"},
	{Name: ColHourlyRate, Type: FieldText, Example: "$250-$350"},
	{Name: ColAvailability, Type: FieldEnum, Example: string(Available)},
	{Name: ColVerified, Type: FieldBool, Example: "TRUE"},
	{Name: ColImage, Type: FieldText, Example: "https://janedoe.law/photo.jpg"},
}

// RequiredFields returns the columns the single-shot validator requires, in schema order.
func RequiredFields() []string {
	var out []string
	for _, spec := range FieldSpecs {
		if spec.Required {
			out = append(out, spec.Name)
		}
	}
	return out
}

// BatchRequiredFields are the reduced checks used by the batch import path.
var BatchRequiredFields = []string{ColName, ColEmail, ColPracticeAreas}

// ExportColumns returns the export header: the identifier followed by every importable column.
func ExportColumns() []string {
	cols := make([]string, 0, len(FieldSpecs)+1)
	cols = append(cols, ColID)
	for _, spec := range FieldSpecs {
		cols = append(cols, spec.Name)
	}
	return cols
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldList:
		return "list"
	case FieldInt:
		return "integer"
	case FieldNumber:
		return "number"
	case FieldBool:
		return "bool"
	case FieldEnum:
		return "enum"
	default:
		return "value"
	}
}
