package core

import (
	"reflect"
	"testing"
)

func filterFixture() []Record {
	return []Record{
		{ID: 1, Name: "Carla Mendes", PracticeAreas: []string{"Family Law"}, Specializations: []string{"Adoption"},
			Location: "Austin, TX", Languages: []string{"English", "Portuguese"}, Rating: 4.2, Experience: 8, Reviews: 40,
			Availability: Available, Verified: true},
		{ID: 2, Name: "bruno Alves", PracticeAreas: []string{"Tax Law"}, Location: "Dallas, TX",
			Languages: []string{"English"}, Rating: 4.9, Experience: 3, Reviews: 90, Availability: Busy},
		{ID: 3, Name: "Ada Byron", PracticeAreas: []string{"Family Law", "Tax Law"}, Location: "Boston, MA",
			Languages: []string{"Spanish"}, Rating: 3.5, Experience: 20, Reviews: 5, Availability: Limited, Verified: true},
	}
}

func ids(records []Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		key    SortKey
		want   []int
	}{
		{"everything", Filter{}, SortDefault, []int{1, 2, 3}},
		{"query matches name", Filter{Query: "ADA"}, SortDefault, []int{3}},
		{"query matches location", Filter{Query: "tx"}, SortDefault, []int{1, 2}},
		{"query matches specialization", Filter{Query: "adopt"}, SortDefault, []int{1}},
		{"practice area exact", Filter{PracticeArea: "tax law"}, SortDefault, []int{2, 3}},
		{"practice area partial does not match", Filter{PracticeArea: "Tax"}, SortDefault, []int{}},
		{"location substring", Filter{Location: "boston"}, SortDefault, []int{3}},
		{"language", Filter{Language: "spanish"}, SortDefault, []int{3}},
		{"availability", Filter{Availability: Busy}, SortDefault, []int{2}},
		{"min rating", Filter{MinRating: 4}, SortDefault, []int{1, 2}},
		{"min experience", Filter{MinExperience: 8}, SortDefault, []int{1, 3}},
		{"verified only", Filter{VerifiedOnly: true}, SortDefault, []int{1, 3}},
		{"combined", Filter{PracticeArea: "Family Law", VerifiedOnly: true, MinRating: 4}, SortDefault, []int{1}},
		{"sort rating", Filter{}, SortRating, []int{2, 1, 3}},
		{"sort experience", Filter{}, SortExperience, []int{3, 1, 2}},
		{"sort reviews", Filter{}, SortReviews, []int{2, 1, 3}},
		{"sort name ignores case", Filter{}, SortName, []int{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilter(filterFixture(), tt.filter, tt.key))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPracticeAreas(t *testing.T) {
	got := PracticeAreas(filterFixture())
	if !reflect.DeepEqual(got, []string{"Family Law", "Tax Law"}) {
		t.Errorf("PracticeAreas() = %v", got)
	}
	if got := PracticeAreas(nil); len(got) != 0 {
		t.Errorf("PracticeAreas(nil) = %v", got)
	}
}
