package venueform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/courtside/internal/domain"
)

func entries(numbers ...string) []CourtEntry {
	out := make([]CourtEntry, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, CourtEntry{Number: n, Type: domain.CourtTypeGym})
	}
	return out
}

func requireReason(t *testing.T, err error, reason string) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "error %v is not a ValidationError", err)
	assert.Equal(t, reason, verr.Reason)
	assert.Equal(t, reason, err.Error())
	return verr
}

func TestValidateCourtNumbers(t *testing.T) {
	tests := []struct {
		name    string
		indoor  []CourtEntry
		outdoor []CourtEntry
		want    []int
		reason  string
	}{
		{name: "sequential", indoor: entries("1", "2", "3"), want: []int{1, 2, 3}},
		{name: "duplicate", indoor: entries("1", "2", "2"), reason: ReasonDuplicateNumber},
		{name: "letters", indoor: entries("1", "abc"), reason: ReasonNotPositiveInt},
		{name: "blank first", indoor: entries("", "1"), reason: ReasonMissingNumber},
		{name: "whitespace only", indoor: entries("   "), reason: ReasonMissingNumber},
		{name: "zero", indoor: entries("0"), reason: ReasonNotPositiveInt},
		{name: "negative", indoor: entries("-4"), reason: ReasonNotPositiveInt},
		{name: "decimal", indoor: entries("1.5"), reason: ReasonNotPositiveInt},
		{name: "padded", indoor: entries(" 7 ", "8"), want: []int{7, 8}},
		{name: "explicit plus sign", indoor: entries("+5"), want: []int{5}},
		{name: "plus duplicates plain", indoor: entries("5", "+5"), reason: ReasonDuplicateNumber},
		{name: "exponent", indoor: entries("1e2"), reason: ReasonNotPositiveInt},
		{name: "largest int32", indoor: entries("2147483647"), want: []int{2147483647}},
		{name: "exceeds int32", indoor: entries("3000000000"), reason: ReasonNotPositiveInt},
		{name: "just past int32", outdoor: entries("2147483648"), reason: ReasonNotPositiveInt},
		{name: "indoor then outdoor order", indoor: entries("5", "3"), outdoor: entries("1", "9"), want: []int{5, 3, 1, 9}},
		{name: "duplicate across groups", indoor: entries("4"), outdoor: entries("4"), reason: ReasonDuplicateNumber},
		{name: "no courts", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCourtNumbers(tt.indoor, tt.outdoor)
			if tt.reason != "" {
				requireReason(t, err, tt.reason)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCourtNumbers_ReportsOffendingIndex(t *testing.T) {
	_, err := ValidateCourtNumbers(entries("1", "2"), entries("3", "2"))
	verr := requireReason(t, err, ReasonDuplicateNumber)
	assert.Equal(t, 3, verr.Index)
	assert.Equal(t, "courts[3].number: duplicate number", verr.Detail())
}

func validForm() Form {
	desc := "  Six lit courts  "
	return Form{
		Name:        " Riverside Park ",
		Address:     "1 River Rd",
		City:        "Austin",
		State:       "TX",
		Zip:         "78701",
		Description: &desc,
		Indoor:      []CourtEntry{{Number: "1", Type: domain.CourtTypeGym, Amenities: []string{" lights ", ""}}},
		Outdoor:     []CourtEntry{{Number: "2", Type: domain.CourtTypeOutdoorSurface}},
	}
}

func TestFormValidate(t *testing.T) {
	draft, err := validForm().Validate()
	require.NoError(t, err)

	assert.Equal(t, "Riverside Park", draft.Name)
	require.NotNil(t, draft.Description)
	assert.Equal(t, "Six lit courts", *draft.Description)
	assert.Nil(t, draft.ImageURL)

	require.Len(t, draft.Courts, 2)
	assert.Equal(t, domain.CourtDraft{Number: 1, Type: domain.CourtTypeGym, Indoor: true, Amenities: []string{"lights"}}, draft.Courts[0])
	assert.Equal(t, domain.CourtDraft{Number: 2, Type: domain.CourtTypeOutdoorSurface, Indoor: false}, draft.Courts[1])
}

func TestFormValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		reason string
		field  string
	}{
		{"missing name", func(f *Form) { f.Name = "  " }, "missing name", "name"},
		{"missing zip", func(f *Form) { f.Zip = "" }, "missing zip", "zip"},
		{"unknown type", func(f *Form) { f.Outdoor[0].Type = "clay" }, ReasonUnknownCourtType, "type"},
		{"bad number", func(f *Form) { f.Outdoor[0].Number = "two" }, ReasonNotPositiveInt, "number"},
		{"duplicate", func(f *Form) { f.Outdoor[0].Number = "1" }, ReasonDuplicateNumber, "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			_, err := form.Validate()
			verr := requireReason(t, err, tt.reason)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func FuzzValidateCourtNumbers(f *testing.F) {
	f.Add("1", "2", "3")
	f.Add("", "x", "-1")
	f.Add("9", "9", " 10")

	f.Fuzz(func(t *testing.T, a, b, c string) {
		nums, err := ValidateCourtNumbers(entries(a, b), entries(c))
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		if len(nums) != 3 {
			t.Fatalf("got %d numbers, want 3", len(nums))
		}
		seen := map[int]bool{}
		for _, n := range nums {
			if n <= 0 || seen[n] {
				t.Fatalf("invalid result %v", nums)
			}
			seen[n] = true
		}
	})
}
