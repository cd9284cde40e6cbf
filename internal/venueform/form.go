package venueform

import (
	"strconv"
	"strings"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// CourtEntry is one row of the court editor: a user-typed number and a type.
type CourtEntry struct {
	Number    string           `json:"number"`
	Type      domain.CourtType `json:"type"`
	Amenities []string         `json:"amenities,omitempty"`
}

// Form is the venue editor payload. Indoor and Outdoor courts are numbered
// from the same space.
type Form struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Zip         string       `json:"zip"`
	Description *string      `json:"description"`
	ImageURL    *string      `json:"imageUrl"`
	Indoor      []CourtEntry `json:"indoorCourts"`
	Outdoor     []CourtEntry `json:"outdoorCourts"`
}

// ValidateCourtNumbers parses the court numbers of indoor followed by outdoor
// entries. It fails on the first entry whose number is blank, is not a
// positive base-10 integer that fits in 32 bits, or repeats an earlier
// number. On success the numbers are returned in the same combined order.
func ValidateCourtNumbers(indoor, outdoor []CourtEntry) ([]int, error) {
	numbers := make([]int, 0, len(indoor)+len(outdoor))
	seen := make(map[int]struct{}, cap(numbers))

	for i, entry := range combine(indoor, outdoor) {
		raw := strings.TrimSpace(entry.Number)
		if raw == "" {
			return nil, courtError(ReasonMissingNumber, i, "number")
		}
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			return nil, courtError(ReasonNotPositiveInt, i, "number")
		}
		n := int(parsed)
		if _, dup := seen[n]; dup {
			return nil, courtError(ReasonDuplicateNumber, i, "number")
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// Validate checks the whole form and returns the venue and court drafts to
// persist. Courts keep the indoor-then-outdoor order of the form.
func (f Form) Validate() (domain.VenueDraft, error) {
	draft := domain.VenueDraft{
		Name:        strings.TrimSpace(f.Name),
		Address:     strings.TrimSpace(f.Address),
		City:        strings.TrimSpace(f.City),
		State:       strings.TrimSpace(f.State),
		Zip:         strings.TrimSpace(f.Zip),
		Description: normalize(f.Description),
		ImageURL:    normalize(f.ImageURL),
	}

	required := []struct{ field, value string }{
		{"name", draft.Name},
		{"address", draft.Address},
		{"city", draft.City},
		{"state", draft.State},
		{"zip", draft.Zip},
	}
	for _, r := range required {
		if r.value == "" {
			return domain.VenueDraft{}, fieldError(r.field)
		}
	}

	entries := combine(f.Indoor, f.Outdoor)
	for i, entry := range entries {
		if !entry.Type.Valid() {
			return domain.VenueDraft{}, courtError(ReasonUnknownCourtType, i, "type")
		}
	}

	numbers, err := ValidateCourtNumbers(f.Indoor, f.Outdoor)
	if err != nil {
		return domain.VenueDraft{}, err
	}

	draft.Courts = make([]domain.CourtDraft, 0, len(entries))
	for i, entry := range entries {
		draft.Courts = append(draft.Courts, domain.CourtDraft{
			Number:    numbers[i],
			Type:      entry.Type,
			Indoor:    i < len(f.Indoor),
			Amenities: trimAll(entry.Amenities),
		})
	}
	return draft, nil
}

func combine(indoor, outdoor []CourtEntry) []CourtEntry {
	all := make([]CourtEntry, 0, len(indoor)+len(outdoor))
	all = append(all, indoor...)
	return append(all, outdoor...)
}

func normalize(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
