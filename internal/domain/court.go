package domain

import "time"

// CourtType is the surface/building category of a court.
type CourtType string

const (
	CourtTypeOutdoorSurface CourtType = "outdoor_surface"
	CourtTypeGym            CourtType = "gym"
	CourtTypeSportCourt     CourtType = "sport_court"
	CourtTypeOther          CourtType = "other"
)

// CourtTypes lists the accepted court types in display order.
var CourtTypes = []CourtType{
	CourtTypeOutdoorSurface,
	CourtTypeGym,
	CourtTypeSportCourt,
	CourtTypeOther,
}

// Valid reports whether t belongs to the closed set of court types.
func (t CourtType) Valid() bool {
	for _, known := range CourtTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Court is a single playable surface identified within its venue by Number.
type Court struct {
	ID        string
	VenueID   string
	Number    int
	Type      *CourtType
	Indoor    bool
	Amenities []string
	ImageURL  *string
	CreatedAt time.Time
}

// CourtDraft is a court to be created for a venue.
type CourtDraft struct {
	Number    int
	Type      CourtType
	Indoor    bool
	Amenities []string
}
