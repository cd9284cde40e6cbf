package domain

import "time"

// Rating is a single user's evaluation of a court. Overall is always set;
// the sub-ratings are independently optional.
type Rating struct {
	ID        string
	CourtID   string
	UserID    string
	Overall   int
	Surface   *int
	Net       *int
	Lighting  *int
	Comment   *string
	CreatedAt time.Time

	// Username is the author's display name when the profile is known.
	Username *string
}

// UserRating is a rating listed on its author's profile together with the
// court and venue it belongs to.
type UserRating struct {
	Rating
	CourtNumber int
	VenueID     string
	VenueName   string
}
