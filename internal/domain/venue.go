package domain

import "time"

// Venue is a physical location that owns zero or more courts.
type Venue struct {
	ID          string
	Name        string
	Address     string
	City        string
	State       string
	Zip         string
	Description *string
	ImageURL    *string
	OwnerID     *string
	CreatedAt   time.Time
}

// VenueDraft is a validated venue payload ready to be persisted together
// with the courts that replace any existing ones.
type VenueDraft struct {
	Name        string
	Address     string
	City        string
	State       string
	Zip         string
	Description *string
	ImageURL    *string
	Courts      []CourtDraft
}
