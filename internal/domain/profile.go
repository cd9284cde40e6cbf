package domain

import "time"

// Tier is a subscription level recorded by the payment collaborator.
type Tier string

const (
	TierFree Tier = "free"
	TierOne  Tier = "tier1"
	TierTwo  Tier = "tier2"
)

// Profile holds the public data of an identity.
type Profile struct {
	ID        string
	Username  *string
	FullName  *string
	AvatarURL *string
	Tier      Tier
	UpdatedAt time.Time
}

// Subscribed reports whether the tier grants paid features.
func (t Tier) Subscribed() bool {
	return t == TierOne || t == TierTwo
}
