package checkout

import (
	"sort"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// Plan is a purchasable subscription tier.
type Plan struct {
	ID          domain.Tier
	PriceID     string
	Name        string
	Description string
	Mode        string
}

// Catalog lists the plans offered at checkout.
type Catalog map[domain.Tier]Plan

// NewCatalog builds the two paid tiers from their processor price ids.
func NewCatalog(tier1PriceID, tier2PriceID string) Catalog {
	return Catalog{
		domain.TierOne: {
			ID:          domain.TierOne,
			PriceID:     tier1PriceID,
			Name:        "Tier 1",
			Description: "Basic tier with essential features",
			Mode:        "subscription",
		},
		domain.TierTwo: {
			ID:          domain.TierTwo,
			PriceID:     tier2PriceID,
			Name:        "Tier 2",
			Description: "Premium tier with advanced features",
			Mode:        "subscription",
		},
	}
}

// Lookup returns the plan for id.
func (c Catalog) Lookup(id domain.Tier) (Plan, bool) {
	p, ok := c[id]
	return p, ok
}

// Plans returns the catalog ordered by plan id.
func (c Catalog) Plans() []Plan {
	plans := make([]Plan, 0, len(c))
	for _, p := range c {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans
}
