package models

import (
	"time"

	"github.com/devakhil7/plyr-sub003/pricing"
)

type Venue struct {
	ID               int       `json:"id" db:"id"`
	OwnerID          int       `json:"owner_id" db:"owner_id"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description,omitempty" db:"description"`
	Location         string    `json:"location" db:"location"`
	Sport            string    `json:"sport" db:"sport"`
	BasePricePerHour float64   `json:"base_price_per_hour" db:"base_price_per_hour"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	PhotoKey         *string   `json:"-" db:"photo_key"`
	PhotoURL         *string   `json:"photo_url,omitempty" db:"-"`

	// Loaded separately, ordered by position.
	PricingRules []VenuePricingRule `json:"pricing_rules,omitempty" db:"-"`
}

// VenuePricingRule is a stored peak-pricing window. Position carries the rule
// order, which is semantically meaningful: the pricing calculator applies the
// first matching rule, so reordering rules changes prices.
type VenuePricingRule struct {
	ID           int      `json:"id" db:"id"`
	VenueID      int      `json:"venue_id" db:"venue_id"`
	Position     int      `json:"position" db:"position"`
	Days         []string `json:"days" db:"days"`
	StartTime    string   `json:"start_time" db:"start_time"`
	EndTime      string   `json:"end_time" db:"end_time"`
	PricePerHour float64  `json:"price_per_hour" db:"price_per_hour"`
}

func (r VenuePricingRule) ToRule() pricing.Rule {
	return pricing.Rule{
		Days:         r.Days,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		PricePerHour: r.PricePerHour,
	}
}

// RulesToPricing converts stored rules (already in position order) to the
// calculator's rule type.
func RulesToPricing(rules []VenuePricingRule) []pricing.Rule {
	if len(rules) == 0 {
		return nil
	}
	out := make([]pricing.Rule, len(rules))
	for i, r := range rules {
		out[i] = r.ToRule()
	}
	return out
}
