package discount

import (
	"time"

	"github.com/agentur-schein/props-backend/internal/pricing"
)

// Settings is the persisted two-tier quantity discount configuration.
// There is exactly one row; reads create it with defaults when absent.
type Settings struct {
	Tier1Quantity int       `json:"tier1_quantity" validate:"min=1"`
	Tier1Discount float64   `json:"tier1_discount" validate:"min=0,max=1"`
	Tier2Quantity int       `json:"tier2_quantity" validate:"min=1,gtfield=Tier1Quantity"`
	Tier2Discount float64   `json:"tier2_discount" validate:"min=0,max=1"`
	UpdatedAt     time.Time `json:"-"`
}

// DefaultSettings mirrors the column defaults of the settings row.
func DefaultSettings() Settings {
	tiers := pricing.DefaultTiers()
	return Settings{
		Tier1Quantity: tiers.Tier1Quantity,
		Tier1Discount: tiers.Tier1Discount,
		Tier2Quantity: tiers.Tier2Quantity,
		Tier2Discount: tiers.Tier2Discount,
	}
}

// Tiers converts the stored configuration into the engine's snapshot form.
func (s Settings) Tiers() pricing.Tiers {
	return pricing.Tiers{
		Tier1Quantity: s.Tier1Quantity,
		Tier1Discount: s.Tier1Discount,
		Tier2Quantity: s.Tier2Quantity,
		Tier2Discount: s.Tier2Discount,
	}
}
