package pricing

// Tiers holds the two-step quantity discount configuration. Both discounts
// are fractions (0.05 means 5%). Tier2Quantity must be greater than
// Tier1Quantity; whoever persists a configuration enforces that, the engine
// trusts whatever snapshot it is handed.
type Tiers struct {
	Tier1Quantity int
	Tier1Discount float64
	Tier2Quantity int
	Tier2Discount float64
}

// DefaultTiers returns the configuration used before an admin ever saves one.
func DefaultTiers() Tiers {
	return Tiers{
		Tier1Quantity: 5,
		Tier1Discount: 0.05,
		Tier2Quantity: 10,
		Tier2Discount: 0.10,
	}
}

// Line describes one cart line used for the cart-wide calculation.
type Line struct {
	UnitPrice float64
	PrintCost float64
	Quantity  int
	Printed   bool
}

// Breakdown aggregates the computed order components.
type Breakdown struct {
	Subtotal        float64
	PrintCost       float64
	DiscountPercent float64
	DiscountAmount  float64
	Total           float64
}

// ComputeTotals calculates the priced order for the given lines and tier
// snapshot. The applied discount is the highest tier whose quantity
// threshold is met by the total quantity across all lines; it is applied as
// one blended fraction over subtotal plus print cost. Print cost only
// accrues on lines flagged printed. The function performs no validation and
// no I/O; quantity sanity is a boundary concern.
func ComputeTotals(lines []Line, tiers Tiers) Breakdown {
	var totalQty int
	for _, l := range lines {
		totalQty += l.Quantity
	}

	// Higher tier wins when both thresholds are met.
	var discountPercent float64
	switch {
	case totalQty >= tiers.Tier2Quantity:
		discountPercent = tiers.Tier2Discount
	case totalQty >= tiers.Tier1Quantity:
		discountPercent = tiers.Tier1Discount
	}

	var b Breakdown
	for _, l := range lines {
		b.Subtotal += l.UnitPrice * float64(l.Quantity)
		if l.Printed {
			b.PrintCost += l.PrintCost * float64(l.Quantity)
		}
	}
	b.DiscountPercent = discountPercent
	b.DiscountAmount = (b.Subtotal + b.PrintCost) * discountPercent
	b.Total = b.Subtotal + b.PrintCost - b.DiscountAmount
	return b
}

// printSurchargeRate is the flat per-unit surcharge the single-item preview
// charges for a printed version. It is intentionally distinct from the
// per-prop PrintCost field used by ComputeTotals; the two formulas serve
// different surfaces and must not be merged.
const printSurchargeRate = 0.20

// Preview is the quick single-item quote shown before anything reaches a
// cart. Tier discounts never apply here.
type Preview struct {
	Base     float64
	Printing float64
	Total    float64
}

// PreviewItem quotes one prop at the given quantity, adding the flat 20%
// printing surcharge per unit when requested.
func PreviewItem(price float64, qty int, printed bool) Preview {
	p := Preview{Base: price * float64(qty)}
	if printed {
		p.Printing = price * printSurchargeRate * float64(qty)
	}
	p.Total = p.Base + p.Printing
	return p
}
