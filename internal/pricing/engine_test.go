package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	b := ComputeTotals(nil, DefaultTiers())
	if b.Subtotal != 0 || b.PrintCost != 0 || b.DiscountPercent != 0 || b.DiscountAmount != 0 || b.Total != 0 {
		t.Fatalf("expected all-zero breakdown, got %+v", b)
	}
}

func TestComputeTotalsNoDiscountConfig(t *testing.T) {
	tiers := Tiers{Tier1Quantity: 5, Tier1Discount: 0, Tier2Quantity: 10, Tier2Discount: 0}
	lines := []Line{
		{UnitPrice: 100, PrintCost: 20, Quantity: 7, Printed: true},
		{UnitPrice: 50, Quantity: 8},
	}
	b := ComputeTotals(lines, tiers)
	if !almostEqual(b.Total, b.Subtotal+b.PrintCost) {
		t.Fatalf("expected total %v to equal subtotal+printCost %v", b.Total, b.Subtotal+b.PrintCost)
	}
	if b.DiscountAmount != 0 {
		t.Fatalf("expected zero discount, got %v", b.DiscountAmount)
	}
}

func TestComputeTotalsTierBoundaries(t *testing.T) {
	tiers := DefaultTiers()
	cases := []struct {
		qty  int
		want float64
	}{
		{4, 0},
		{5, 0.05},
		{9, 0.05},
		{10, 0.10},
		{25, 0.10},
	}
	for _, tc := range cases {
		b := ComputeTotals([]Line{{UnitPrice: 10, Quantity: tc.qty}}, tiers)
		if b.DiscountPercent != tc.want {
			t.Fatalf("qty %d: expected discount %v, got %v", tc.qty, tc.want, b.DiscountPercent)
		}
	}
}

func TestComputeTotalsHigherTierWins(t *testing.T) {
	// Quantity meets both thresholds; tier 2 is checked first.
	b := ComputeTotals([]Line{{UnitPrice: 1, Quantity: 12}}, DefaultTiers())
	if b.DiscountPercent != 0.10 {
		t.Fatalf("expected tier 2 discount, got %v", b.DiscountPercent)
	}
}

func TestComputeTotalsPrintedFlagIsolation(t *testing.T) {
	lines := []Line{{UnitPrice: 100, PrintCost: 500, Quantity: 2, Printed: false}}
	b := ComputeTotals(lines, DefaultTiers())
	if b.PrintCost != 0 {
		t.Fatalf("unprinted line must not contribute print cost, got %v", b.PrintCost)
	}
}

func TestComputeTotalsPrintedWithoutPrintCost(t *testing.T) {
	// A printed line whose prop carries no print cost contributes zero, not an error.
	lines := []Line{{UnitPrice: 100, Quantity: 3, Printed: true}}
	b := ComputeTotals(lines, DefaultTiers())
	if b.PrintCost != 0 {
		t.Fatalf("expected zero print cost, got %v", b.PrintCost)
	}
	if !almostEqual(b.Total, 300) {
		t.Fatalf("expected total 300, got %v", b.Total)
	}
}

func TestComputeTotalsPrintedScenario(t *testing.T) {
	lines := []Line{{UnitPrice: 100, PrintCost: 20, Quantity: 5, Printed: true}}
	b := ComputeTotals(lines, DefaultTiers())
	if !almostEqual(b.Subtotal, 500) {
		t.Fatalf("expected subtotal 500, got %v", b.Subtotal)
	}
	if !almostEqual(b.PrintCost, 100) {
		t.Fatalf("expected print cost 100, got %v", b.PrintCost)
	}
	if b.DiscountPercent != 0.05 {
		t.Fatalf("expected discount 0.05, got %v", b.DiscountPercent)
	}
	if !almostEqual(b.DiscountAmount, 30) {
		t.Fatalf("expected discount amount 30, got %v", b.DiscountAmount)
	}
	if !almostEqual(b.Total, 570) {
		t.Fatalf("expected total 570, got %v", b.Total)
	}
}

func TestComputeTotalsTierTwoScenario(t *testing.T) {
	lines := []Line{{UnitPrice: 50, Quantity: 12}}
	b := ComputeTotals(lines, DefaultTiers())
	if !almostEqual(b.Subtotal, 600) {
		t.Fatalf("expected subtotal 600, got %v", b.Subtotal)
	}
	if b.PrintCost != 0 {
		t.Fatalf("expected zero print cost, got %v", b.PrintCost)
	}
	if b.DiscountPercent != 0.10 {
		t.Fatalf("expected discount 0.10, got %v", b.DiscountPercent)
	}
	if !almostEqual(b.DiscountAmount, 60) {
		t.Fatalf("expected discount amount 60, got %v", b.DiscountAmount)
	}
	if !almostEqual(b.Total, 540) {
		t.Fatalf("expected total 540, got %v", b.Total)
	}
}

func TestComputeTotalsQuantityMonotonicity(t *testing.T) {
	tiers := DefaultTiers()
	prev := Breakdown{}
	for qty := 1; qty <= 30; qty++ {
		b := ComputeTotals([]Line{{UnitPrice: 25, PrintCost: 5, Quantity: qty, Printed: true}}, tiers)
		if b.Subtotal < prev.Subtotal || b.PrintCost < prev.PrintCost || b.Total < prev.Total {
			t.Fatalf("qty %d: totals decreased: prev %+v cur %+v", qty, prev, b)
		}
		if b.DiscountPercent < prev.DiscountPercent {
			t.Fatalf("qty %d: discount percent decreased", qty)
		}
		prev = b
	}
}

func TestComputeTotalsDeterminism(t *testing.T) {
	lines := []Line{
		{UnitPrice: 12999.99, PrintCost: 299.99, Quantity: 3, Printed: true},
		{UnitPrice: 45000.00, PrintCost: 499.99, Quantity: 7},
	}
	first := ComputeTotals(lines, DefaultTiers())
	second := ComputeTotals(lines, DefaultTiers())
	if first != second {
		t.Fatalf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}

func TestPreviewItemPrinted(t *testing.T) {
	p := PreviewItem(200, 2, true)
	if !almostEqual(p.Base, 400) {
		t.Fatalf("expected base 400, got %v", p.Base)
	}
	if !almostEqual(p.Printing, 80) {
		t.Fatalf("expected printing 80, got %v", p.Printing)
	}
	if !almostEqual(p.Total, 480) {
		t.Fatalf("expected total 480, got %v", p.Total)
	}
}

func TestPreviewItemUnprinted(t *testing.T) {
	p := PreviewItem(200, 3, false)
	if p.Printing != 0 {
		t.Fatalf("expected no printing surcharge, got %v", p.Printing)
	}
	if !almostEqual(p.Total, 600) {
		t.Fatalf("expected total 600, got %v", p.Total)
	}
}
