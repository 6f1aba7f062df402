package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentur-schein/props-backend/internal/pricing"
)

// Item is one ordered cart line as submitted by the storefront.
type Item struct {
	PropID    uuid.UUID `json:"propId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	PrintCost float64   `json:"print_cost"`
	Quantity  int       `json:"quantity"`
	Printed   bool      `json:"printedVersion"`
}

// Input is the POST /api/orders payload.
type Input struct {
	Email string `json:"email"`
	Items []Item `json:"items"`
}

// Order is a persisted order with its recomputed totals.
type Order struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Items           []Item    `json:"items"`
	Subtotal        float64   `json:"subtotal"`
	PrintCost       float64   `json:"print_cost"`
	DiscountPercent float64   `json:"discount_percent"`
	DiscountAmount  float64   `json:"discount_amount"`
	Total           float64   `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
}

// PrintJob is one workshop print request derived from a printed order line.
type PrintJob struct {
	PropName string
	Quantity int
}

// lines converts order items to engine lines. Quantities below one are
// clamped here; the engine itself trusts its input.
func lines(items []Item) []pricing.Line {
	out := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		out = append(out, pricing.Line{
			UnitPrice: item.Price,
			PrintCost: item.PrintCost,
			Quantity:  qty,
			Printed:   item.Printed,
		})
	}
	return out
}
