package order

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/discount"
	"github.com/agentur-schein/props-backend/internal/events"
	"github.com/agentur-schein/props-backend/internal/obs"
	"github.com/agentur-schein/props-backend/internal/pricing"
)

// ConfirmationEnqueuer schedules an order-confirmation email for delivery.
type ConfirmationEnqueuer interface {
	EnqueueConfirmation(ctx context.Context, orderID uuid.UUID, email string) error
}

// PrintRecorder records workshop print jobs for printed order lines.
type PrintRecorder interface {
	RecordPrintJobs(ctx context.Context, orderID uuid.UUID, jobs []PrintJob) error
}

// Service creates orders: totals are recomputed server side from the
// current discount configuration, never trusted from the client.
type Service struct {
	Store     Store
	Discounts discount.Store
	Events    *events.Bus
	Email     ConfirmationEnqueuer
	Prints    PrintRecorder
	Logger    zerolog.Logger
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Create validates and persists an order, then kicks off the follow-up
// work. Email delivery and print jobs are best effort; the order stands
// even when they fail.
func (s *Service) Create(ctx context.Context, in Input) (Order, error) {
	if strings.TrimSpace(in.Email) == "" {
		return Order{}, badRequest("email is required")
	}
	if len(in.Items) == 0 {
		return Order{}, badRequest("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Name == "" {
			return Order{}, badRequest("item name is required")
		}
		if item.Price < 0 || item.PrintCost < 0 {
			return Order{}, badRequest("item amounts must not be negative")
		}
	}

	settings, err := s.Discounts.Get(ctx)
	if err != nil {
		return Order{}, err
	}

	items := clampQuantities(in.Items)
	breakdown := pricing.ComputeTotals(lines(items), settings.Tiers())

	o := Order{
		ID:              uuid.New(),
		Email:           in.Email,
		Items:           items,
		Subtotal:        breakdown.Subtotal,
		PrintCost:       breakdown.PrintCost,
		DiscountPercent: breakdown.DiscountPercent,
		DiscountAmount:  breakdown.DiscountAmount,
		Total:           breakdown.Total,
		CreatedAt:       s.now(),
	}
	if err := s.Store.Insert(ctx, o); err != nil {
		return Order{}, err
	}
	obs.OrdersCreatedTotal.Inc()

	if s.Events != nil {
		payload := map[string]any{"email": o.Email, "total": o.Total, "items": len(o.Items)}
		if _, err := s.Events.Emit(ctx, events.TopicOrderCreated, o.ID, payload); err != nil {
			s.Logger.Warn().Err(err).Str("order_id", o.ID.String()).Msg("emit order.created")
		}
	}
	if s.Email != nil {
		if err := s.Email.EnqueueConfirmation(ctx, o.ID, o.Email); err != nil {
			s.Logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("enqueue confirmation email")
		}
	}
	if s.Prints != nil {
		if jobs := printJobs(items); len(jobs) > 0 {
			if err := s.Prints.RecordPrintJobs(ctx, o.ID, jobs); err != nil {
				s.Logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("record print jobs")
			}
		}
	}
	return o, nil
}

// List returns a page of orders for the admin view.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Order, int64, error) {
	return s.Store.List(ctx, limit, offset)
}

func clampQuantities(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Quantity < 1 {
			out[i].Quantity = 1
		}
	}
	return out
}

func printJobs(items []Item) []PrintJob {
	var jobs []PrintJob
	for _, item := range items {
		if item.Printed {
			jobs = append(jobs, PrintJob{PropName: item.Name, Quantity: item.Quantity})
		}
	}
	return jobs
}

func badRequest(msg string) error {
	return &common.AppError{Code: "BAD_REQUEST", Message: msg, HTTPStatus: http.StatusBadRequest}
}
