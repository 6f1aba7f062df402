package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/obs"
)

// TypeOrderConfirmation is the asynq task type for customer confirmation mail.
const TypeOrderConfirmation = "email:order_confirmation"

// orderConfirmationPayload is the task body.
type orderConfirmationPayload struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
}

// Enqueuer publishes email tasks onto the asynq queue.
type Enqueuer struct {
	Client  *asynq.Client
	Queue   string
	Retries int
}

// EnqueueConfirmation schedules the order confirmation email.
func (e *Enqueuer) EnqueueConfirmation(ctx context.Context, orderID uuid.UUID, email string) error {
	if e == nil || e.Client == nil {
		return nil
	}
	payload, err := json.Marshal(orderConfirmationPayload{OrderID: orderID.String(), Email: email})
	if err != nil {
		return fmt.Errorf("encode confirmation payload: %w", err)
	}
	opts := []asynq.Option{asynq.Queue(e.Queue)}
	if e.Retries > 0 {
		opts = append(opts, asynq.MaxRetry(e.Retries))
	}
	if _, err := e.Client.EnqueueContext(ctx, asynq.NewTask(TypeOrderConfirmation, payload), opts...); err != nil {
		return fmt.Errorf("enqueue confirmation: %w", err)
	}
	return nil
}

// SenderFactory builds a sender from the current settings; the worker calls
// it per task so settings edits take effect without a restart.
type SenderFactory func(ctx context.Context) (common.EmailSender, error)

// SMTPSenderFactory is the production factory backed by the settings store.
func SMTPSenderFactory(store SettingsStore) SenderFactory {
	return func(ctx context.Context) (common.EmailSender, error) {
		settings, err := store.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !settings.Configured() {
			return nil, nil
		}
		return SMTPSender{Settings: settings}, nil
	}
}

// Processor handles queued email tasks in the worker process.
type Processor struct {
	Sender SenderFactory
	Logger zerolog.Logger
}

// Register attaches task handlers to an asynq mux.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOrderConfirmation, p.HandleOrderConfirmation)
}

// HandleOrderConfirmation sends the customer confirmation for one order.
// A missing email configuration drops the task without error.
func (p *Processor) HandleOrderConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload orderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		obs.EmailDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("decode confirmation payload: %w", err)
	}
	sender, err := p.Sender(ctx)
	if err != nil {
		obs.EmailDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("build email sender: %w", err)
	}
	if sender == nil {
		p.Logger.Warn().Str("order_id", payload.OrderID).Msg("email not configured, confirmation skipped")
		obs.EmailDeliveriesTotal.WithLabelValues("skipped").Inc()
		return nil
	}
	body := fmt.Sprintf("Thank you for your order! Your order ID is: %s", payload.OrderID)
	if err := sender.Send(payload.Email, "Order Confirmation", body); err != nil {
		obs.EmailDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send confirmation: %w", err)
	}
	obs.EmailDeliveriesTotal.WithLabelValues("ok").Inc()
	p.Logger.Info().Str("order_id", payload.OrderID).Msg("order confirmation sent")
	return nil
}
