package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/events"
)

// EmailNotifier alerts the shop's notification address about selected
// domain events. Customer-facing mail goes through the task queue instead;
// this one is for the people running the store.
type EmailNotifier struct {
	Mail      common.EmailSender
	Recipient func(ctx context.Context) string
}

// Notify implements events.Notifier.
func (n EmailNotifier) Notify(ctx context.Context, event events.Event) error {
	if n.Mail == nil || n.Recipient == nil {
		return nil
	}
	to := n.Recipient(ctx)
	if to == "" {
		return nil
	}
	subject, ok := subjectFor(event.Topic)
	if !ok {
		return nil
	}
	return n.Mail.Send(to, subject, bodyFor(event, event.OccurredAt))
}

func subjectFor(topic string) (string, bool) {
	switch topic {
	case events.TopicOrderCreated:
		return "New order received", true
	case events.TopicCatalogImported:
		return "Catalog imported", true
	}
	return "", false
}

func bodyFor(event events.Event, at time.Time) string {
	payload := map[string]any{}
	if len(event.Payload) > 0 {
		// Best effort; an unreadable payload still produces a useful alert.
		_ = json.Unmarshal(event.Payload, &payload)
	}
	switch event.Topic {
	case events.TopicOrderCreated:
		return fmt.Sprintf("A new order %s was placed at %s.\nCustomer: %v\nTotal: %v",
			event.AggregateID, at.Format(time.RFC1123), payload["email"], payload["total"])
	case events.TopicCatalogImported:
		return fmt.Sprintf("The prop catalog was replaced by an import at %s (%v entries).",
			at.Format(time.RFC1123), payload["count"])
	}
	return ""
}
