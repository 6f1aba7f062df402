package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memStore struct {
	events []Event
	err    error
}

func (m *memStore) InsertEvent(_ context.Context, topic string, aggregateID uuid.UUID, payload json.RawMessage) (Event, error) {
	if m.err != nil {
		return Event{}, m.err
	}
	ev := Event{ID: uuid.New(), Topic: topic, AggregateID: aggregateID, Payload: payload, OccurredAt: time.Now()}
	m.events = append(m.events, ev)
	return ev, nil
}

type memNotifier struct {
	seen []Event
	err  error
}

func (m *memNotifier) Notify(_ context.Context, ev Event) error {
	m.seen = append(m.seen, ev)
	return m.err
}

func TestEmitPersistsAndNotifies(t *testing.T) {
	store := &memStore{}
	notifier := &memNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	ev, err := bus.Emit(context.Background(), TopicOrderCreated, uuid.New(), map[string]any{"email": "a@b.de"})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(store.events))
	}
	if len(notifier.seen) != 1 || notifier.seen[0].ID != ev.ID {
		t.Fatalf("notifier did not receive the emitted event")
	}
}

func TestEmitRejectsEmptyTopic(t *testing.T) {
	bus := &Bus{Store: &memStore{}}
	if _, err := bus.Emit(context.Background(), "  ", uuid.New(), nil); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestEmitNotifierFailureDoesNotDropEvent(t *testing.T) {
	store := &memStore{}
	notifier := &memNotifier{err: errors.New("smtp down")}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	_, err := bus.Emit(context.Background(), TopicOrderCreated, uuid.New(), nil)
	if err == nil {
		t.Fatal("expected joined notifier error")
	}
	if len(store.events) != 1 {
		t.Fatalf("event should persist despite notifier failure")
	}
}

func TestEmitRejectsInvalidRawPayload(t *testing.T) {
	bus := &Bus{Store: &memStore{}}
	if _, err := bus.Emit(context.Background(), TopicOrderCreated, uuid.New(), json.RawMessage("{not json")); err == nil {
		t.Fatal("expected error for invalid raw payload")
	}
}
