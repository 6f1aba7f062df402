package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists events into the domain_events table.
type PGStore struct {
	Pool *pgxpool.Pool
}

// InsertEvent implements Store.
func (s PGStore) InsertEvent(ctx context.Context, topic string, aggregateID uuid.UUID, payload json.RawMessage) (Event, error) {
	ev := Event{Topic: topic, AggregateID: aggregateID, Payload: payload}
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO domain_events (topic, aggregate_id, payload)
		 VALUES ($1, $2, $3)
		 RETURNING id, occurred_at`,
		topic, aggregateID, payload,
	).Scan(&ev.ID, &ev.OccurredAt)
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}
