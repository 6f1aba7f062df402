package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentur-schein/props-backend/internal/order"
)

// ErrPrintNotFound indicates an unknown print notification id.
var ErrPrintNotFound = errors.New("print notification not found")

// PrintNotification is one workshop print request created from an order line.
type PrintNotification struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	PropName  string    `json:"prop_name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// PrintStore persists print notifications. It satisfies order.PrintRecorder.
type PrintStore interface {
	RecordPrintJobs(ctx context.Context, orderID uuid.UUID, jobs []order.PrintJob) error
	List(ctx context.Context) ([]PrintNotification, error)
	Get(ctx context.Context, id uuid.UUID) (PrintNotification, error)
}

// PGPrintStore is the Postgres-backed print notification store.
type PGPrintStore struct {
	Pool *pgxpool.Pool
}

// NewPGPrintStore constructs a PGPrintStore.
func NewPGPrintStore(pool *pgxpool.Pool) *PGPrintStore {
	return &PGPrintStore{Pool: pool}
}

// RecordPrintJobs inserts one row per printed order line.
func (s *PGPrintStore) RecordPrintJobs(ctx context.Context, orderID uuid.UUID, jobs []order.PrintJob) error {
	for _, job := range jobs {
		_, err := s.Pool.Exec(ctx,
			`INSERT INTO print_notifications (id, order_id, prop_name, quantity, created_at)
			 VALUES ($1, $2, $3, $4, now())`,
			uuid.New(), orderID, job.PropName, job.Quantity)
		if err != nil {
			return fmt.Errorf("insert print notification: %w", err)
		}
	}
	return nil
}

// List returns all print notifications, newest first.
func (s *PGPrintStore) List(ctx context.Context) ([]PrintNotification, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, order_id, prop_name, quantity, created_at
		 FROM print_notifications ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list print notifications: %w", err)
	}
	defer rows.Close()

	var result []PrintNotification
	for rows.Next() {
		var n PrintNotification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.PropName, &n.Quantity, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan print notification: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// Get loads one print notification.
func (s *PGPrintStore) Get(ctx context.Context, id uuid.UUID) (PrintNotification, error) {
	var n PrintNotification
	err := s.Pool.QueryRow(ctx,
		`SELECT id, order_id, prop_name, quantity, created_at
		 FROM print_notifications WHERE id = $1`, id).
		Scan(&n.ID, &n.OrderID, &n.PropName, &n.Quantity, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PrintNotification{}, ErrPrintNotFound
	}
	if err != nil {
		return PrintNotification{}, fmt.Errorf("get print notification: %w", err)
	}
	return n, nil
}
