package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store abstracts order persistence.
type Store interface {
	Insert(ctx context.Context, o Order) error
	List(ctx context.Context, limit, offset int) ([]Order, int64, error)
}

// PGStore persists orders in Postgres, the line items as jsonb.
type PGStore struct {
	Pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

// Insert writes one order row.
func (s *PGStore) Insert(ctx context.Context, o Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO orders (id, email, items, subtotal, print_cost, discount_percent, discount_amount, total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.Email, items, o.Subtotal, o.PrintCost, o.DiscountPercent, o.DiscountAmount, o.Total, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// List returns a page of orders, newest first, plus the total count.
func (s *PGStore) List(ctx context.Context, limit, offset int) ([]Order, int64, error) {
	var total int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := s.Pool.Query(ctx,
		`SELECT id, email, items, subtotal, print_cost, discount_percent, discount_amount, total, created_at
		 FROM orders ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.Email, &items, &o.Subtotal, &o.PrintCost,
			&o.DiscountPercent, &o.DiscountAmount, &o.Total, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, 0, fmt.Errorf("decode order items: %w", err)
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}
