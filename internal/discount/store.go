package discount

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store abstracts the singleton settings row.
type Store interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}

// PGStore keeps the discount configuration in a single Postgres row.
type PGStore struct {
	Pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

// Get reads the settings row, inserting the defaults first if nothing has
// ever been saved.
func (s *PGStore) Get(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.Pool.QueryRow(ctx,
		`SELECT tier1_quantity, tier1_discount, tier2_quantity, tier2_discount, updated_at
		 FROM discount_settings WHERE id = 1`).
		Scan(&out.Tier1Quantity, &out.Tier1Discount, &out.Tier2Quantity, &out.Tier2Discount, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.insertDefaults(ctx)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get discount settings: %w", err)
	}
	return out, nil
}

// Update upserts the settings row with the supplied values.
func (s *PGStore) Update(ctx context.Context, in Settings) (Settings, error) {
	var out Settings
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO discount_settings (id, tier1_quantity, tier1_discount, tier2_quantity, tier2_discount, updated_at)
		 VALUES (1, $1, $2, $3, $4, now())
		 ON CONFLICT (id) DO UPDATE SET
		   tier1_quantity = EXCLUDED.tier1_quantity,
		   tier1_discount = EXCLUDED.tier1_discount,
		   tier2_quantity = EXCLUDED.tier2_quantity,
		   tier2_discount = EXCLUDED.tier2_discount,
		   updated_at = now()
		 RETURNING tier1_quantity, tier1_discount, tier2_quantity, tier2_discount, updated_at`,
		in.Tier1Quantity, in.Tier1Discount, in.Tier2Quantity, in.Tier2Discount).
		Scan(&out.Tier1Quantity, &out.Tier1Discount, &out.Tier2Quantity, &out.Tier2Discount, &out.UpdatedAt)
	if err != nil {
		return Settings{}, fmt.Errorf("update discount settings: %w", err)
	}
	return out, nil
}

func (s *PGStore) insertDefaults(ctx context.Context) (Settings, error) {
	def := DefaultSettings()
	var out Settings
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO discount_settings (id, tier1_quantity, tier1_discount, tier2_quantity, tier2_discount, updated_at)
		 VALUES (1, $1, $2, $3, $4, now())
		 ON CONFLICT (id) DO UPDATE SET updated_at = discount_settings.updated_at
		 RETURNING tier1_quantity, tier1_discount, tier2_quantity, tier2_discount, updated_at`,
		def.Tier1Quantity, def.Tier1Discount, def.Tier2Quantity, def.Tier2Discount).
		Scan(&out.Tier1Quantity, &out.Tier1Discount, &out.Tier2Quantity, &out.Tier2Discount, &out.UpdatedAt)
	if err != nil {
		return Settings{}, fmt.Errorf("seed discount settings: %w", err)
	}
	return out, nil
}
