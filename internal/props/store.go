package props

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested prop does not exist.
var ErrNotFound = errors.New("prop not found")

// Store abstracts catalog persistence for the service and its tests.
type Store interface {
	List(ctx context.Context) ([]Prop, error)
	Get(ctx context.Context, id uuid.UUID) (Prop, error)
	Create(ctx context.Context, in Input) (Prop, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (Prop, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAll(ctx context.Context, inputs []Input) error
	Count(ctx context.Context) (int64, error)
}

// PGStore is the Postgres-backed catalog store.
type PGStore struct {
	Pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

// List returns all props with their images, oldest first.
func (s *PGStore) List(ctx context.Context) ([]Prop, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, name, description, price, print_cost, category, created_at
		 FROM props ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list props: %w", err)
	}
	defer rows.Close()

	var result []Prop
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var p Prop
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PrintCost, &p.Category, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prop: %w", err)
		}
		p.Images = []Image{}
		index[p.ID] = len(result)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	imgRows, err := s.Pool.Query(ctx,
		`SELECT id, prop_id, image_url, position FROM prop_images ORDER BY prop_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list prop images: %w", err)
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var (
			img    Image
			propID uuid.UUID
		)
		if err := imgRows.Scan(&img.ID, &propID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("scan prop image: %w", err)
		}
		if i, ok := index[propID]; ok {
			result[i].Images = append(result[i].Images, img)
		}
	}
	return result, imgRows.Err()
}

// Get loads a single prop and its images.
func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (Prop, error) {
	var p Prop
	err := s.Pool.QueryRow(ctx,
		`SELECT id, name, description, price, print_cost, category, created_at
		 FROM props WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PrintCost, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prop{}, ErrNotFound
		}
		return Prop{}, fmt.Errorf("get prop: %w", err)
	}
	p.Images, err = s.imagesFor(ctx, id)
	return p, err
}

func (s *PGStore) imagesFor(ctx context.Context, propID uuid.UUID) ([]Image, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, image_url, position FROM prop_images WHERE prop_id = $1 ORDER BY position`, propID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Create inserts a prop with its images in one transaction.
func (s *PGStore) Create(ctx context.Context, in Input) (Prop, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return Prop{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := insertProp(ctx, tx, in)
	if err != nil {
		return Prop{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Prop{}, err
	}
	return p, nil
}

func insertProp(ctx context.Context, tx pgx.Tx, in Input) (Prop, error) {
	var p Prop
	err := tx.QueryRow(ctx,
		`INSERT INTO props (name, description, price, print_cost, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, price, print_cost, category, created_at`,
		in.Name, in.Description, in.Price, in.PrintCost, in.Category,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PrintCost, &p.Category, &p.CreatedAt)
	if err != nil {
		return Prop{}, fmt.Errorf("insert prop: %w", err)
	}
	p.Images = []Image{}
	for i, url := range clampImages(in.Images) {
		var img Image
		err := tx.QueryRow(ctx,
			`INSERT INTO prop_images (prop_id, image_url, position)
			 VALUES ($1, $2, $3)
			 RETURNING id, image_url, position`,
			p.ID, url, i,
		).Scan(&img.ID, &img.URL, &img.Position)
		if err != nil {
			return Prop{}, fmt.Errorf("insert prop image: %w", err)
		}
		p.Images = append(p.Images, img)
	}
	return p, nil
}

// Update applies a partial update; when Images is present the image list is
// replaced wholesale.
func (s *PGStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (Prop, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return Prop{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p Prop
	err = tx.QueryRow(ctx,
		`UPDATE props SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			print_cost = COALESCE($5, print_cost),
			category = COALESCE($6, category)
		 WHERE id = $1
		 RETURNING id, name, description, price, print_cost, category, created_at`,
		id, patch.Name, patch.Description, patch.Price, patch.PrintCost, patch.Category,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PrintCost, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prop{}, ErrNotFound
		}
		return Prop{}, fmt.Errorf("update prop: %w", err)
	}

	if patch.Images != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM prop_images WHERE prop_id = $1`, id); err != nil {
			return Prop{}, fmt.Errorf("clear prop images: %w", err)
		}
		for i, url := range clampImages(*patch.Images) {
			if _, err := tx.Exec(ctx,
				`INSERT INTO prop_images (prop_id, image_url, position) VALUES ($1, $2, $3)`,
				id, url, i,
			); err != nil {
				return Prop{}, fmt.Errorf("insert prop image: %w", err)
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Prop{}, err
	}
	p.Images, err = s.imagesFor(ctx, id)
	return p, err
}

// Delete removes a prop; images cascade at the schema level.
func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM props WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the entire catalog for the provided snapshot in one transaction.
func (s *PGStore) ReplaceAll(ctx context.Context, inputs []Input) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM prop_images`); err != nil {
		return fmt.Errorf("clear prop images: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM props`); err != nil {
		return fmt.Errorf("clear props: %w", err)
	}
	for _, in := range inputs {
		if _, err := insertProp(ctx, tx, in); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Count returns the number of props in the catalog.
func (s *PGStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM props`).Scan(&n)
	return n, err
}
