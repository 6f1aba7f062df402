package props

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Service orchestrates catalog queries, validation and caching.
type Service struct {
	Store  Store
	Cache  *Cache
	Logger zerolog.Logger
}

// List returns the full catalog, preferring the Redis cache. Cache failures
// fall through to the store.
func (s *Service) List(ctx context.Context) ([]Prop, error) {
	var cached []Prop
	if ok, err := s.Cache.GetJSON(ctx, listCacheKey, &cached); err != nil {
		s.Logger.Warn().Err(err).Msg("props cache read failed")
	} else if ok {
		return cached, nil
	}
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, listCacheKey, all); err != nil {
		s.Logger.Warn().Err(err).Msg("props cache write failed")
	}
	return all, nil
}

// Get loads one prop by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Prop, error) {
	return s.Store.Get(ctx, id)
}

// Create validates and stores a new prop.
func (s *Service) Create(ctx context.Context, in Input) (Prop, error) {
	if err := validateInput(in); err != nil {
		return Prop{}, err
	}
	p, err := s.Store.Create(ctx, in)
	if err != nil {
		return Prop{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Update applies a partial update to an existing prop.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (Prop, error) {
	if err := validatePatch(patch); err != nil {
		return Prop{}, err
	}
	p, err := s.Store.Update(ctx, id, patch)
	if err != nil {
		return Prop{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Delete removes a prop and its images.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn().Err(err).Msg("props cache invalidation failed")
	}
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return badRequest("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return badRequest("description is required")
	}
	if in.Price <= 0 {
		return badRequest("price must be positive")
	}
	if in.PrintCost < 0 {
		return badRequest("print_cost cannot be negative")
	}
	if strings.TrimSpace(in.Category) == "" {
		return badRequest("category is required")
	}
	return nil
}

func validatePatch(patch Patch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return badRequest("name cannot be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return badRequest("description cannot be empty")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return badRequest("price must be positive")
	}
	if patch.PrintCost != nil && *patch.PrintCost < 0 {
		return badRequest("print_cost cannot be negative")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return badRequest("category cannot be empty")
	}
	return nil
}

func badRequest(msg string) error {
	return common.NewAppError("BAD_REQUEST", msg, http.StatusBadRequest, fmt.Errorf("%s", msg))
}

// IsNotFound reports whether err is the store's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
