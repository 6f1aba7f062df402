package discount

import (
	"context"
	"fmt"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Service validates and persists the discount configuration.
type Service struct {
	Store    Store
	Validate *validator.Validate
}

// NewService constructs a Service with its own validator instance.
func NewService(store Store) *Service {
	return &Service{Store: store, Validate: validator.New()}
}

// Get returns the current configuration, creating the defaults on first read.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.Store.Get(ctx)
}

// Update validates and saves a new configuration.
func (s *Service) Update(ctx context.Context, in Settings) (Settings, error) {
	if err := s.Validate.Struct(in); err != nil {
		return Settings{}, &common.AppError{
			Code:       "BAD_REQUEST",
			Message:    validationMessage(err),
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
		}
	}
	return s.Store.Update(ctx, in)
}

// validationMessage maps the first validator failure to an admin-facing
// message naming the offending field.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid discount settings"
	}
	fe := errs[0]
	switch {
	case fe.Field() == "Tier2Quantity" && fe.Tag() == "gtfield":
		return "tier2_quantity must be greater than tier1_quantity"
	case fe.Tag() == "min" && (fe.Field() == "Tier1Quantity" || fe.Field() == "Tier2Quantity"):
		return fmt.Sprintf("%s must be at least 1", jsonField(fe.Field()))
	default:
		return fmt.Sprintf("%s must be a fraction between 0 and 1", jsonField(fe.Field()))
	}
}

func jsonField(name string) string {
	switch name {
	case "Tier1Quantity":
		return "tier1_quantity"
	case "Tier1Discount":
		return "tier1_discount"
	case "Tier2Quantity":
		return "tier2_quantity"
	case "Tier2Discount":
		return "tier2_discount"
	}
	return name
}
