package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// SweetFilter carries the optional search criteria for listing sweets.
// Zero values mean "no constraint".
type SweetFilter struct {
	Name     string   // case-insensitive substring
	Category string   // case-insensitive substring
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
}

// SweetRepository defines persistence operations for sweets.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) error
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementQuantity subtracts n from the stock only if at least n units
	// remain, as a single atomic step. Returns domain.ErrInsufficientStock
	// when the record exists but holds fewer than n units.
	DecrementQuantity(ctx context.Context, id string, n int) (*domain.Sweet, error)
	IncrementQuantity(ctx context.Context, id string, n int) (*domain.Sweet, error)
}
