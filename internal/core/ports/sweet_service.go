package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// CreateSweetInput carries the data for a new inventory item.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SearchSweetsInput mirrors SweetFilter at the service boundary.
type SearchSweetsInput struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type SweetService interface {
	Create(ctx context.Context, in CreateSweetInput) (*domain.Sweet, error)
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, in SearchSweetsInput) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
