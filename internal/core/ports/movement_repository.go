package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// MovementRepository persists the stock history of sweets.
type MovementRepository interface {
	Insert(ctx context.Context, m *domain.StockMovement) error
	// ListBySweet returns up to limit movements for a sweet, newest first.
	ListBySweet(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error)
}
