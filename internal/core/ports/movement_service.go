package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// MovementService records and reads stock history.
type MovementService interface {
	Record(ctx context.Context, m domain.StockMovement) error
	History(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error)
}
