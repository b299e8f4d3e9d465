package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	// Create stores a new user. The email must already be normalised.
	// Returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}
