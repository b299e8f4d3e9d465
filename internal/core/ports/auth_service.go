package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// RegisterInput is the DTO for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ProvisionAdmin(ctx context.Context, in RegisterInput) (*domain.User, error)
}

// Authorizer decides whether a bearer token may perform an action that
// requires the given role.
type Authorizer interface {
	Authorize(token string, required domain.Role) (domain.Identity, error)
}
