package service

import (
	"fmt"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// Authorizer turns a bearer token into an identity and checks its role.
type Authorizer struct {
	tokens *TokenIssuer
}

func NewAuthorizer(tokens *TokenIssuer) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize returns ErrUnauthenticated for any missing or unverifiable token
// and ErrForbidden when the verified role does not satisfy required.
func (a *Authorizer) Authorize(token string, required domain.Role) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	id, err := a.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !id.Role.Satisfies(required) {
		return domain.Identity{}, domain.ErrForbidden
	}
	return id, nil
}
