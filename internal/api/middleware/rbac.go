package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// RequireRole authenticates the bearer token and rejects callers whose role
// does not satisfy required. Errors are left to the HTTP error handler.
func RequireRole(authz ports.Authorizer, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := authz.Authorize(BearerToken(c), required)
			if err != nil {
				return err
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}
