package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
)

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SetIdentity stores the verified caller on the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(ctxKeyUserID, id.UserID)
	c.Set(ctxKeyRole, id.Role)
}

// IdentityFrom returns the caller stored by RequireRole, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	userID, _ := c.Get(ctxKeyUserID).(string)
	role, _ := c.Get(ctxKeyRole).(domain.Role)
	if userID == "" || role == "" {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: userID, Role: role}, true
}
