package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-manager/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// bindAndValidate decodes the body into req and runs struct validation.
// Decoding failures are reported as validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}

// actor returns the authenticated caller's id for log fields, or "anonymous"
// on public routes.
func actor(c echo.Context) string {
	if id, ok := middleware.IdentityFrom(c); ok {
		return id.UserID
	}
	return "anonymous"
}

// resultLabel turns an operation outcome into a metrics label.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return "invalid"
	case domain.KindDuplicateEmail:
		return "duplicate_email"
	case domain.KindInvalidCredentials:
		return "invalid_credentials"
	case domain.KindTooManyAttempts:
		return "locked"
	case domain.KindInsufficientStock:
		return "insufficient_stock"
	case domain.KindInvalidAmount:
		return "invalid_amount"
	case domain.KindNotFound:
		return "not_found"
	case domain.KindMalformedID:
		return "malformed_id"
	default:
		return "error"
	}
}
