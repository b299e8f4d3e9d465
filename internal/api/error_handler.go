package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps every error
// kind to its status code and renders {"error": "<message>"}. Unclassified
// errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (router 404/405, rate limiter, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest, err.Error()
	case domain.KindMalformedID:
		return http.StatusBadRequest, domain.ErrMalformedID.Error()
	case domain.KindInvalidAmount:
		return http.StatusBadRequest, domain.ErrInvalidAmount.Error()
	case domain.KindInsufficientStock:
		return http.StatusBadRequest, domain.ErrInsufficientStock.Error()
	case domain.KindDuplicateEmail:
		return http.StatusBadRequest, domain.ErrDuplicateEmail.Error()
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized, unauthenticatedMessage(err)
	case domain.KindForbidden:
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case domain.KindNotFound:
		if errors.Is(err, domain.ErrUserNotFound) {
			return http.StatusNotFound, domain.ErrUserNotFound.Error()
		}
		return http.StatusNotFound, domain.ErrSweetNotFound.Error()
	case domain.KindTooManyAttempts:
		return http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()
	case domain.KindInternal:
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func unauthenticatedMessage(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return domain.ErrTokenExpired.Error()
	}
	return domain.ErrUnauthenticated.Error()
}
