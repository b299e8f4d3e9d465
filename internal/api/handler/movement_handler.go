package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// MovementRecorder is the interface the sweet handler uses to enqueue stock
// movements. Recording is asynchronous and never fails the request.
type MovementRecorder interface {
	Record(m domain.StockMovement)
}

// MovementHandler serves the stock history of sweets.
type MovementHandler struct {
	service ports.MovementService
}

func NewMovementHandler(service ports.MovementService) *MovementHandler {
	return &MovementHandler{service: service}
}

// History handles GET /sweets/:id/movements. Admin only.
//
// @Summary      Stock history of a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string   true   "Sweet ID"
// @Param        limit  query     integer  false  "Maximum entries, newest first (default 50, max 500)"
// @Success      200    {array}   movementResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /sweets/{id}/movements [get]
func (h *MovementHandler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.NewValidationError("limit must be a non-negative integer")
		}
		limit = n
	}

	movements, err := h.service.History(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}

	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementResponse{
			Kind:          string(m.Kind),
			Amount:        m.Amount,
			QuantityAfter: m.QuantityAfter,
			Actor:         m.Actor,
			At:            formatTime(m.At),
		})
	}
	return c.JSON(http.StatusOK, out)
}
