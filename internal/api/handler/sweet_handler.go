package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// SweetHandler handles HTTP requests for the sweets inventory.
type SweetHandler struct {
	service   ports.SweetService
	movements MovementRecorder
	log       zerolog.Logger
}

// NewSweetHandler wires the handler. movements may be nil, in which case no
// stock history is kept.
func NewSweetHandler(service ports.SweetService, movements MovementRecorder, log zerolog.Logger) *SweetHandler {
	return &SweetHandler{service: service, movements: movements, log: log}
}

func (h *SweetHandler) record(c echo.Context, sweetID string, kind domain.MovementKind, amount, after int) {
	if h.movements == nil {
		return
	}
	h.movements.Record(domain.StockMovement{
		SweetID:       sweetID,
		Kind:          kind,
		Amount:        amount,
		QuantityAfter: after,
		Actor:         actor(c),
		At:            time.Now().UTC(),
	})
}

// List handles GET /sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Success      200  {array}   sweetResponse
// @Failure      500  {object}  map[string]string
// @Router       /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponses(sweets))
}

// Search handles GET /sweets/search.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Param        name      query     string  false  "Case-insensitive substring of the name"
// @Param        category  query     string  false  "Case-insensitive substring of the category"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {array}   sweetResponse
// @Failure      400       {object}  map[string]string
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	in, err := toSearchInput(c)
	if err != nil {
		return err
	}
	sweets, err := h.service.Search(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponses(sweets))
}

// Get handles GET /sweets/:id.
//
// @Summary      Get a sweet
// @Tags         sweets
// @Produce      json
// @Param        id   path      string  true  "Sweet ID"
// @Success      200  {object}  sweetResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sweets/{id} [get]
func (h *SweetHandler) Get(c echo.Context) error {
	sweet, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Create handles POST /sweets.
//
// @Summary      Add a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sweet, err := h.service.Create(c.Request().Context(), toCreateSweetInput(req))
	if err != nil {
		return err
	}
	metrics.CatalogChangesTotal.WithLabelValues("create").Inc()
	h.record(c, sweet.ID, domain.MovementAdded, sweet.Quantity, sweet.Quantity)
	h.log.Info().Str("sweet_id", sweet.ID).Str("actor", actor(c)).Msg("sweet added")

	return c.JSON(http.StatusCreated, toSweetResponse(sweet))
}

// Update handles PUT /sweets/:id. Only fields present in the body change.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet ID"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), toSweetPatch(req))
	if err != nil {
		return err
	}
	metrics.CatalogChangesTotal.WithLabelValues("update").Inc()
	if req.Quantity != nil {
		h.record(c, sweet.ID, domain.MovementAdjusted, 0, sweet.Quantity)
	}

	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Delete handles DELETE /sweets/:id.
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.CatalogChangesTotal.WithLabelValues("delete").Inc()
	h.record(c, id, domain.MovementRemoved, 0, 0)
	h.log.Info().Str("sweet_id", id).Str("actor", actor(c)).Msg("sweet removed")

	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet removed"})
}

// Purchase handles PATCH /sweets/:id/purchase. Open to anonymous callers.
//
// @Summary      Purchase a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Sweet ID"
// @Param        body  body      quantityRequest  true  "Units to buy"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sweets/{id}/purchase [patch]
func (h *SweetHandler) Purchase(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidAmount
	}
	amount, err := toAmount(req)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues(resultLabel(err)).Inc()
		return err
	}

	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"), amount)
	metrics.PurchasesTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	metrics.UnitsSoldTotal.Add(float64(amount))
	h.record(c, sweet.ID, domain.MovementPurchased, amount, sweet.Quantity)

	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Restock handles PATCH /sweets/:id/restock. Admin only.
//
// @Summary      Restock a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet ID"
// @Param        body  body      quantityRequest  true  "Units to add"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sweets/{id}/restock [patch]
func (h *SweetHandler) Restock(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidAmount
	}
	amount, err := toAmount(req)
	if err != nil {
		return err
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), amount)
	if err != nil {
		return err
	}
	metrics.UnitsRestockedTotal.Add(float64(amount))
	h.record(c, sweet.ID, domain.MovementRestocked, amount, sweet.Quantity)
	h.log.Info().Str("sweet_id", sweet.ID).Int("amount", amount).Str("actor", actor(c)).Msg("sweet restocked")

	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}
