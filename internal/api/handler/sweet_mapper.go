package handler

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Quantity:  s.Quantity,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func toSweetResponses(sweets []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, toSweetResponse(s))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toCreateSweetInput(req createSweetRequest) ports.CreateSweetInput {
	in := ports.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	return in
}

func toSweetPatch(req updateSweetRequest) domain.SweetPatch {
	return domain.SweetPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
}

// toAmount accepts only whole, positive quantities.
func toAmount(req quantityRequest) (int, error) {
	if req.Quantity == nil {
		return 0, domain.ErrInvalidAmount
	}
	q := *req.Quantity
	if q <= 0 || q != math.Trunc(q) || q > math.MaxInt32 {
		return 0, domain.ErrInvalidAmount
	}
	return int(q), nil
}

// toSearchInput reads name, category, minPrice and maxPrice from the query.
func toSearchInput(c echo.Context) (ports.SearchSweetsInput, error) {
	in := ports.SearchSweetsInput{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	ve := &domain.ValidationError{}
	parse := func(key string) *float64 {
		raw := strings.TrimSpace(c.QueryParam(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			ve.Add(key + " must be a number")
			return nil
		}
		return &v
	}
	in.MinPrice = parse("minPrice")
	in.MaxPrice = parse("maxPrice")

	return in, ve.OrNil()
}
