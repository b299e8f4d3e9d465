package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

type stubMovementService struct {
	limit int
	err   error
}

func (s *stubMovementService) Record(context.Context, domain.StockMovement) error { return nil }

func (s *stubMovementService) History(_ context.Context, sweetID string, limit int) ([]*domain.StockMovement, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.StockMovement{{
		SweetID:       sweetID,
		Kind:          domain.MovementRestocked,
		Amount:        30,
		QuantityAfter: 100,
		Actor:         "admin-1",
		At:            time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}}, nil
}

func TestMovementHandler_History(t *testing.T) {
	svc := &stubMovementService{}
	h := NewMovementHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/sweets/s1/movements?limit=5", "")
	if err := h.History(withID(c, "s1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.limit != 5 {
		t.Fatalf("expected limit 5, got %d", svc.limit)
	}
	want := `[{"kind":"restocked","amount":30,"quantity_after":100,"actor":"admin-1","at":"2026-10-01T12:00:00Z"}]` + "\n"
	if rec.Code != http.StatusOK || rec.Body.String() != want {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestMovementHandler_History_Errors(t *testing.T) {
	h := NewMovementHandler(&stubMovementService{})
	c, _ := newTestContext(http.MethodGet, "/api/sweets/s1/movements?limit=lots", "")
	var ve *domain.ValidationError
	if err := h.History(withID(c, "s1")); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	h = NewMovementHandler(&stubMovementService{err: domain.ErrMalformedID})
	c, _ = newTestContext(http.MethodGet, "/api/sweets/bad/movements", "")
	if err := h.History(withID(c, "bad")); !errors.Is(err, domain.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
}
