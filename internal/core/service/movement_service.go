package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type movementService struct {
	repo ports.MovementRepository
	log  zerolog.Logger
}

// NewMovementService returns a MovementService backed by repo.
func NewMovementService(repo ports.MovementRepository, log zerolog.Logger) ports.MovementService {
	return &movementService{repo: repo, log: log}
}

// Record validates and stores a single movement.
func (s *movementService) Record(ctx context.Context, m domain.StockMovement) error {
	if m.SweetID == "" || !m.Kind.Valid() || m.Amount < 0 || m.QuantityAfter < 0 {
		return fmt.Errorf("record movement: %w (sweet %q, kind %q)", domain.ErrInvalidMovement, m.SweetID, m.Kind)
	}
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}
	if m.Actor == "" {
		m.Actor = "anonymous"
	}

	if err := s.repo.Insert(ctx, &m); err != nil {
		return fmt.Errorf("record movement: %w", err)
	}

	s.log.Debug().
		Str("sweet_id", m.SweetID).
		Str("kind", string(m.Kind)).
		Int("amount", m.Amount).
		Int("quantity_after", m.QuantityAfter).
		Msg("movement recorded")
	return nil
}

// History returns the newest movements for a sweet. A non-positive limit
// means DefaultHistoryLimit; larger limits are capped at MaxHistoryLimit.
func (s *movementService) History(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.ListBySweet(ctx, sweetID, limit)
}
