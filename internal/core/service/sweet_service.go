package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// SweetService implements the inventory operations. Callers are expected
// to have authorized the request already.
type SweetService struct {
	repo ports.SweetRepository
	log  zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, log: log}
}

func (s *SweetService) Create(ctx context.Context, in ports.CreateSweetInput) (*domain.Sweet, error) {
	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sweet.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		return nil, err
	}
	s.log.Info().Str("sweet_id", sweet.ID).Str("name", sweet.Name).Msg("sweet created")
	return sweet, nil
}

func (s *SweetService) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.List(ctx, ports.SweetFilter{})
}

func (s *SweetService) Search(ctx context.Context, in ports.SearchSweetsInput) ([]*domain.Sweet, error) {
	ve := &domain.ValidationError{}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		ve.Add("minPrice must not be negative")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		ve.Add("maxPrice must not be negative")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		ve.Add("minPrice must not exceed maxPrice")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, ports.SweetFilter{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
}

// Update applies a partial change. Only the fields present are validated.
func (s *SweetService) Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Purchase removes amount units from stock. The sufficiency check and the
// decrement happen in one conditional store update.
func (s *SweetService) Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.repo.DecrementQuantity(ctx, id, amount)
}

func (s *SweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.repo.IncrementQuantity(ctx, id, amount)
}
