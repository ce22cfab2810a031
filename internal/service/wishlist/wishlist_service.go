package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/repository"
	"github.com/google/uuid"
)

type WishlistUseCase interface {
	Add(ctx context.Context, userID string, input AddItemInput) (*domain.WishlistItem, error)
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, userID, id string) error
}

type AddItemInput struct {
	Kind    domain.ItemKind `json:"kind"`
	RefID   string          `json:"refId"`
	Title   string          `json:"title"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WishlistService struct {
	items repository.WishlistRepository
}

func NewWishlistService(items repository.WishlistRepository) *WishlistService {
	return &WishlistService{items: items}
}

func (s *WishlistService) Add(ctx context.Context, userID string, input AddItemInput) (*domain.WishlistItem, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Kind != domain.ItemKindFlight && input.Kind != domain.ItemKindPlace {
		return nil, fmt.Errorf("%w: kind must be flight or place", domain.ErrValidation)
	}
	refID := strings.TrimSpace(input.RefID)
	title := strings.TrimSpace(input.Title)
	if refID == "" {
		return nil, fmt.Errorf("%w: refId is required", domain.ErrValidation)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(input.Payload) > 0 && !json.Valid(input.Payload) {
		return nil, fmt.Errorf("%w: payload must be valid JSON", domain.ErrValidation)
	}

	item := &domain.WishlistItem{
		ID:      uuid.NewString(),
		UserID:  userID,
		Kind:    input.Kind,
		RefID:   refID,
		Title:   title,
		Payload: input.Payload,
	}
	if err := s.items.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.items.ListByUser(ctx, userID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("wishlist item %s: %w", id, domain.ErrNotFound)
	}
	return s.items.Delete(ctx, userID, id)
}

var _ WishlistUseCase = (*WishlistService)(nil)
