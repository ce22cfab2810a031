package flights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

type FlightUseCase interface {
	Search(ctx context.Context, params domain.FlightSearchParams) ([]domain.EnrichedOffer, error)
}

type OfferProvider interface {
	SearchFlightOffers(ctx context.Context, params domain.FlightSearchParams) ([]domain.FlightOffer, error)
}

// OfferCache returns nil, nil on a miss.
type OfferCache interface {
	GetOffers(ctx context.Context, key string) ([]domain.EnrichedOffer, error)
	SetOffers(ctx context.Context, key string, offers []domain.EnrichedOffer) error
}

type FlightService struct {
	provider OfferProvider
	cache    OfferCache
}

func NewFlightService(provider OfferProvider, cache OfferCache) *FlightService {
	return &FlightService{provider: provider, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, params domain.FlightSearchParams) ([]domain.EnrichedOffer, error) {
	params, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}

	key := CacheKey(params)
	if s.cache != nil {
		cached, err := s.cache.GetOffers(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "offer cache read failed", "key", key, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	raw, err := s.provider.SearchFlightOffers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search flight offers: %w", err)
	}
	offers := Enrich(raw)

	if s.cache != nil {
		if err := s.cache.SetOffers(ctx, key, offers); err != nil {
			slog.WarnContext(ctx, "offer cache write failed", "key", key, "error", err)
		}
	}
	return offers, nil
}

var _ FlightUseCase = (*FlightService)(nil)
