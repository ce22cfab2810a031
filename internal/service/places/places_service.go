package places

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

const (
	defaultRadius = 1
	maxRadius     = 20
	minKeyword    = 2
)

var (
	poiCategories    = map[string]struct{}{"SIGHTS": {}, "NIGHTLIFE": {}, "RESTAURANT": {}, "SHOPPING": {}}
	locationSubTypes = []string{"AIRPORT", "CITY"}
)

type PlacesUseCase interface {
	PointsOfInterest(ctx context.Context, params domain.POIParams) ([]domain.PointOfInterest, error)
	Locations(ctx context.Context, keyword string) ([]domain.Location, error)
}

type Provider interface {
	SearchPointsOfInterest(ctx context.Context, params domain.POIParams) ([]domain.PointOfInterest, error)
	SearchLocations(ctx context.Context, keyword string, subTypes []string) ([]domain.Location, error)
}

type PlacesService struct {
	provider Provider
}

func NewPlacesService(provider Provider) *PlacesService {
	return &PlacesService{provider: provider}
}

func (s *PlacesService) PointsOfInterest(ctx context.Context, params domain.POIParams) ([]domain.PointOfInterest, error) {
	if params.Latitude < -90 || params.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if params.Longitude < -180 || params.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	if params.Radius < 0 || params.Radius > maxRadius {
		return nil, fmt.Errorf("%w: radius must be between 0 and %d", domain.ErrValidation, maxRadius)
	}
	if params.Radius == 0 {
		params.Radius = defaultRadius
	}

	categories := make([]string, 0, len(params.Categories))
	for _, c := range params.Categories {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := poiCategories[c]; !ok {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, c)
		}
		categories = append(categories, c)
	}
	params.Categories = categories

	pois, err := s.provider.SearchPointsOfInterest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search points of interest: %w", err)
	}
	if pois == nil {
		pois = []domain.PointOfInterest{}
	}
	return pois, nil
}

func (s *PlacesService) Locations(ctx context.Context, keyword string) ([]domain.Location, error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < minKeyword {
		return nil, fmt.Errorf("%w: keyword must be at least %d characters", domain.ErrValidation, minKeyword)
	}

	locations, err := s.provider.SearchLocations(ctx, keyword, locationSubTypes)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	return locations, nil
}

var _ PlacesUseCase = (*PlacesService)(nil)
