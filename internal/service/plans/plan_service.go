package plans

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/repository"
	"github.com/google/uuid"
)

const (
	maxNameLength = 120
	dateLayout    = "2006-01-02"
)

type PlanUseCase interface {
	Create(ctx context.Context, userID string, input PlanInput) (*domain.Plan, error)
	Get(ctx context.Context, userID, id string) (*domain.Plan, error)
	List(ctx context.Context, userID string) ([]domain.Plan, error)
	Update(ctx context.Context, userID, id string, input PlanInput) (*domain.Plan, error)
	Delete(ctx context.Context, userID, id string) error
}

// PlanInput is the writable part of a plan; Update replaces every field.
type PlanInput struct {
	Name        string            `json:"name"`
	Destination string            `json:"destination"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Notes       string            `json:"notes"`
	Items       []domain.PlanItem `json:"items"`
}

type PlanService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

func (s *PlanService) Create(ctx context.Context, userID string, input PlanInput) (*domain.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validate(&input); err != nil {
		return nil, err
	}

	plan := &domain.Plan{ID: uuid.NewString(), UserID: userID}
	apply(plan, input)
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Get(ctx context.Context, userID, id string) (*domain.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.plans.Get(ctx, userID, id)
}

func (s *PlanService) List(ctx context.Context, userID string) ([]domain.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.plans.ListByUser(ctx, userID)
}

func (s *PlanService) Update(ctx context.Context, userID, id string, input PlanInput) (*domain.Plan, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validate(&input); err != nil {
		return nil, err
	}

	plan := &domain.Plan{ID: id, UserID: userID}
	apply(plan, input)
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if err := checkID(id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, userID, id)
}

func apply(plan *domain.Plan, input PlanInput) {
	plan.Name = input.Name
	plan.Destination = input.Destination
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate
	plan.Notes = input.Notes
	plan.Items = input.Items
	if plan.Items == nil {
		plan.Items = []domain.PlanItem{}
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("plan %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// validate trims text fields in place and checks dates and items.
func validate(input *PlanInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Destination = strings.TrimSpace(input.Destination)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)

	if input.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(input.Name) > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxNameLength)
	}

	var start, end time.Time
	var err error
	if input.StartDate != "" {
		if start, err = time.Parse(dateLayout, input.StartDate); err != nil {
			return fmt.Errorf("%w: startDate must be YYYY-MM-DD", domain.ErrValidation)
		}
	}
	if input.EndDate != "" {
		if end, err = time.Parse(dateLayout, input.EndDate); err != nil {
			return fmt.Errorf("%w: endDate must be YYYY-MM-DD", domain.ErrValidation)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}

	for i, item := range input.Items {
		switch item.Kind {
		case domain.ItemKindFlight, domain.ItemKindPlace, domain.ItemKindNote:
		default:
			return fmt.Errorf("%w: items[%d].kind must be flight, place or note", domain.ErrValidation, i)
		}
		if item.Day < 0 {
			return fmt.Errorf("%w: items[%d].day must not be negative", domain.ErrValidation, i)
		}
	}
	return nil
}

var _ PlanUseCase = (*PlanService)(nil)
