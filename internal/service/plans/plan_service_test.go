package plans

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Get(ctx context.Context, userID, id string) (*domain.Plan, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListByUser(ctx context.Context, userID string) ([]domain.Plan, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

const planID = "6a1f4c3e-2b7d-4d1a-9a62-3c0d2e8f7b10"

func validInput() PlanInput {
	return PlanInput{
		Name:        " Bangkok week ",
		Destination: "BKK",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-08",
		Items: []domain.PlanItem{
			{Kind: domain.ItemKindFlight, RefID: "offer-1", Title: "SYD-BKK", Day: 0},
			{Kind: domain.ItemKindNote, Title: "Buy SIM card", Day: 1},
		},
	}
}

func TestPlanService_Create(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Plan) bool {
		return p.UserID == "u1" && p.Name == "Bangkok week" && len(p.Items) == 2 && p.ID != ""
	})).Return(nil).Once()

	plan, err := service.Create(ctx, "u1", validInput())

	require.NoError(t, err)
	assert.Equal(t, "Bangkok week", plan.Name)
	repo.AssertExpectations(t)
}

func TestPlanService_Create_NilItemsBecomeEmpty(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	plan, err := service.Create(ctx, "u1", PlanInput{Name: "Someday"})

	require.NoError(t, err)
	assert.NotNil(t, plan.Items)
	assert.Empty(t, plan.Items)
}

func TestPlanService_Validation(t *testing.T) {
	service := NewPlanService(&MockPlanRepository{})

	tests := []struct {
		name   string
		mutate func(*PlanInput)
	}{
		{"missing name", func(in *PlanInput) { in.Name = "  " }},
		{"long name", func(in *PlanInput) { in.Name = strings.Repeat("a", maxNameLength+1) }},
		{"bad start date", func(in *PlanInput) { in.StartDate = "01/02/2024" }},
		{"bad end date", func(in *PlanInput) { in.EndDate = "2024-13-01" }},
		{"end before start", func(in *PlanInput) { in.EndDate = "2023-12-31" }},
		{"bad item kind", func(in *PlanInput) { in.Items[0].Kind = "hotel" }},
		{"negative day", func(in *PlanInput) { in.Items[1].Day = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := service.Create(context.Background(), "u1", input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPlanService_SameDayTripIsValid(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := service.Create(ctx, "u1", PlanInput{Name: "Day trip", StartDate: "2024-03-03", EndDate: "2024-03-03"})

	assert.NoError(t, err)
}

func TestPlanService_Get(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "u1", planID).Return(&domain.Plan{ID: planID, UserID: "u1", Name: "x"}, nil).Once()

	plan, err := service.Get(ctx, "u1", planID)
	require.NoError(t, err)
	assert.Equal(t, planID, plan.ID)

	_, err = service.Get(ctx, "u1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Get(ctx, "", planID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPlanService_Update(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Plan) bool {
		return p.ID == planID && p.UserID == "u1"
	})).Return(nil).Once()

	plan, err := service.Update(ctx, "u1", planID, validInput())

	require.NoError(t, err)
	assert.Equal(t, "BKK", plan.Destination)
}

func TestPlanService_Update_Missing(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("Update", ctx, mock.Anything).Return(fmt.Errorf("update plan: %w", domain.ErrNotFound)).Once()

	_, err := service.Update(ctx, "u1", planID, validInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanService_ListAndDelete(t *testing.T) {
	repo := &MockPlanRepository{}
	service := NewPlanService(repo)
	ctx := context.Background()

	repo.On("ListByUser", ctx, "u1").Return([]domain.Plan{{ID: planID}}, nil).Once()
	repo.On("Delete", ctx, "u1", planID).Return(nil).Once()

	list, err := service.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, service.Delete(ctx, "u1", planID))
	repo.AssertExpectations(t)
}
