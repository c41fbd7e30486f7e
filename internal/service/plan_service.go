package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound = errors.New("plan not found")
)

// CreatePlanInput carries a new catalog entry. DurationDays 0 is meaningful
// (a one-time, non-extending fee) and must not be rejected.
type CreatePlanInput struct {
	Name         string
	Price        float64
	DurationDays int
}

// UpdatePlanInput carries a partial plan edit; nil fields are left untouched.
type UpdatePlanInput struct {
	Name         *string
	Price        *float64
	DurationDays *int
}

// --- Service Interface ---
type PlanService interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	CreatePlan(ctx context.Context, input CreatePlanInput) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, input UpdatePlanInput) error
	// DeletePlan removes a catalog entry without cascading: clients keep
	// their activePlanId and lookups degrade to "no active plan".
	DeletePlan(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.List(ctx)
}

func (s *planService) CreatePlan(ctx context.Context, input CreatePlanInput) (*domain.Plan, error) {
	plan := &domain.Plan{
		Name:         input.Name,
		Price:        input.Price,
		DurationDays: input.DurationDays,
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) UpdatePlan(ctx context.Context, id primitive.ObjectID, input UpdatePlanInput) error {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Price != nil {
		plan.Price = *input.Price
	}
	if input.DurationDays != nil {
		plan.DurationDays = *input.DurationDays
	}

	return s.planRepo.Update(ctx, plan)
}

func (s *planService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}
