package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
)

// HistoryLimit is the number of plans returned by the history operation.
const HistoryLimit = 24

// PlanHistoryInput represents the input for listing saved plans.
type PlanHistoryInput struct {
	UserID uuid.UUID
}

// PlanHistoryOutput represents the output of listing saved plans.
type PlanHistoryOutput struct {
	Items []entity.BudgetPlan
}

// PlanHistoryUseCase lists a user's saved plans, newest month first.
type PlanHistoryUseCase struct {
	planRepo adapter.PlanRepository
}

// NewPlanHistoryUseCase creates a new PlanHistoryUseCase instance.
func NewPlanHistoryUseCase(planRepo adapter.PlanRepository) *PlanHistoryUseCase {
	return &PlanHistoryUseCase{planRepo: planRepo}
}

// Execute lists the most recent saved plans.
func (uc *PlanHistoryUseCase) Execute(ctx context.Context, input PlanHistoryInput) (*PlanHistoryOutput, error) {
	items, err := uc.planRepo.History(ctx, input.UserID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan history: %w", err)
	}

	return &PlanHistoryOutput{Items: items}, nil
}
