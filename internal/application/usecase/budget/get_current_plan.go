package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/domain/valueobject"
)

// GetCurrentPlanInput represents the input for fetching a stored plan.
type GetCurrentPlanInput struct {
	UserID uuid.UUID
	Month  string
}

// GetCurrentPlanOutput represents the output of fetching a stored plan.
// Plan is nil when no plan has been saved for the month; that is not an error.
type GetCurrentPlanOutput struct {
	Plan *entity.BudgetPlan
	MTD  map[string]decimal.Decimal
}

// GetCurrentPlanUseCase fetches the stored plan for a month together with the
// month-to-date spend snapshot.
type GetCurrentPlanUseCase struct {
	planRepo adapter.PlanRepository
	txRepo   adapter.TransactionRepository
}

// NewGetCurrentPlanUseCase creates a new GetCurrentPlanUseCase instance.
func NewGetCurrentPlanUseCase(planRepo adapter.PlanRepository, txRepo adapter.TransactionRepository) *GetCurrentPlanUseCase {
	return &GetCurrentPlanUseCase{
		planRepo: planRepo,
		txRepo:   txRepo,
	}
}

// Execute fetches the plan and spend snapshot for the requested month.
func (uc *GetCurrentPlanUseCase) Execute(ctx context.Context, input GetCurrentPlanInput) (*GetCurrentPlanOutput, error) {
	month, err := valueobject.ParseMonth(input.Month)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthKey,
			"month must be formatted as YYYY-MM",
			domainerror.ErrInvalidMonthKey,
		)
	}

	plan, err := uc.planRepo.FindByUserAndMonth(ctx, input.UserID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget plan: %w", err)
	}

	start, end := month.Bounds()
	mtd, err := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month-to-date spend: %w", err)
	}

	return &GetCurrentPlanOutput{Plan: plan, MTD: mtd}, nil
}
