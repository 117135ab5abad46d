package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/domain/valueobject"
)

// ListAlertsInput represents the input for listing reconciliation alerts.
type ListAlertsInput struct {
	UserID uuid.UUID
	Month  string
}

// ListAlertsOutput represents the output of listing reconciliation alerts.
type ListAlertsOutput struct {
	Alerts []entity.Alert
}

// ListAlertsUseCase reconciles spending against standing category budgets and
// the stored plan for a month.
//
// Category budgets are always checked against the current calendar month,
// while the plan check uses the requested month. The two windows are
// independent; a request for a past month still reports category budget
// alerts for today's month.
type ListAlertsUseCase struct {
	categoryBudgetRepo adapter.CategoryBudgetRepository
	planRepo           adapter.PlanRepository
	txRepo             adapter.TransactionRepository
	now                func() time.Time
}

// NewListAlertsUseCase creates a new ListAlertsUseCase instance.
func NewListAlertsUseCase(
	categoryBudgetRepo adapter.CategoryBudgetRepository,
	planRepo adapter.PlanRepository,
	txRepo adapter.TransactionRepository,
) *ListAlertsUseCase {
	return &ListAlertsUseCase{
		categoryBudgetRepo: categoryBudgetRepo,
		planRepo:           planRepo,
		txRepo:             txRepo,
		now:                time.Now,
	}
}

// Execute computes the alert list. Category budget alerts come first, then
// plan overage alerts; no deduplication and no severity sort.
func (uc *ListAlertsUseCase) Execute(ctx context.Context, input ListAlertsInput) (*ListAlertsOutput, error) {
	requested, err := valueobject.ParseMonth(input.Month)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthKey,
			"month must be formatted as YYYY-MM",
			domainerror.ErrInvalidMonthKey,
		)
	}

	alerts := []entity.Alert{}

	budgets, err := uc.categoryBudgetRepo.ListActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category budgets: %w", err)
	}

	current := valueobject.MonthOf(uc.now())
	currentStart, currentEnd := current.Bounds()
	currentSpend, err := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate current-month spend: %w", err)
	}

	for _, bc := range budgets {
		if bc.Budget.Period != entity.BudgetPeriodMonthly {
			continue
		}
		spent := currentSpend[bc.Category.Name]
		if alert := ClassifyCategoryBudget(bc.Budget, bc.Category.Name, current.String(), spent); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	plan, err := uc.planRepo.FindByUserAndMonth(ctx, input.UserID, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget plan: %w", err)
	}
	if plan != nil {
		start, end := requested.Bounds()
		planSpend, err := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate month-to-date spend: %w", err)
		}
		for _, allocation := range plan.Allocations {
			if alert := ClassifyPlanOverage(allocation, requested.String(), planSpend[allocation.Category]); alert != nil {
				alerts = append(alerts, *alert)
			}
		}
	}

	return &ListAlertsOutput{Alerts: alerts}, nil
}
