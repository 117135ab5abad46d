package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/domain/valueobject"
)

// PlanRepository defines the interface for budget plan persistence operations.
type PlanRepository interface {
	// Save inserts the plan for its (user, month) pair, or fully replaces the
	// existing row when one is already stored. It returns the stored plan.
	Save(ctx context.Context, plan *entity.BudgetPlan) (*entity.BudgetPlan, error)

	// FindByUserAndMonth retrieves the stored plan for a user and month.
	// Returns nil when no plan has been saved for that month.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) (*entity.BudgetPlan, error)

	// History retrieves the user's saved plans ordered by month descending,
	// newest first, limited to the given count.
	History(ctx context.Context, userID uuid.UUID, limit int) ([]entity.BudgetPlan, error)
}
