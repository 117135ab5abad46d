// Package alert contains reconciliation alert use cases.
package alert

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// overageTolerance is how far month-to-date spend may exceed a plan
// allocation before a budget_over alert fires.
var overageTolerance = decimal.NewFromFloat(1.15)

// ClassifyCategoryBudget checks current-month spend against a standing
// category budget. Returns nil when no alert fires. Spend at or past the
// budget is an error; spend at or past the warning threshold is a warning.
func ClassifyCategoryBudget(budget *entity.CategoryBudget, categoryName, month string, spent decimal.Decimal) *entity.Alert {
	if spent.GreaterThanOrEqual(budget.BudgetAmount) {
		return &entity.Alert{
			Type:     entity.AlertTypeCategoryBudgetExceeded,
			Severity: entity.AlertSeverityError,
			Category: categoryName,
			Month:    month,
			Budgeted: budget.BudgetAmount,
			Spent:    spent,
			Message:  fmt.Sprintf("%s spending has reached its budget of %s", categoryName, budget.BudgetAmount),
		}
	}

	threshold := budget.BudgetAmount.Mul(decimal.NewFromInt(int64(budget.AlertThreshold))).Div(decimal.NewFromInt(100))
	if spent.GreaterThanOrEqual(threshold) {
		return &entity.Alert{
			Type:     entity.AlertTypeCategoryBudgetThreshold,
			Severity: entity.AlertSeverityWarning,
			Category: categoryName,
			Month:    month,
			Budgeted: budget.BudgetAmount,
			Spent:    spent,
			Message:  fmt.Sprintf("%s spending has passed %d%% of its budget", categoryName, budget.AlertThreshold),
		}
	}

	return nil
}

// ClassifyPlanOverage checks month-to-date spend against one plan allocation.
// Returns nil when spend stays inside the 15% overage tolerance or the
// allocation is zero.
func ClassifyPlanOverage(allocation entity.Allocation, month string, spent decimal.Decimal) *entity.Alert {
	if !allocation.Amount.IsPositive() {
		return nil
	}
	if !spent.GreaterThan(allocation.Amount.Mul(overageTolerance)) {
		return nil
	}

	return &entity.Alert{
		Type:     entity.AlertTypeBudgetOver,
		Severity: entity.AlertSeverityWarning,
		Category: allocation.Category,
		Month:    month,
		Budgeted: allocation.Amount,
		Spent:    spent,
		Message:  fmt.Sprintf("%s spending is more than 15%% over its planned %s", allocation.Category, allocation.Amount),
	}
}
