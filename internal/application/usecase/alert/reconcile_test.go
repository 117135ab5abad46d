package alert

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

func newBudget(amount int64, threshold int) *entity.CategoryBudget {
	return entity.NewCategoryBudget(
		uuid.New(),
		uuid.New(),
		decimal.NewFromInt(amount),
		entity.BudgetPeriodMonthly,
		threshold,
	)
}

func TestClassifyCategoryBudget(t *testing.T) {
	t.Run("no alert below the warning threshold", func(t *testing.T) {
		budget := newBudget(10000, 80)

		alert := ClassifyCategoryBudget(budget, "Food", "2026-08", decimal.NewFromInt(7999))

		if alert != nil {
			t.Errorf("expected no alert, got %+v", alert)
		}
	})

	t.Run("warning at the threshold", func(t *testing.T) {
		budget := newBudget(10000, 80)

		alert := ClassifyCategoryBudget(budget, "Food", "2026-08", decimal.NewFromInt(8000))

		if alert == nil {
			t.Fatal("expected a warning alert")
		}
		if alert.Type != entity.AlertTypeCategoryBudgetThreshold {
			t.Errorf("expected type %s, got %s", entity.AlertTypeCategoryBudgetThreshold, alert.Type)
		}
		if alert.Severity != entity.AlertSeverityWarning {
			t.Errorf("expected severity warning, got %s", alert.Severity)
		}
	})

	t.Run("error at the full budget", func(t *testing.T) {
		budget := newBudget(10000, 80)

		alert := ClassifyCategoryBudget(budget, "Food", "2026-08", decimal.NewFromInt(10000))

		if alert == nil {
			t.Fatal("expected an error alert")
		}
		if alert.Type != entity.AlertTypeCategoryBudgetExceeded {
			t.Errorf("expected type %s, got %s", entity.AlertTypeCategoryBudgetExceeded, alert.Type)
		}
		if alert.Severity != entity.AlertSeverityError {
			t.Errorf("expected severity error, got %s", alert.Severity)
		}
	})

	t.Run("increasing spend never downgrades the classification", func(t *testing.T) {
		budget := newBudget(10000, 80)

		rank := func(spent int64) int {
			alert := ClassifyCategoryBudget(budget, "Food", "2026-08", decimal.NewFromInt(spent))
			switch {
			case alert == nil:
				return 0
			case alert.Severity == entity.AlertSeverityWarning:
				return 1
			default:
				return 2
			}
		}

		prev := rank(0)
		for spent := int64(500); spent <= 15000; spent += 500 {
			current := rank(spent)
			if current < prev {
				t.Fatalf("classification downgraded from %d to %d at spend %d", prev, current, spent)
			}
			prev = current
		}
	})
}

func TestClassifyPlanOverage(t *testing.T) {
	allocation := entity.Allocation{Category: "Food", Amount: decimal.NewFromInt(10000)}

	t.Run("no alert inside the tolerance", func(t *testing.T) {
		if alert := ClassifyPlanOverage(allocation, "2026-08", decimal.NewFromInt(11500)); alert != nil {
			t.Errorf("spend at exactly 115%% should not alert, got %+v", alert)
		}
	})

	t.Run("warning past the tolerance", func(t *testing.T) {
		alert := ClassifyPlanOverage(allocation, "2026-08", decimal.NewFromInt(11501))

		if alert == nil {
			t.Fatal("expected a budget_over alert")
		}
		if alert.Type != entity.AlertTypeBudgetOver {
			t.Errorf("expected type %s, got %s", entity.AlertTypeBudgetOver, alert.Type)
		}
		if alert.Severity != entity.AlertSeverityWarning {
			t.Errorf("expected severity warning, got %s", alert.Severity)
		}
	})

	t.Run("zero allocations never alert", func(t *testing.T) {
		zero := entity.Allocation{Category: "Food", Amount: decimal.Zero}

		if alert := ClassifyPlanOverage(zero, "2026-08", decimal.NewFromInt(99999)); alert != nil {
			t.Errorf("expected no alert for a zero allocation, got %+v", alert)
		}
	})
}
