package categorybudget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

type stubCategoryRepo struct {
	adapter.CategoryRepository
	category *entity.Category
	err      error
}

func (s *stubCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return s.category, s.err
}

type stubCategoryBudgetRepo struct {
	adapter.CategoryBudgetRepository
	upserted *entity.CategoryBudget
}

func (s *stubCategoryBudgetRepo) Upsert(ctx context.Context, budget *entity.CategoryBudget) (*entity.CategoryBudget, error) {
	s.upserted = budget
	return budget, nil
}

func TestUpsertCategoryBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	category := entity.NewCategory(userID, "Groceries", "#00AA00", "cart", entity.CategoryTypeExpense)
	category.ID = categoryID

	baseInput := UpsertCategoryBudgetInput{
		UserID:       userID,
		CategoryID:   categoryID,
		BudgetAmount: decimal.NewFromInt(1000),
		Period:       entity.BudgetPeriodMonthly,
	}

	t.Run("upserts with the default alert threshold", func(t *testing.T) {
		budgets := &stubCategoryBudgetRepo{}
		uc := NewUpsertCategoryBudgetUseCase(budgets, &stubCategoryRepo{category: category})

		output, err := uc.Execute(context.Background(), baseInput)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget.AlertThreshold != entity.DefaultAlertThreshold {
			t.Errorf("expected threshold %d, got %d", entity.DefaultAlertThreshold, output.Budget.AlertThreshold)
		}
		if budgets.upserted == nil {
			t.Fatal("expected the budget to be upserted")
		}
	})

	t.Run("maps a missing category to a category budget error", func(t *testing.T) {
		uc := NewUpsertCategoryBudgetUseCase(
			&stubCategoryBudgetRepo{},
			&stubCategoryRepo{err: domainerror.ErrCategoryNotFound},
		)

		_, err := uc.Execute(context.Background(), baseInput)

		var budgetErr *domainerror.CategoryBudgetError
		if !errors.As(err, &budgetErr) {
			t.Fatalf("expected a CategoryBudgetError, got %v", err)
		}
		if budgetErr.Code != domainerror.ErrCodeBudgetCategoryNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeBudgetCategoryNotFound, budgetErr.Code)
		}
	})

	t.Run("rejects a category owned by another user", func(t *testing.T) {
		other := entity.NewCategory(uuid.New(), "Groceries", "#00AA00", "cart", entity.CategoryTypeExpense)
		other.ID = categoryID
		uc := NewUpsertCategoryBudgetUseCase(&stubCategoryBudgetRepo{}, &stubCategoryRepo{category: other})

		_, err := uc.Execute(context.Background(), baseInput)

		var budgetErr *domainerror.CategoryBudgetError
		if !errors.As(err, &budgetErr) {
			t.Fatalf("expected a CategoryBudgetError, got %v", err)
		}
		if budgetErr.Code != domainerror.ErrCodeCategoryNotOwnedByUser {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCategoryNotOwnedByUser, budgetErr.Code)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		uc := NewUpsertCategoryBudgetUseCase(&stubCategoryBudgetRepo{}, &stubCategoryRepo{category: category})

		input := baseInput
		input.BudgetAmount = decimal.Zero
		_, err := uc.Execute(context.Background(), input)

		var budgetErr *domainerror.CategoryBudgetError
		if !errors.As(err, &budgetErr) {
			t.Fatalf("expected a CategoryBudgetError, got %v", err)
		}
		if budgetErr.Code != domainerror.ErrCodeInvalidBudgetAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidBudgetAmount, budgetErr.Code)
		}
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		uc := NewUpsertCategoryBudgetUseCase(&stubCategoryBudgetRepo{}, &stubCategoryRepo{category: category})

		input := baseInput
		input.Period = entity.BudgetPeriod("daily")
		_, err := uc.Execute(context.Background(), input)

		var budgetErr *domainerror.CategoryBudgetError
		if !errors.As(err, &budgetErr) {
			t.Fatalf("expected a CategoryBudgetError, got %v", err)
		}
		if budgetErr.Code != domainerror.ErrCodeInvalidBudgetPeriod {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidBudgetPeriod, budgetErr.Code)
		}
	})
}
