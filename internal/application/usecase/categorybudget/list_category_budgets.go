package categorybudget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
)

// ListCategoryBudgetsInput represents the input for listing category budgets.
type ListCategoryBudgetsInput struct {
	UserID uuid.UUID
}

// ListCategoryBudgetsOutput represents the output of listing category budgets.
type ListCategoryBudgetsOutput struct {
	Items []entity.CategoryBudgetWithCategory
}

// ListCategoryBudgetsUseCase lists the user's active category budgets.
type ListCategoryBudgetsUseCase struct {
	categoryBudgetRepo adapter.CategoryBudgetRepository
}

// NewListCategoryBudgetsUseCase creates a new ListCategoryBudgetsUseCase instance.
func NewListCategoryBudgetsUseCase(categoryBudgetRepo adapter.CategoryBudgetRepository) *ListCategoryBudgetsUseCase {
	return &ListCategoryBudgetsUseCase{categoryBudgetRepo: categoryBudgetRepo}
}

// Execute lists the active budgets with their categories.
func (uc *ListCategoryBudgetsUseCase) Execute(ctx context.Context, input ListCategoryBudgetsInput) (*ListCategoryBudgetsOutput, error) {
	items, err := uc.categoryBudgetRepo.ListActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category budgets: %w", err)
	}

	return &ListCategoryBudgetsOutput{Items: items}, nil
}
