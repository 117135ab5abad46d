package categorybudget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// DeleteCategoryBudgetInput represents the input for removing a category budget.
type DeleteCategoryBudgetInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryBudgetUseCase removes the standing budget for a category.
// The row is deleted, not soft-disabled.
type DeleteCategoryBudgetUseCase struct {
	categoryBudgetRepo adapter.CategoryBudgetRepository
}

// NewDeleteCategoryBudgetUseCase creates a new DeleteCategoryBudgetUseCase instance.
func NewDeleteCategoryBudgetUseCase(categoryBudgetRepo adapter.CategoryBudgetRepository) *DeleteCategoryBudgetUseCase {
	return &DeleteCategoryBudgetUseCase{categoryBudgetRepo: categoryBudgetRepo}
}

// Execute deletes the budget for the category, if one exists.
func (uc *DeleteCategoryBudgetUseCase) Execute(ctx context.Context, input DeleteCategoryBudgetInput) error {
	budget, err := uc.categoryBudgetRepo.FindByUserAndCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to find category budget: %w", err)
	}
	if budget == nil {
		return domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeCategoryBudgetNotFound,
			"no budget exists for this category",
			domainerror.ErrCategoryBudgetNotFound,
		)
	}

	if err := uc.categoryBudgetRepo.Delete(ctx, budget.ID); err != nil {
		return fmt.Errorf("failed to delete category budget: %w", err)
	}

	return nil
}
