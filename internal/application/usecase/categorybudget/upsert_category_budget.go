// Package categorybudget contains standing category budget use cases.
package categorybudget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// UpsertCategoryBudgetInput represents the input for setting a category budget.
type UpsertCategoryBudgetInput struct {
	UserID         uuid.UUID
	CategoryID     uuid.UUID
	BudgetAmount   decimal.Decimal
	Period         entity.BudgetPeriod
	AlertThreshold *int // Optional, defaults to DefaultAlertThreshold
}

// UpsertCategoryBudgetOutput represents the output of setting a category budget.
type UpsertCategoryBudgetOutput struct {
	Budget   *entity.CategoryBudget
	Category *entity.Category
}

// UpsertCategoryBudgetUseCase creates or replaces the standing budget for a
// category. At most one budget exists per (user, category).
type UpsertCategoryBudgetUseCase struct {
	categoryBudgetRepo adapter.CategoryBudgetRepository
	categoryRepo       adapter.CategoryRepository
}

// NewUpsertCategoryBudgetUseCase creates a new UpsertCategoryBudgetUseCase instance.
func NewUpsertCategoryBudgetUseCase(
	categoryBudgetRepo adapter.CategoryBudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *UpsertCategoryBudgetUseCase {
	return &UpsertCategoryBudgetUseCase{
		categoryBudgetRepo: categoryBudgetRepo,
		categoryRepo:       categoryRepo,
	}
}

// Execute validates and upserts the budget.
func (uc *UpsertCategoryBudgetUseCase) Execute(ctx context.Context, input UpsertCategoryBudgetInput) (*UpsertCategoryBudgetOutput, error) {
	if !input.BudgetAmount.IsPositive() {
		return nil, domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be positive",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if !isValidPeriod(input.Period) {
		return nil, domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly', 'weekly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	threshold := entity.DefaultAlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}
	if threshold < 0 || threshold > 100 {
		return nil, domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeInvalidAlertThreshold,
			"alert threshold must be between 0 and 100",
			domainerror.ErrInvalidAlertThreshold,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrBudgetCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return nil, domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryBudgetError(
			domainerror.ErrCodeCategoryNotOwnedByUser,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	budget := entity.NewCategoryBudget(
		input.UserID,
		input.CategoryID,
		input.BudgetAmount,
		input.Period,
		threshold,
	)

	stored, err := uc.categoryBudgetRepo.Upsert(ctx, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert category budget: %w", err)
	}

	return &UpsertCategoryBudgetOutput{Budget: stored, Category: category}, nil
}

// isValidPeriod validates the budget period.
func isValidPeriod(period entity.BudgetPeriod) bool {
	return period == entity.BudgetPeriodMonthly ||
		period == entity.BudgetPeriodWeekly ||
		period == entity.BudgetPeriodYearly
}
