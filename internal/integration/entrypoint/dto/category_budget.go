// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// UpsertCategoryBudgetRequest represents the request body for setting a
// standing category budget. The category comes from the URL path.
type UpsertCategoryBudgetRequest struct {
	BudgetAmount   float64 `json:"budget_amount" binding:"required"`
	Period         string  `json:"period" binding:"required,oneof=monthly weekly yearly"`
	AlertThreshold *int    `json:"alert_threshold,omitempty"`
}

// CategoryBudgetResponse represents a category budget in API responses.
type CategoryBudgetResponse struct {
	ID             string            `json:"id"`
	CategoryID     string            `json:"category_id"`
	Category       *CategoryResponse `json:"category,omitempty"`
	BudgetAmount   string            `json:"budget_amount"`
	Period         string            `json:"period"`
	AlertThreshold int               `json:"alert_threshold"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CategoryBudgetListResponse represents the response for listing category budgets.
type CategoryBudgetListResponse struct {
	Budgets []CategoryBudgetResponse `json:"budgets"`
}

// ToCategoryBudgetResponse converts a CategoryBudget entity to its API form.
func ToCategoryBudgetResponse(budget *entity.CategoryBudget, category *entity.Category) CategoryBudgetResponse {
	response := CategoryBudgetResponse{
		ID:             budget.ID.String(),
		CategoryID:     budget.CategoryID.String(),
		BudgetAmount:   budget.BudgetAmount.String(),
		Period:         string(budget.Period),
		AlertThreshold: budget.AlertThreshold,
		IsActive:       budget.IsActive,
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}

	if category != nil {
		cat := ToCategoryResponse(category)
		response.Category = &cat
	}

	return response
}

// ToCategoryBudgetListResponse converts budgets with categories to their API form.
func ToCategoryBudgetListResponse(items []entity.CategoryBudgetWithCategory) CategoryBudgetListResponse {
	budgets := make([]CategoryBudgetResponse, len(items))
	for i, item := range items {
		budgets[i] = ToCategoryBudgetResponse(item.Budget, item.Category)
	}
	return CategoryBudgetListResponse{
		Budgets: budgets,
	}
}
