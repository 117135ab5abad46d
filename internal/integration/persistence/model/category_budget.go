// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryBudgetModel represents the category_budgets table in the database.
// The (user_id, category_id) pair is unique; at most one budget per category.
type CategoryBudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_category_budgets_user_category"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_category_budgets_user_category"`
	BudgetAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period         string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	AlertThreshold int             `gorm:"not null;default:80"`
	// No column default: gorm would skip a false value on insert and the
	// default would silently reactivate a disabled budget.
	IsActive  bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CategoryBudgetModel.
func (CategoryBudgetModel) TableName() string {
	return "category_budgets"
}

// ToEntity converts a CategoryBudgetModel to a domain CategoryBudget entity.
func (m *CategoryBudgetModel) ToEntity() *entity.CategoryBudget {
	return &entity.CategoryBudget{
		ID:             m.ID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		BudgetAmount:   m.BudgetAmount,
		Period:         entity.BudgetPeriod(m.Period),
		AlertThreshold: m.AlertThreshold,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a CategoryBudgetModel with its Category loaded.
func (m *CategoryBudgetModel) ToEntityWithCategory() entity.CategoryBudgetWithCategory {
	result := entity.CategoryBudgetWithCategory{
		Budget: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// CategoryBudgetFromEntity creates a CategoryBudgetModel from a domain CategoryBudget entity.
func CategoryBudgetFromEntity(budget *entity.CategoryBudget) *CategoryBudgetModel {
	return &CategoryBudgetModel{
		ID:             budget.ID,
		UserID:         budget.UserID,
		CategoryID:     budget.CategoryID,
		BudgetAmount:   budget.BudgetAmount,
		Period:         string(budget.Period),
		AlertThreshold: budget.AlertThreshold,
		IsActive:       budget.IsActive,
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}
}
