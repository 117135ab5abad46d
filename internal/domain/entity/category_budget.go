// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period a category budget covers.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// DefaultAlertThreshold is the percentage of a budget at which a warning
// alert is raised when no explicit threshold is configured.
const DefaultAlertThreshold = 80

// CategoryBudget is a standing spending limit for one category,
// independent of any monthly plan. At most one exists per
// (UserID, CategoryID).
type CategoryBudget struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CategoryID     uuid.UUID
	BudgetAmount   decimal.Decimal
	Period         BudgetPeriod
	AlertThreshold int // 0-100, percent of the budget that triggers a warning
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCategoryBudget creates a new CategoryBudget entity.
func NewCategoryBudget(
	userID uuid.UUID,
	categoryID uuid.UUID,
	budgetAmount decimal.Decimal,
	period BudgetPeriod,
	alertThreshold int,
) *CategoryBudget {
	now := time.Now().UTC()

	return &CategoryBudget{
		ID:             uuid.New(),
		UserID:         userID,
		CategoryID:     categoryID,
		BudgetAmount:   budgetAmount,
		Period:         period,
		AlertThreshold: alertThreshold,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CategoryBudgetWithCategory pairs a category budget with its category.
type CategoryBudgetWithCategory struct {
	Budget   *CategoryBudget
	Category *Category
}
