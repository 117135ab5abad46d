// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// AllocationJSON is one allocation entry as stored in the plan's JSONB column.
type AllocationJSON struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Pct      decimal.Decimal `json:"pct"`
}

// AllocationsJSON represents the JSONB structure for a plan's allocations.
type AllocationsJSON []AllocationJSON

// Value implements the driver.Valuer interface.
func (a AllocationsJSON) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface.
func (a *AllocationsJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// BudgetPlanModel represents the budget_plans table in the database.
// The (user_id, month) pair is unique; saves upsert against that index.
type BudgetPlanModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_plans_user_month"`
	Month            string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budget_plans_user_month"`
	Method           string          `gorm:"type:varchar(30);not null"`
	Income           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TargetSavingsPct int             `gorm:"not null"`
	Allocations      AllocationsJSON `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAllocated   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalSavings     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalRemaining   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetPlanModel.
func (BudgetPlanModel) TableName() string {
	return "budget_plans"
}

// ToEntity converts a BudgetPlanModel to a domain BudgetPlan entity.
func (m *BudgetPlanModel) ToEntity() *entity.BudgetPlan {
	allocations := make([]entity.Allocation, len(m.Allocations))
	for i, a := range m.Allocations {
		allocations[i] = entity.Allocation{
			Category: a.Category,
			Amount:   a.Amount,
			Pct:      a.Pct,
		}
	}

	return &entity.BudgetPlan{
		ID:               m.ID,
		UserID:           m.UserID,
		Month:            m.Month,
		Method:           entity.BudgetMethod(m.Method),
		Income:           m.Income,
		TargetSavingsPct: m.TargetSavingsPct,
		Allocations:      allocations,
		Totals: entity.PlanTotals{
			Allocated: m.TotalAllocated,
			Savings:   m.TotalSavings,
			Remaining: m.TotalRemaining,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetPlanFromEntity creates a BudgetPlanModel from a domain BudgetPlan entity.
func BudgetPlanFromEntity(plan *entity.BudgetPlan) *BudgetPlanModel {
	allocations := make(AllocationsJSON, len(plan.Allocations))
	for i, a := range plan.Allocations {
		allocations[i] = AllocationJSON{
			Category: a.Category,
			Amount:   a.Amount,
			Pct:      a.Pct,
		}
	}

	return &BudgetPlanModel{
		ID:               plan.ID,
		UserID:           plan.UserID,
		Month:            plan.Month,
		Method:           string(plan.Method),
		Income:           plan.Income,
		TargetSavingsPct: plan.TargetSavingsPct,
		Allocations:      allocations,
		TotalAllocated:   plan.Totals.Allocated,
		TotalSavings:     plan.Totals.Savings,
		TotalRemaining:   plan.Totals.Remaining,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
	}
}
