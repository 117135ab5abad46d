// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetMethod represents the allocation method used to build a plan.
type BudgetMethod string

const (
	BudgetMethodFixedSplit BudgetMethod = "fixed-percentage-split"
	BudgetMethodZeroBased  BudgetMethod = "zero-based"
)

// Allocation is one (category, amount, percentage) entry of a budget plan.
type Allocation struct {
	Category string
	Amount   decimal.Decimal
	Pct      decimal.Decimal
}

// PlanTotals holds the aggregate figures of a plan. Remaining may be
// negative when the plan is over-allocated; that is reported, not rejected.
type PlanTotals struct {
	Allocated decimal.Decimal
	Savings   decimal.Decimal
	Remaining decimal.Decimal
}

// BudgetPlan represents one saved allocation plan. There is exactly one
// plan per (UserID, Month); re-saving the same month overwrites it.
type BudgetPlan struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Month            string // YYYY-MM
	Method           BudgetMethod
	Income           decimal.Decimal
	TargetSavingsPct int
	Allocations      []Allocation
	Totals           PlanTotals
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBudgetPlan creates a new BudgetPlan entity.
func NewBudgetPlan(
	userID uuid.UUID,
	month string,
	method BudgetMethod,
	income decimal.Decimal,
	targetSavingsPct int,
	allocations []Allocation,
	totals PlanTotals,
) *BudgetPlan {
	now := time.Now().UTC()

	return &BudgetPlan{
		ID:               uuid.New(),
		UserID:           userID,
		Month:            month,
		Method:           method,
		Income:           income,
		TargetSavingsPct: targetSavingsPct,
		Allocations:      allocations,
		Totals:           totals,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// PlanChange is a single rebalancing suggestion: a signed amount delta for
// one category with a human-readable reason.
type PlanChange struct {
	Category    string
	DeltaAmount decimal.Decimal
	Reason      string
}
