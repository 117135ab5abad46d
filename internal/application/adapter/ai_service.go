package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategorySpend pairs a category name with an amount of money.
type CategorySpend struct {
	Category string
	Amount   decimal.Decimal
}

// BudgetRefinementRequest carries the baseline allocation and recent spending
// context used to ask the model for refined per-category amounts.
type BudgetRefinementRequest struct {
	Month         string
	Income        decimal.Decimal
	Spendable     decimal.Decimal
	Baseline      []CategorySpend
	RecentSpend   []CategorySpend
	Currency      string
}

// BudgetRefinement is a per-category amount proposed by the model.
type BudgetRefinement struct {
	Category string
	Amount   decimal.Decimal
}

// RebalancingRequest carries a stored plan and the actual spending against it,
// used to ask the model for rebalancing advice.
type RebalancingRequest struct {
	Month       string
	Allocations []CategorySpend
	ActualSpend []CategorySpend
	Currency    string
}

// RebalancingAdvice is a per-category adjustment proposed by the model.
type RebalancingAdvice struct {
	Category    string
	DeltaAmount decimal.Decimal
	Reason      string
}

// AIBudgetService defines the interface for AI-assisted budgeting operations.
// Implementations are best-effort: callers fall back to deterministic behavior
// when a call fails.
type AIBudgetService interface {
	// SuggestAllocations asks the model to refine a baseline allocation.
	// The returned amounts cover a subset of the baseline categories.
	SuggestAllocations(ctx context.Context, req BudgetRefinementRequest) ([]BudgetRefinement, error)

	// SuggestRebalancing asks the model for rebalancing advice on a stored
	// plan given the month's actual spending.
	SuggestRebalancing(ctx context.Context, req RebalancingRequest) ([]RebalancingAdvice, error)
}
