// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// GeneratePlanRequest represents the request body for plan generation.
type GeneratePlanRequest struct {
	Month            string  `json:"month" binding:"required"`
	Income           float64 `json:"income"`
	TargetSavingsPct int     `json:"target_savings_pct"`
	Method           string  `json:"method" binding:"required,oneof=fixed-percentage-split zero-based"`
}

// AllocationRequest represents one allocation entry in a submitted plan.
type AllocationRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount"`
}

// SavePlanRequest represents the request body for saving a plan.
type SavePlanRequest struct {
	Month            string              `json:"month" binding:"required"`
	Income           float64             `json:"income"`
	TargetSavingsPct int                 `json:"target_savings_pct"`
	Method           string              `json:"method" binding:"required,oneof=fixed-percentage-split zero-based"`
	Allocations      []AllocationRequest `json:"allocations" binding:"required,min=1"`
}

// RecommendChangesRequest represents the request body for a rebalancing
// recommendation on a draft or stored plan.
type RecommendChangesRequest struct {
	Month            string              `json:"month" binding:"required"`
	Income           float64             `json:"income"`
	TargetSavingsPct int                 `json:"target_savings_pct"`
	Allocations      []AllocationRequest `json:"allocations" binding:"required,min=1"`
}

// AllocationResponse represents one allocation entry in API responses.
type AllocationResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Pct      string `json:"pct"`
}

// PlanTotalsResponse represents the aggregate figures of a plan.
type PlanTotalsResponse struct {
	Allocated string `json:"allocated"`
	Savings   string `json:"savings"`
	Remaining string `json:"remaining"`
}

// PlanResponse represents a budget plan in API responses.
type PlanResponse struct {
	ID               string               `json:"id"`
	Month            string               `json:"month"`
	Method           string               `json:"method"`
	Income           string               `json:"income"`
	TargetSavingsPct int                  `json:"target_savings_pct"`
	Allocations      []AllocationResponse `json:"allocations"`
	Totals           PlanTotalsResponse   `json:"totals"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// GeneratePlanResponse represents the response for plan generation.
type GeneratePlanResponse struct {
	Plan PlanResponse      `json:"plan"`
	MTD  map[string]string `json:"mtd_spend"`
}

// CurrentPlanResponse represents the response for fetching a stored plan.
// Plan is null when no plan has been saved for the month.
type CurrentPlanResponse struct {
	Plan *PlanResponse     `json:"plan"`
	MTD  map[string]string `json:"mtd_spend"`
}

// SavePlanResponse represents the response for persisting a plan.
type SavePlanResponse struct {
	Plan PlanResponse `json:"plan"`
}

// PlanHistoryResponse represents the response for listing saved plans,
// newest month first.
type PlanHistoryResponse struct {
	Items []PlanResponse `json:"items"`
}

// PlanChangeResponse represents one rebalancing suggestion.
type PlanChangeResponse struct {
	Category    string `json:"category"`
	DeltaAmount string `json:"delta_amount"`
	Reason      string `json:"reason"`
}

// RecommendChangesResponse represents the response for a rebalancing recommendation.
type RecommendChangesResponse struct {
	Changes []PlanChangeResponse `json:"changes"`
}

// ToPlanResponse converts a BudgetPlan entity to a PlanResponse DTO.
func ToPlanResponse(plan *entity.BudgetPlan) PlanResponse {
	allocations := make([]AllocationResponse, len(plan.Allocations))
	for i, a := range plan.Allocations {
		allocations[i] = AllocationResponse{
			Category: a.Category,
			Amount:   a.Amount.String(),
			Pct:      a.Pct.String(),
		}
	}

	return PlanResponse{
		ID:               plan.ID.String(),
		Month:            plan.Month,
		Method:           string(plan.Method),
		Income:           plan.Income.String(),
		TargetSavingsPct: plan.TargetSavingsPct,
		Allocations:      allocations,
		Totals: PlanTotalsResponse{
			Allocated: plan.Totals.Allocated.String(),
			Savings:   plan.Totals.Savings.String(),
			Remaining: plan.Totals.Remaining.String(),
		},
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
}

// ToMTDResponse converts a month-to-date spend map to its API form.
func ToMTDResponse(mtd map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(mtd))
	for category, amount := range mtd {
		out[category] = amount.String()
	}
	return out
}

// ToAllocations converts submitted allocation entries to domain allocations.
// Percentages are recomputed server side.
func ToAllocations(reqs []AllocationRequest) []entity.Allocation {
	allocations := make([]entity.Allocation, len(reqs))
	for i, r := range reqs {
		allocations[i] = entity.Allocation{
			Category: r.Category,
			Amount:   decimal.NewFromFloat(r.Amount),
		}
	}
	return allocations
}

// ToPlanChangeResponses converts rebalancing suggestions to their API form.
func ToPlanChangeResponses(changes []entity.PlanChange) []PlanChangeResponse {
	out := make([]PlanChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = PlanChangeResponse{
			Category:    c.Category,
			DeltaAmount: c.DeltaAmount.String(),
			Reason:      c.Reason,
		}
	}
	return out
}
