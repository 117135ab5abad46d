// Package budget contains budget plan use cases.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
)

// SavingsFor computes the rounded savings amount for an income and a target
// savings percentage.
func SavingsFor(income decimal.Decimal, targetSavingsPct int) decimal.Decimal {
	return income.Mul(decimal.NewFromInt(int64(targetSavingsPct))).Div(hundred).Round(0)
}

// Allocate splits the spendable part of income evenly across the given
// categories. The split uses floor division, so a remainder smaller than the
// category count stays undistributed. Percentages are relative to income and
// rounded to whole numbers; they are 0 when income is 0.
func Allocate(income decimal.Decimal, targetSavingsPct int, categories []string) ([]entity.Allocation, entity.PlanTotals) {
	savings := SavingsFor(income, targetSavingsPct)
	spendable := income.Sub(savings)
	if spendable.IsNegative() {
		spendable = decimal.Zero
	}

	allocations := make([]entity.Allocation, 0, len(categories))
	if len(categories) > 0 {
		base := spendable.Div(decimal.NewFromInt(int64(len(categories)))).Floor()
		for _, category := range categories {
			allocations = append(allocations, entity.Allocation{
				Category: category,
				Amount:   base,
				Pct:      pctOfIncome(base, income),
			})
		}
	}

	return allocations, totalsFor(income, savings, allocations)
}

// AllocateZeroBased splits the spendable part of income across categories in
// proportion to their historical spend. Categories with no history receive
// nothing. When there is no history at all, the even split is used instead.
func AllocateZeroBased(income decimal.Decimal, targetSavingsPct int, categories []string, history map[string]decimal.Decimal) ([]entity.Allocation, entity.PlanTotals) {
	totalWeight := decimal.Zero
	for _, category := range categories {
		if weight, ok := history[category]; ok && weight.IsPositive() {
			totalWeight = totalWeight.Add(weight)
		}
	}
	if !totalWeight.IsPositive() {
		return Allocate(income, targetSavingsPct, categories)
	}

	savings := SavingsFor(income, targetSavingsPct)
	spendable := income.Sub(savings)
	if spendable.IsNegative() {
		spendable = decimal.Zero
	}

	allocations := make([]entity.Allocation, 0, len(categories))
	for _, category := range categories {
		amount := decimal.Zero
		if weight, ok := history[category]; ok && weight.IsPositive() {
			amount = spendable.Mul(weight).Div(totalWeight).Floor()
		}
		allocations = append(allocations, entity.Allocation{
			Category: category,
			Amount:   amount,
			Pct:      pctOfIncome(amount, income),
		})
	}

	return allocations, totalsFor(income, savings, allocations)
}

// ApplyRefinement overlays model-proposed amounts onto a baseline allocation.
// Proposals for unknown categories are dropped. When the proposed sum alone
// exceeds the spendable envelope, the proposed amounts are uniformly rescaled
// down to fit it; categories the proposal does not cover keep their baseline
// amount even when the combined total then exceeds spendable. Totals are
// recomputed from the final amounts.
func ApplyRefinement(
	income decimal.Decimal,
	targetSavingsPct int,
	baseline []entity.Allocation,
	refinements []adapter.BudgetRefinement,
) ([]entity.Allocation, entity.PlanTotals) {
	savings := SavingsFor(income, targetSavingsPct)
	spendable := income.Sub(savings)
	if spendable.IsNegative() {
		spendable = decimal.Zero
	}

	known := make(map[string]int, len(baseline))
	for i, alloc := range baseline {
		known[alloc.Category] = i
	}

	proposed := make(map[string]decimal.Decimal, len(refinements))
	proposedSum := decimal.Zero
	for _, ref := range refinements {
		if _, ok := known[ref.Category]; !ok {
			continue
		}
		if ref.Amount.IsNegative() {
			continue
		}
		proposed[ref.Category] = ref.Amount
		proposedSum = proposedSum.Add(ref.Amount)
	}

	if len(proposed) == 0 {
		return baseline, totalsFor(income, savings, baseline)
	}

	// Uncovered categories keep their baseline amount regardless; the
	// combined total may then exceed spendable and remaining goes negative.
	scale := decimal.NewFromInt(1)
	if proposedSum.GreaterThan(spendable) && proposedSum.IsPositive() {
		scale = spendable.Div(proposedSum)
	}

	refined := make([]entity.Allocation, len(baseline))
	for i, alloc := range baseline {
		amount := alloc.Amount
		if p, ok := proposed[alloc.Category]; ok {
			amount = p.Mul(scale).Floor()
		}
		refined[i] = entity.Allocation{
			Category: alloc.Category,
			Amount:   amount,
			Pct:      pctOfIncome(amount, income),
		}
	}

	return refined, totalsFor(income, savings, refined)
}

func pctOfIncome(amount, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(income).Mul(hundred).Round(0)
}

func totalsFor(income, savings decimal.Decimal, allocations []entity.Allocation) entity.PlanTotals {
	allocated := decimal.Zero
	for _, alloc := range allocations {
		allocated = allocated.Add(alloc.Amount)
	}
	return entity.PlanTotals{
		Allocated: allocated,
		Savings:   savings,
		Remaining: income.Sub(savings).Sub(allocated),
	}
}
