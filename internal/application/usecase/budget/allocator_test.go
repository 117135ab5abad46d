package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
)

func TestAllocate(t *testing.T) {
	t.Run("splits spendable income evenly across categories", func(t *testing.T) {
		income := decimal.NewFromInt(50000)

		allocations, totals := Allocate(income, 10, []string{"Food", "Transport"})

		if len(allocations) != 2 {
			t.Fatalf("expected 2 allocations, got %d", len(allocations))
		}
		for _, alloc := range allocations {
			if !alloc.Amount.Equal(decimal.NewFromInt(22500)) {
				t.Errorf("category %s: expected amount 22500, got %s", alloc.Category, alloc.Amount)
			}
			if !alloc.Pct.Equal(decimal.NewFromInt(45)) {
				t.Errorf("category %s: expected pct 45, got %s", alloc.Category, alloc.Pct)
			}
		}
		if !totals.Savings.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected savings 5000, got %s", totals.Savings)
		}
		if !totals.Allocated.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected allocated 45000, got %s", totals.Allocated)
		}
		if !totals.Remaining.IsZero() {
			t.Errorf("expected remaining 0, got %s", totals.Remaining)
		}
	})

	t.Run("floor division leaves remainder undistributed", func(t *testing.T) {
		income := decimal.NewFromInt(1000)

		allocations, totals := Allocate(income, 0, []string{"A", "B", "C"})

		for _, alloc := range allocations {
			if !alloc.Amount.Equal(decimal.NewFromInt(333)) {
				t.Errorf("category %s: expected amount 333, got %s", alloc.Category, alloc.Amount)
			}
		}
		if !totals.Allocated.Equal(decimal.NewFromInt(999)) {
			t.Errorf("expected allocated 999, got %s", totals.Allocated)
		}
		if !totals.Remaining.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected remaining 1, got %s", totals.Remaining)
		}
	})

	t.Run("zero income yields zero amounts and zero percentages", func(t *testing.T) {
		allocations, totals := Allocate(decimal.Zero, 10, []string{"Food"})

		if !allocations[0].Amount.IsZero() {
			t.Errorf("expected zero amount, got %s", allocations[0].Amount)
		}
		if !allocations[0].Pct.IsZero() {
			t.Errorf("expected zero pct, got %s", allocations[0].Pct)
		}
		if !totals.Allocated.IsZero() || !totals.Savings.IsZero() || !totals.Remaining.IsZero() {
			t.Errorf("expected all-zero totals, got %+v", totals)
		}
	})

	t.Run("allocated never exceeds the spendable envelope", func(t *testing.T) {
		cases := []struct {
			income int64
			pct    int
			n      int
		}{
			{50000, 10, 2},
			{1, 90, 5},
			{99999, 33, 7},
			{40000, 0, 1},
			{12345, 50, 3},
		}
		for _, tc := range cases {
			categories := make([]string, tc.n)
			for i := range categories {
				categories[i] = string(rune('A' + i))
			}
			income := decimal.NewFromInt(tc.income)

			allocations, totals := Allocate(income, tc.pct, categories)

			spendable := income.Sub(totals.Savings)
			if totals.Allocated.GreaterThan(spendable) {
				t.Errorf("income=%d pct=%d n=%d: allocated %s exceeds spendable %s",
					tc.income, tc.pct, tc.n, totals.Allocated, spendable)
			}
			sum := decimal.Zero
			for _, alloc := range allocations {
				sum = sum.Add(alloc.Amount)
			}
			if !sum.Equal(totals.Allocated) {
				t.Errorf("income=%d pct=%d n=%d: totals.Allocated %s != sum %s",
					tc.income, tc.pct, tc.n, totals.Allocated, sum)
			}
		}
	})
}

func TestAllocateZeroBased(t *testing.T) {
	income := decimal.NewFromInt(50000)

	t.Run("splits in proportion to historical spend", func(t *testing.T) {
		history := map[string]decimal.Decimal{
			"Food":      decimal.NewFromInt(30000),
			"Transport": decimal.NewFromInt(15000),
		}

		allocations, totals := AllocateZeroBased(income, 10, []string{"Food", "Transport"}, history)

		byName := allocationsByName(allocations)
		if !byName["Food"].Equal(decimal.NewFromInt(30000)) {
			t.Errorf("expected Food 30000, got %s", byName["Food"])
		}
		if !byName["Transport"].Equal(decimal.NewFromInt(15000)) {
			t.Errorf("expected Transport 15000, got %s", byName["Transport"])
		}
		if !totals.Allocated.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected allocated 45000, got %s", totals.Allocated)
		}
	})

	t.Run("categories without history receive nothing", func(t *testing.T) {
		history := map[string]decimal.Decimal{
			"Food": decimal.NewFromInt(10000),
		}

		allocations, _ := AllocateZeroBased(income, 10, []string{"Food", "Hobbies"}, history)

		byName := allocationsByName(allocations)
		if !byName["Food"].Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected Food 45000, got %s", byName["Food"])
		}
		if !byName["Hobbies"].IsZero() {
			t.Errorf("expected Hobbies 0, got %s", byName["Hobbies"])
		}
	})

	t.Run("falls back to even split without history", func(t *testing.T) {
		allocations, totals := AllocateZeroBased(income, 10, []string{"Food", "Transport"}, nil)

		evenAllocs, evenTotals := Allocate(income, 10, []string{"Food", "Transport"})
		for i := range allocations {
			if !allocations[i].Amount.Equal(evenAllocs[i].Amount) {
				t.Errorf("category %s: expected %s, got %s",
					allocations[i].Category, evenAllocs[i].Amount, allocations[i].Amount)
			}
		}
		if !totals.Allocated.Equal(evenTotals.Allocated) {
			t.Errorf("expected allocated %s, got %s", evenTotals.Allocated, totals.Allocated)
		}
	})
}

func TestApplyRefinement(t *testing.T) {
	income := decimal.NewFromInt(50000)
	baseline, _ := Allocate(income, 10, []string{"Food", "Transport", "Rent"})

	t.Run("overlays proposed amounts and keeps baseline for uncovered categories", func(t *testing.T) {
		refined, totals := ApplyRefinement(income, 10, baseline, []adapter.BudgetRefinement{
			{Category: "Food", Amount: decimal.NewFromInt(20000)},
		})

		byName := allocationsByName(refined)
		if !byName["Food"].Equal(decimal.NewFromInt(20000)) {
			t.Errorf("expected Food 20000, got %s", byName["Food"])
		}
		if !byName["Transport"].Equal(baseline[1].Amount) {
			t.Errorf("expected Transport to keep baseline %s, got %s", baseline[1].Amount, byName["Transport"])
		}
		// 20000 + 15000 + 15000 against a 45000 envelope: the overage is
		// reported through remaining, not clipped away.
		if !totals.Allocated.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("expected allocated 50000, got %s", totals.Allocated)
		}
		if !totals.Remaining.Equal(decimal.NewFromInt(-5000)) {
			t.Errorf("expected remaining -5000, got %s", totals.Remaining)
		}
	})

	t.Run("rescales proposals that overshoot the envelope", func(t *testing.T) {
		refined, totals := ApplyRefinement(income, 10, baseline, []adapter.BudgetRefinement{
			{Category: "Food", Amount: decimal.NewFromInt(40000)},
			{Category: "Transport", Amount: decimal.NewFromInt(40000)},
			{Category: "Rent", Amount: decimal.NewFromInt(40000)},
		})

		spendable := income.Sub(totals.Savings)
		if totals.Allocated.GreaterThan(spendable) {
			t.Errorf("allocated %s exceeds spendable %s", totals.Allocated, spendable)
		}
		byName := allocationsByName(refined)
		if !byName["Food"].Equal(byName["Transport"]) || !byName["Food"].Equal(byName["Rent"]) {
			t.Errorf("uniform rescale should keep equal proposals equal, got %v", byName)
		}
	})

	t.Run("drops unknown categories and negative amounts", func(t *testing.T) {
		refined, _ := ApplyRefinement(income, 10, baseline, []adapter.BudgetRefinement{
			{Category: "Yachts", Amount: decimal.NewFromInt(9999)},
			{Category: "Food", Amount: decimal.NewFromInt(-500)},
		})

		for i, alloc := range refined {
			if !alloc.Amount.Equal(baseline[i].Amount) {
				t.Errorf("category %s: expected baseline %s, got %s", alloc.Category, baseline[i].Amount, alloc.Amount)
			}
		}
	})

	t.Run("empty refinement returns the baseline unchanged", func(t *testing.T) {
		refined, totals := ApplyRefinement(income, 10, baseline, nil)

		if len(refined) != len(baseline) {
			t.Fatalf("expected %d allocations, got %d", len(baseline), len(refined))
		}
		for i := range refined {
			if !refined[i].Amount.Equal(baseline[i].Amount) {
				t.Errorf("category %s changed without a proposal", refined[i].Category)
			}
		}
		if !totals.Allocated.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected allocated 45000, got %s", totals.Allocated)
		}
	})
}

func allocationsByName(allocations []entity.Allocation) map[string]decimal.Decimal {
	byName := make(map[string]decimal.Decimal, len(allocations))
	for _, alloc := range allocations {
		byName[alloc.Category] = alloc.Amount
	}
	return byName
}
