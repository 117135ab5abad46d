package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

func TestRecommend(t *testing.T) {
	t.Run("trims largest categories first when over-allocated", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(30000)},
			{Category: "Transport", Amount: decimal.NewFromInt(20000)},
		}

		changes := Recommend(decimal.NewFromInt(40000), 10, allocations)

		// remaining = 40000 - 4000 - 50000 = -14000; the 10% caps only
		// recover 5000 of it.
		if len(changes) != 2 {
			t.Fatalf("expected 2 changes, got %d", len(changes))
		}
		if changes[0].Category != "Food" || !changes[0].DeltaAmount.Equal(decimal.NewFromInt(-3000)) {
			t.Errorf("expected Food -3000 first, got %s %s", changes[0].Category, changes[0].DeltaAmount)
		}
		if changes[1].Category != "Transport" || !changes[1].DeltaAmount.Equal(decimal.NewFromInt(-2000)) {
			t.Errorf("expected Transport -2000 second, got %s %s", changes[1].Category, changes[1].DeltaAmount)
		}
	})

	t.Run("trim is capped at the remaining deficit", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(30000)},
			{Category: "Transport", Amount: decimal.NewFromInt(10000)},
		}

		// remaining = 40000 - 0 - 40000 - ... income 39900, savings 0 ->
		// deficit = 100, well under 10% of Food.
		changes := Recommend(decimal.NewFromInt(39900), 0, allocations)

		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		if !changes[0].DeltaAmount.Equal(decimal.NewFromInt(-100)) {
			t.Errorf("expected -100, got %s", changes[0].DeltaAmount)
		}
	})

	t.Run("never trims more than the deficit in total", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "A", Amount: decimal.NewFromInt(5000)},
			{Category: "B", Amount: decimal.NewFromInt(5000)},
			{Category: "C", Amount: decimal.NewFromInt(5000)},
		}

		// deficit = 15000 - 14200 = 800
		changes := Recommend(decimal.NewFromInt(14200), 0, allocations)

		trimmed := decimal.Zero
		for _, change := range changes {
			if !change.DeltaAmount.IsNegative() {
				t.Errorf("expected negative delta, got %s", change.DeltaAmount)
			}
			trimmed = trimmed.Add(change.DeltaAmount.Neg())
		}
		if trimmed.GreaterThan(decimal.NewFromInt(800)) {
			t.Errorf("trimmed %s exceeds deficit 800", trimmed)
		}
	})

	t.Run("ties keep original relative order", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Second", Amount: decimal.NewFromInt(10000)},
			{Category: "First", Amount: decimal.NewFromInt(10000)},
		}

		changes := Recommend(decimal.NewFromInt(15000), 0, allocations)

		if len(changes) != 2 {
			t.Fatalf("expected 2 changes, got %d", len(changes))
		}
		if changes[0].Category != "Second" || changes[1].Category != "First" {
			t.Errorf("stable sort violated: got %s then %s", changes[0].Category, changes[1].Category)
		}
	})

	t.Run("redirects surplus to savings when savings are under 20 percent", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(30000)},
		}

		// savings = 5000 (10%), remaining = 50000 - 5000 - 30000 = 15000,
		// move = min(15000, 2500) = 2500.
		changes := Recommend(decimal.NewFromInt(50000), 10, allocations)

		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		if changes[0].Category != SavingsCategory {
			t.Errorf("expected Savings pseudo-category, got %s", changes[0].Category)
		}
		if !changes[0].DeltaAmount.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("expected +2500, got %s", changes[0].DeltaAmount)
		}
	})

	t.Run("surplus move is capped at the remaining amount", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(44000)},
		}

		// savings = 5000, remaining = 1000 < 5% of income.
		changes := Recommend(decimal.NewFromInt(50000), 10, allocations)

		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		if !changes[0].DeltaAmount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected +1000, got %s", changes[0].DeltaAmount)
		}
	})

	t.Run("no changes when savings already meet the target", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(30000)},
		}

		changes := Recommend(decimal.NewFromInt(50000), 25, allocations)

		if len(changes) != 0 {
			t.Errorf("expected no changes, got %d", len(changes))
		}
	})

	t.Run("balanced plan yields no changes", func(t *testing.T) {
		allocations := []entity.Allocation{
			{Category: "Food", Amount: decimal.NewFromInt(45000)},
		}

		changes := Recommend(decimal.NewFromInt(50000), 10, allocations)

		if len(changes) != 0 {
			t.Errorf("expected no changes, got %d", len(changes))
		}
	})
}
