package budget

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

var (
	trimRate      = decimal.NewFromFloat(0.10)
	savingsFloor  = decimal.NewFromFloat(0.20)
	surplusToMove = decimal.NewFromFloat(0.05)
)

// SavingsCategory is the pseudo-category surplus recommendations move money into.
const SavingsCategory = "Savings"

// Recommend proposes rule-based adjustments to an allocation set.
//
// When the plan over-allocates its spendable income, categories are trimmed
// largest first, each by at most 10% of its current amount, until the deficit
// is covered or every category has been visited. A large deficit can stay
// partially uncovered; the caps are never exceeded to close it.
//
// When there is surplus and savings sit below 20% of income, up to 5% of
// income is redirected into the Savings pseudo-category. Otherwise no changes
// are proposed.
func Recommend(income decimal.Decimal, targetSavingsPct int, allocations []entity.Allocation) []entity.PlanChange {
	savings := SavingsFor(income, targetSavingsPct)
	totalAllocated := decimal.Zero
	for _, alloc := range allocations {
		totalAllocated = totalAllocated.Add(alloc.Amount)
	}
	remaining := income.Sub(savings).Sub(totalAllocated)

	changes := []entity.PlanChange{}

	switch {
	case remaining.IsNegative():
		deficit := remaining.Neg()

		sorted := make([]entity.Allocation, len(allocations))
		copy(sorted, allocations)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Amount.GreaterThan(sorted[j].Amount)
		})

		for _, alloc := range sorted {
			if !deficit.IsPositive() {
				break
			}
			trim := alloc.Amount.Mul(trimRate).Round(0)
			if trim.GreaterThan(deficit) {
				trim = deficit
			}
			if !trim.IsPositive() {
				continue
			}
			changes = append(changes, entity.PlanChange{
				Category:    alloc.Category,
				DeltaAmount: trim.Neg(),
				Reason:      fmt.Sprintf("Reduce %s to cover the plan deficit", alloc.Category),
			})
			deficit = deficit.Sub(trim)
		}

	case remaining.IsPositive() && savings.LessThan(income.Mul(savingsFloor)):
		move := income.Mul(surplusToMove).Round(0)
		if move.GreaterThan(remaining) {
			move = remaining
		}
		if move.IsPositive() {
			changes = append(changes, entity.PlanChange{
				Category:    SavingsCategory,
				DeltaAmount: move,
				Reason:      "Redirect surplus toward a 20% savings target",
			})
		}
	}

	return changes
}
