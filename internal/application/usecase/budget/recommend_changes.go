package budget

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/domain/valueobject"
)

// RecommendChangesInput represents the input for a rebalancing recommendation.
type RecommendChangesInput struct {
	UserID           uuid.UUID
	Month            string
	Income           decimal.Decimal
	TargetSavingsPct int
	Allocations      []entity.Allocation
}

// RecommendChangesOutput represents the output of a rebalancing recommendation.
type RecommendChangesOutput struct {
	Changes []entity.PlanChange
}

// RecommendChangesUseCase produces rule-based rebalancing suggestions,
// annotated best-effort by the AI collaborator.
type RecommendChangesUseCase struct {
	txRepo    adapter.TransactionRepository
	aiService adapter.AIBudgetService
}

// NewRecommendChangesUseCase creates a new RecommendChangesUseCase instance.
// aiService may be nil; only the rule-based changes are returned then.
func NewRecommendChangesUseCase(txRepo adapter.TransactionRepository, aiService adapter.AIBudgetService) *RecommendChangesUseCase {
	return &RecommendChangesUseCase{
		txRepo:    txRepo,
		aiService: aiService,
	}
}

// Execute computes rule-based changes, then appends any AI advice it can get.
// The rule-based changes are always returned, whatever the model does.
func (uc *RecommendChangesUseCase) Execute(ctx context.Context, input RecommendChangesInput) (*RecommendChangesOutput, error) {
	month, err := ValidatePlanParams(input.Month, input.Income, input.TargetSavingsPct)
	if err != nil {
		return nil, err
	}

	changes := Recommend(input.Income, input.TargetSavingsPct, input.Allocations)

	if uc.aiService != nil {
		changes = append(changes, uc.aiAdvice(ctx, input, month)...)
	}

	return &RecommendChangesOutput{Changes: changes}, nil
}

// aiAdvice fetches model annotations for the plan. Failures are swallowed;
// the caller keeps its rule-based changes.
func (uc *RecommendChangesUseCase) aiAdvice(ctx context.Context, input RecommendChangesInput, month valueobject.Month) []entity.PlanChange {
	req := adapter.RebalancingRequest{
		Month:       month.String(),
		Allocations: toCategorySpend(input.Allocations),
	}

	start, end := month.Bounds()
	actual, aggErr := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, start, end)
	if aggErr == nil {
		for category, amount := range actual {
			req.ActualSpend = append(req.ActualSpend, adapter.CategorySpend{Category: category, Amount: amount})
		}
	}

	advice, err := uc.aiService.SuggestRebalancing(ctx, req)
	if err != nil {
		slog.Warn("rebalancing advice failed, returning rule-based changes only",
			"user_id", input.UserID,
			"month", month.String(),
			"error", err)
		return nil
	}

	changes := make([]entity.PlanChange, 0, len(advice))
	for _, a := range advice {
		changes = append(changes, entity.PlanChange{
			Category:    a.Category,
			DeltaAmount: a.DeltaAmount,
			Reason:      a.Reason,
		})
	}
	return changes
}
