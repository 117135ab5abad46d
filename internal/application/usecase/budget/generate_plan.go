package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/domain/valueobject"
)

const (
	// MaxTargetSavingsPct is the upper bound for the target savings percentage.
	MaxTargetSavingsPct = 90
)

// GeneratePlanInput represents the input for generating a budget plan.
type GeneratePlanInput struct {
	UserID           uuid.UUID
	Month            string
	Income           decimal.Decimal
	TargetSavingsPct int
	Method           entity.BudgetMethod
}

// GeneratePlanOutput represents the output of generating a budget plan.
type GeneratePlanOutput struct {
	Plan *entity.BudgetPlan
	MTD  map[string]decimal.Decimal
}

// GeneratePlanUseCase computes a budget plan without persisting it.
type GeneratePlanUseCase struct {
	categoryRepo   adapter.CategoryRepository
	txRepo         adapter.TransactionRepository
	aiService      adapter.AIBudgetService
	suggestionRepo adapter.BudgetSuggestionRepository
}

// NewGeneratePlanUseCase creates a new GeneratePlanUseCase instance.
// aiService and suggestionRepo may be nil; the baseline allocation is used then.
func NewGeneratePlanUseCase(
	categoryRepo adapter.CategoryRepository,
	txRepo adapter.TransactionRepository,
	aiService adapter.AIBudgetService,
	suggestionRepo adapter.BudgetSuggestionRepository,
) *GeneratePlanUseCase {
	return &GeneratePlanUseCase{
		categoryRepo:   categoryRepo,
		txRepo:         txRepo,
		aiService:      aiService,
		suggestionRepo: suggestionRepo,
	}
}

// Execute computes the plan: baseline allocation across the user's expense
// categories, refined best-effort by the AI collaborator when one is wired.
func (uc *GeneratePlanUseCase) Execute(ctx context.Context, input GeneratePlanInput) (*GeneratePlanOutput, error) {
	month, err := ValidatePlanParams(input.Month, input.Income, input.TargetSavingsPct)
	if err != nil {
		return nil, err
	}
	if input.Method != entity.BudgetMethodFixedSplit && input.Method != entity.BudgetMethodZeroBased {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMethod,
			"method must be 'fixed-percentage-split' or 'zero-based'",
			domainerror.ErrInvalidBudgetMethod,
		)
	}

	categories, err := uc.categoryRepo.ListExpenseNames(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNoExpenseCategories,
			"create at least one expense category before generating a plan",
			domainerror.ErrNoExpenseCategories,
		)
	}

	start, end := month.Bounds()
	mtd, err := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month-to-date spend: %w", err)
	}

	var allocations []entity.Allocation
	var totals entity.PlanTotals
	if input.Method == entity.BudgetMethodZeroBased {
		prevStart, prevEnd := month.Prev().Bounds()
		history, histErr := uc.txRepo.SumExpensesByCategory(ctx, input.UserID, prevStart, prevEnd)
		if histErr != nil {
			return nil, fmt.Errorf("failed to aggregate historical spend: %w", histErr)
		}
		allocations, totals = AllocateZeroBased(input.Income, input.TargetSavingsPct, categories, history)
	} else {
		allocations, totals = Allocate(input.Income, input.TargetSavingsPct, categories)
	}

	if uc.aiService != nil {
		allocations, totals = uc.refine(ctx, input, month, allocations, totals, mtd)
	}

	plan := entity.NewBudgetPlan(
		input.UserID,
		month.String(),
		input.Method,
		input.Income,
		input.TargetSavingsPct,
		allocations,
		totals,
	)

	return &GeneratePlanOutput{Plan: plan, MTD: mtd}, nil
}

// refine asks the AI collaborator for adjusted amounts. Any failure keeps the
// baseline; refinement is never fatal.
func (uc *GeneratePlanUseCase) refine(
	ctx context.Context,
	input GeneratePlanInput,
	month valueobject.Month,
	baseline []entity.Allocation,
	baselineTotals entity.PlanTotals,
	mtd map[string]decimal.Decimal,
) ([]entity.Allocation, entity.PlanTotals) {
	req := adapter.BudgetRefinementRequest{
		Month:     month.String(),
		Income:    input.Income,
		Spendable: input.Income.Sub(baselineTotals.Savings),
		Baseline:  toCategorySpend(baseline),
	}
	for category, amount := range mtd {
		req.RecentSpend = append(req.RecentSpend, adapter.CategorySpend{Category: category, Amount: amount})
	}

	refinements, err := uc.aiService.SuggestAllocations(ctx, req)
	if err != nil {
		slog.Warn("budget refinement failed, using baseline allocation",
			"user_id", input.UserID,
			"month", month.String(),
			"error", err)
		return baseline, baselineTotals
	}
	if len(refinements) == 0 {
		return baseline, baselineTotals
	}

	refined, totals := ApplyRefinement(input.Income, input.TargetSavingsPct, baseline, refinements)
	uc.recordSuggestion(ctx, input.UserID, month.String(), refinements, totals)
	return refined, totals
}

// recordSuggestion writes the audit row for an accepted refinement. Failures
// are logged and ignored.
func (uc *GeneratePlanUseCase) recordSuggestion(
	ctx context.Context,
	userID uuid.UUID,
	month string,
	refinements []adapter.BudgetRefinement,
	totals entity.PlanTotals,
) {
	if uc.suggestionRepo == nil {
		return
	}

	categories := make([]string, 0, len(refinements))
	proposed := decimal.Zero
	for _, ref := range refinements {
		categories = append(categories, ref.Category)
		proposed = proposed.Add(ref.Amount)
	}

	suggestion := entity.NewBudgetSuggestion(userID, month, categories, proposed, totals.Allocated, false)
	if err := uc.suggestionRepo.Create(ctx, suggestion); err != nil {
		slog.Warn("failed to record budget suggestion audit",
			"user_id", userID,
			"month", month,
			"error", err)
	}
}

func toCategorySpend(allocations []entity.Allocation) []adapter.CategorySpend {
	spend := make([]adapter.CategorySpend, len(allocations))
	for i, alloc := range allocations {
		spend[i] = adapter.CategorySpend{Category: alloc.Category, Amount: alloc.Amount}
	}
	return spend
}

// ValidatePlanParams validates the month key, income, and savings percentage
// shared by the plan operations. It returns the parsed month.
func ValidatePlanParams(monthKey string, income decimal.Decimal, targetSavingsPct int) (valueobject.Month, error) {
	month, err := valueobject.ParseMonth(monthKey)
	if err != nil {
		return valueobject.Month{}, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthKey,
			"month must be formatted as YYYY-MM",
			domainerror.ErrInvalidMonthKey,
		)
	}
	if income.IsNegative() {
		return valueobject.Month{}, domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeIncome,
			"income must not be negative",
			domainerror.ErrNegativeIncome,
		)
	}
	if targetSavingsPct < 0 || targetSavingsPct > MaxTargetSavingsPct {
		return valueobject.Month{}, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidSavingsPct,
			fmt.Sprintf("target savings percentage must be between 0 and %d", MaxTargetSavingsPct),
			domainerror.ErrInvalidSavingsPct,
		)
	}
	return month, nil
}
