package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// SavePlanInput represents the input for saving a budget plan.
type SavePlanInput struct {
	UserID           uuid.UUID
	Month            string
	Method           entity.BudgetMethod
	Income           decimal.Decimal
	TargetSavingsPct int
	Allocations      []entity.Allocation
}

// SavePlanOutput represents the output of saving a budget plan.
type SavePlanOutput struct {
	Plan *entity.BudgetPlan
}

// SavePlanUseCase persists a budget plan, one per (user, month).
type SavePlanUseCase struct {
	planRepo     adapter.PlanRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewSavePlanUseCase creates a new SavePlanUseCase instance.
// emailService may be nil; over-allocation notices are skipped then.
func NewSavePlanUseCase(
	planRepo adapter.PlanRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *SavePlanUseCase {
	return &SavePlanUseCase{
		planRepo:     planRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Execute validates the plan and upserts it. Re-saving the same month
// overwrites all fields, no merge. Totals are recomputed from the submitted
// allocations; a negative remaining is stored as-is and triggers a queued
// over-allocation notice for users with budget alerts enabled.
func (uc *SavePlanUseCase) Execute(ctx context.Context, input SavePlanInput) (*SavePlanOutput, error) {
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
	if len(input.Allocations) == 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidAllocation,
			"a plan needs at least one allocation",
			domainerror.ErrInvalidAllocation,
		)
	}

	savings := SavingsFor(input.Income, input.TargetSavingsPct)
	allocations := make([]entity.Allocation, len(input.Allocations))
	for i, alloc := range input.Allocations {
		if strings.TrimSpace(alloc.Category) == "" {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidAllocation,
				"allocation category must not be empty",
				domainerror.ErrInvalidAllocation,
			)
		}
		if alloc.Amount.IsNegative() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidAllocation,
				fmt.Sprintf("allocation amount for %q must not be negative", alloc.Category),
				domainerror.ErrInvalidAllocation,
			)
		}
		allocations[i] = entity.Allocation{
			Category: alloc.Category,
			Amount:   alloc.Amount,
			Pct:      pctOfIncome(alloc.Amount, input.Income),
		}
	}

	plan := entity.NewBudgetPlan(
		input.UserID,
		month.String(),
		input.Method,
		input.Income,
		input.TargetSavingsPct,
		allocations,
		totalsFor(input.Income, savings, allocations),
	)

	stored, err := uc.planRepo.Save(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save budget plan: %w", err)
	}

	if stored.Totals.Remaining.IsNegative() {
		uc.notifyOverAllocation(ctx, stored)
	}

	return &SavePlanOutput{Plan: stored}, nil
}

// notifyOverAllocation queues the over-allocation notice. Failures are
// logged and ignored; the save has already succeeded.
func (uc *SavePlanUseCase) notifyOverAllocation(ctx context.Context, plan *entity.BudgetPlan) {
	if uc.emailService == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, plan.UserID)
	if err != nil || user == nil {
		slog.Warn("failed to load user for over-allocation notice",
			"user_id", plan.UserID,
			"error", err)
		return
	}
	if !user.BudgetAlerts || !user.EmailNotifications {
		return
	}

	spendable := plan.Income.Sub(plan.Totals.Savings)
	err = uc.emailService.QueueOverAllocationEmail(ctx, adapter.QueueOverAllocationInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		Month:     plan.Month,
		Allocated: plan.Totals.Allocated.StringFixed(0),
		Spendable: spendable.StringFixed(0),
		Remaining: plan.Totals.Remaining.StringFixed(0),
		Currency:  user.Currency,
	})
	if err != nil {
		slog.Warn("failed to queue over-allocation notice",
			"user_id", plan.UserID,
			"month", plan.Month,
			"error", err)
	}
}
