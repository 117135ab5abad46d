package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryBudgetRepository defines the interface for per-category budget limit persistence.
type CategoryBudgetRepository interface {
	// Upsert inserts the budget limit for its (user, category) pair, or
	// replaces the existing row when one is already stored. It returns the
	// stored record.
	Upsert(ctx context.Context, budget *entity.CategoryBudget) (*entity.CategoryBudget, error)

	// FindByUserAndCategory retrieves the budget limit for a user and category.
	// Returns nil when none is configured.
	FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*entity.CategoryBudget, error)

	// ListActiveByUser retrieves the user's active budget limits with their
	// category names resolved.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entity.CategoryBudgetWithCategory, error)

	// Delete removes a budget limit from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
