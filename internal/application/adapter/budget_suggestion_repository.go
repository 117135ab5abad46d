package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// BudgetSuggestionRepository defines the interface for persisting the audit
// trail of AI-assisted budget suggestions.
type BudgetSuggestionRepository interface {
	// Create records a suggestion issued to the user.
	Create(ctx context.Context, suggestion *entity.BudgetSuggestion) error

	// ListByUser retrieves the user's suggestions ordered by creation date
	// descending, limited to the given count.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.BudgetSuggestion, error)

	// MarkApplied flags a suggestion as applied to a saved plan.
	MarkApplied(ctx context.Context, id uuid.UUID) error
}
