package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

// budgetSuggestionRepository implements the adapter.BudgetSuggestionRepository interface.
type budgetSuggestionRepository struct {
	db *gorm.DB
}

// NewBudgetSuggestionRepository creates a new budget suggestion repository instance.
func NewBudgetSuggestionRepository(db *gorm.DB) adapter.BudgetSuggestionRepository {
	return &budgetSuggestionRepository{
		db: db,
	}
}

// Create records a suggestion issued to the user.
func (r *budgetSuggestionRepository) Create(ctx context.Context, suggestion *entity.BudgetSuggestion) error {
	suggestionModel := model.BudgetSuggestionFromEntity(suggestion)
	result := r.db.WithContext(ctx).Create(suggestionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ListByUser retrieves the user's suggestions, newest first.
func (r *budgetSuggestionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.BudgetSuggestion, error) {
	var suggestionModels []model.BudgetSuggestionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&suggestionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	suggestions := make([]entity.BudgetSuggestion, len(suggestionModels))
	for i := range suggestionModels {
		suggestions[i] = *suggestionModels[i].ToEntity()
	}
	return suggestions, nil
}

// MarkApplied flags a suggestion as applied to a saved plan.
func (r *budgetSuggestionRepository) MarkApplied(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.BudgetSuggestionModel{}).
		Where("id = ?", id).
		Update("applied", true)
	return result.Error
}
