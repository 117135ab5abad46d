package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

// categoryBudgetRepository implements the adapter.CategoryBudgetRepository interface.
type categoryBudgetRepository struct {
	db *gorm.DB
}

// NewCategoryBudgetRepository creates a new category budget repository instance.
func NewCategoryBudgetRepository(db *gorm.DB) adapter.CategoryBudgetRepository {
	return &categoryBudgetRepository{
		db: db,
	}
}

// Upsert inserts or replaces the budget against the (user_id, category_id)
// unique index, keeping at most one budget per category.
func (r *categoryBudgetRepository) Upsert(ctx context.Context, budget *entity.CategoryBudget) (*entity.CategoryBudget, error) {
	budgetModel := model.CategoryBudgetFromEntity(budget)
	budgetModel.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"budget_amount",
				"period",
				"alert_threshold",
				"is_active",
				"updated_at",
			}),
		}).
		Create(budgetModel).Error
	if err != nil {
		return nil, err
	}

	var stored model.CategoryBudgetModel
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", budget.UserID, budget.CategoryID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return stored.ToEntity(), nil
}

// FindByUserAndCategory retrieves the budget for a user and category.
// Returns nil when none is configured.
func (r *categoryBudgetRepository) FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*entity.CategoryBudget, error) {
	var budgetModel model.CategoryBudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// ListActiveByUser retrieves the user's active budgets with categories preloaded.
func (r *categoryBudgetRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entity.CategoryBudgetWithCategory, error) {
	var budgetModels []model.CategoryBudgetModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]entity.CategoryBudgetWithCategory, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntityWithCategory()
	}
	return budgets, nil
}

// Delete removes a budget from the database.
func (r *categoryBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryBudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
