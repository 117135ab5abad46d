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
	"github.com/budget-planner/backend/internal/domain/valueobject"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

// planRepository implements the adapter.PlanRepository interface.
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new budget plan repository instance.
func NewPlanRepository(db *gorm.DB) adapter.PlanRepository {
	return &planRepository{
		db: db,
	}
}

// Save upserts the plan against the (user_id, month) unique index. The
// database resolves concurrent saves for the same month; there is no
// read-then-write window. All plan fields are replaced on conflict.
func (r *planRepository) Save(ctx context.Context, plan *entity.BudgetPlan) (*entity.BudgetPlan, error) {
	planModel := model.BudgetPlanFromEntity(plan)
	planModel.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"method",
				"income",
				"target_savings_pct",
				"allocations",
				"total_allocated",
				"total_savings",
				"total_remaining",
				"updated_at",
			}),
		}).
		Create(planModel).Error
	if err != nil {
		return nil, err
	}

	// Re-read so overwrites return the stored row's identity and timestamps.
	var stored model.BudgetPlanModel
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", plan.UserID, plan.Month).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return stored.ToEntity(), nil
}

// FindByUserAndMonth retrieves the stored plan for a user and month.
// Returns nil when no plan has been saved for that month.
func (r *planRepository) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) (*entity.BudgetPlan, error) {
	var planModel model.BudgetPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month.String()).
		First(&planModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return planModel.ToEntity(), nil
}

// History retrieves the user's saved plans ordered by month descending.
func (r *planRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]entity.BudgetPlan, error) {
	var planModels []model.BudgetPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month DESC").
		Limit(limit).
		Find(&planModels)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]entity.BudgetPlan, len(planModels))
	for i := range planModels {
		plans[i] = *planModels[i].ToEntity()
	}
	return plans, nil
}
