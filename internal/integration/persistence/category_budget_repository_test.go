package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

func seedCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	now := time.Now().UTC()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     "#6366F1",
		Icon:      "tag",
		Type:      "expense",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category.ID
}

func TestCategoryBudgetRepositoryUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reads back a budget", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)
		userID := uuid.New()
		categoryID := seedCategory(t, db, userID, "Groceries")

		budget := entity.NewCategoryBudget(userID, categoryID, decimal.NewFromInt(1000), entity.BudgetPeriodMonthly, 80)
		stored, err := repo.Upsert(ctx, budget)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByUserAndCategory(ctx, userID, categoryID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil {
			t.Fatal("expected a stored budget, got nil")
		}
		if found.ID != stored.ID {
			t.Errorf("expected ID %s, got %s", stored.ID, found.ID)
		}
		if !found.BudgetAmount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected amount 1000, got %s", found.BudgetAmount)
		}
		if found.AlertThreshold != 80 {
			t.Errorf("expected threshold 80, got %d", found.AlertThreshold)
		}
		if !found.IsActive {
			t.Error("expected the budget to be active")
		}
	})

	t.Run("second upsert replaces the existing budget", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)
		userID := uuid.New()
		categoryID := seedCategory(t, db, userID, "Groceries")

		first, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, categoryID, decimal.NewFromInt(1000), entity.BudgetPeriodMonthly, 80))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, categoryID, decimal.NewFromInt(1500), entity.BudgetPeriodMonthly, 90))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("expected the upsert to keep the row identity, got %s and %s", first.ID, second.ID)
		}
		if !second.BudgetAmount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected amount 1500 after upsert, got %s", second.BudgetAmount)
		}
		if second.AlertThreshold != 90 {
			t.Errorf("expected threshold 90 after upsert, got %d", second.AlertThreshold)
		}

		var count int64
		db.Model(&model.CategoryBudgetModel{}).Where("user_id = ?", userID).Count(&count)
		if count != 1 {
			t.Errorf("expected a single budget per category, got %d", count)
		}
	})

	t.Run("budgets for different categories coexist", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)
		userID := uuid.New()
		groceries := seedCategory(t, db, userID, "Groceries")
		transport := seedCategory(t, db, userID, "Transport")

		if _, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, groceries, decimal.NewFromInt(1000), entity.BudgetPeriodMonthly, 80)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, transport, decimal.NewFromInt(500), entity.BudgetPeriodMonthly, 80)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count int64
		db.Model(&model.CategoryBudgetModel{}).Where("user_id = ?", userID).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 budgets, got %d", count)
		}
	})
}

func TestCategoryBudgetRepositoryListActiveByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("preloads the category and skips inactive budgets", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)
		userID := uuid.New()
		groceries := seedCategory(t, db, userID, "Groceries")
		transport := seedCategory(t, db, userID, "Transport")

		if _, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, groceries, decimal.NewFromInt(1000), entity.BudgetPeriodMonthly, 80)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		inactive := entity.NewCategoryBudget(userID, transport, decimal.NewFromInt(500), entity.BudgetPeriodMonthly, 80)
		inactive.IsActive = false
		inactiveModel := model.CategoryBudgetFromEntity(inactive)
		if err := db.Create(inactiveModel).Error; err != nil {
			t.Fatalf("failed to seed inactive budget: %v", err)
		}

		items, err := repo.ListActiveByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 active budget, got %d", len(items))
		}
		if items[0].Category == nil {
			t.Fatal("expected the category to be preloaded")
		}
		if items[0].Category.Name != "Groceries" {
			t.Errorf("expected category Groceries, got %s", items[0].Category.Name)
		}
	})

	t.Run("returns an empty list for a user without budgets", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)

		items, err := repo.ListActiveByUser(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no budgets, got %d", len(items))
		}
	})
}

func TestCategoryBudgetRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the budget", func(t *testing.T) {
		db := newTestDB(t, &model.CategoryModel{}, &model.CategoryBudgetModel{})
		repo := NewCategoryBudgetRepository(db)
		userID := uuid.New()
		categoryID := seedCategory(t, db, userID, "Groceries")

		stored, err := repo.Upsert(ctx, entity.NewCategoryBudget(userID, categoryID, decimal.NewFromInt(1000), entity.BudgetPeriodMonthly, 80))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := repo.Delete(ctx, stored.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByUserAndCategory(ctx, userID, categoryID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected the budget to be gone, got %+v", found)
		}
	})
}
