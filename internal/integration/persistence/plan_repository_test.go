package persistence

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/domain/valueobject"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testPlan(userID uuid.UUID, month string, income int64) *entity.BudgetPlan {
	incomeDec := decimal.NewFromInt(income)
	allocations := []entity.Allocation{
		{Category: "Groceries", Amount: decimal.NewFromInt(income / 2), Pct: decimal.NewFromInt(50)},
	}
	return entity.NewBudgetPlan(
		userID,
		month,
		entity.BudgetMethodFixedSplit,
		incomeDec,
		20,
		allocations,
		entity.PlanTotals{
			Allocated: decimal.NewFromInt(income / 2),
			Savings:   decimal.NewFromInt(income / 5),
			Remaining: incomeDec.Sub(decimal.NewFromInt(income / 2)).Sub(decimal.NewFromInt(income / 5)),
		},
	)
}

func TestPlanRepositorySave(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a plan", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		stored, err := repo.Save(ctx, testPlan(userID, "2026-03", 100000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		month, _ := valueobject.ParseMonth("2026-03")
		found, err := repo.FindByUserAndMonth(ctx, userID, month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil {
			t.Fatal("expected a stored plan, got nil")
		}
		if found.ID != stored.ID {
			t.Errorf("expected ID %s, got %s", stored.ID, found.ID)
		}
		if !found.Income.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected income 100000, got %s", found.Income)
		}
		if len(found.Allocations) != 1 {
			t.Fatalf("expected 1 allocation, got %d", len(found.Allocations))
		}
		if found.Allocations[0].Category != "Groceries" {
			t.Errorf("expected category Groceries, got %s", found.Allocations[0].Category)
		}
		if !found.Allocations[0].Amount.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("expected amount 50000, got %s", found.Allocations[0].Amount)
		}
	})

	t.Run("saving the same month overwrites in place", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		first, err := repo.Save(ctx, testPlan(userID, "2026-03", 100000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := repo.Save(ctx, testPlan(userID, "2026-03", 120000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("expected the overwrite to keep the row identity, got %s and %s", first.ID, second.ID)
		}
		if !second.Income.Equal(decimal.NewFromInt(120000)) {
			t.Errorf("expected income 120000 after overwrite, got %s", second.Income)
		}

		var count int64
		db.Model(&model.BudgetPlanModel{}).Where("user_id = ?", userID).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row for the month, got %d", count)
		}
	})

	t.Run("plans for different months coexist", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		if _, err := repo.Save(ctx, testPlan(userID, "2026-02", 90000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Save(ctx, testPlan(userID, "2026-03", 100000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count int64
		db.Model(&model.BudgetPlanModel{}).Where("user_id = ?", userID).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 rows, got %d", count)
		}
	})

	t.Run("does not touch another user's plan", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)

		if _, err := repo.Save(ctx, testPlan(uuid.New(), "2026-03", 90000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Save(ctx, testPlan(uuid.New(), "2026-03", 100000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count int64
		db.Model(&model.BudgetPlanModel{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 rows, got %d", count)
		}
	})
}

func TestPlanRepositoryFindByUserAndMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil when no plan is stored", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)

		month, _ := valueobject.ParseMonth("2026-03")
		found, err := repo.FindByUserAndMonth(ctx, uuid.New(), month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected nil, got %+v", found)
		}
	})
}

func TestPlanRepositoryHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("orders plans by month descending", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		for _, month := range []string{"2026-01", "2026-03", "2025-12", "2026-02"} {
			if _, err := repo.Save(ctx, testPlan(userID, month, 100000)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		plans, err := repo.History(ctx, userID, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"2026-03", "2026-02", "2026-01", "2025-12"}
		if len(plans) != len(want) {
			t.Fatalf("expected %d plans, got %d", len(want), len(plans))
		}
		for i, month := range want {
			if plans[i].Month != month {
				t.Errorf("position %d: expected %s, got %s", i, month, plans[i].Month)
			}
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		for _, month := range []string{"2026-01", "2026-02", "2026-03"} {
			if _, err := repo.Save(ctx, testPlan(userID, month, 100000)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		plans, err := repo.History(ctx, userID, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plans) != 2 {
			t.Fatalf("expected 2 plans, got %d", len(plans))
		}
		if plans[0].Month != "2026-03" {
			t.Errorf("expected newest month first, got %s", plans[0].Month)
		}
	})

	t.Run("excludes other users", func(t *testing.T) {
		db := newTestDB(t, &model.BudgetPlanModel{})
		repo := NewPlanRepository(db)
		userID := uuid.New()

		if _, err := repo.Save(ctx, testPlan(userID, "2026-03", 100000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Save(ctx, testPlan(uuid.New(), "2026-03", 90000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		plans, err := repo.History(ctx, userID, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plans) != 1 {
			t.Errorf("expected 1 plan, got %d", len(plans))
		}
	})
}
