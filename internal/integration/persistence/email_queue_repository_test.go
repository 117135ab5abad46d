package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

func testEmailJob(recipient string) *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplatePasswordReset,
		recipient,
		"Maya",
		"Reset your password - Budget Planner",
		map[string]interface{}{"user_name": "Maya"},
	)
}

func TestEmailQueueRepositoryPendingJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pending jobs due now, oldest scheduled first", func(t *testing.T) {
		db := newTestDB(t, &model.EmailQueueModel{})
		repo := NewEmailQueueRepository(db)

		later := testEmailJob("later@example.com")
		later.ScheduledAt = time.Now().UTC().Add(-1 * time.Minute)
		earlier := testEmailJob("earlier@example.com")
		earlier.ScheduledAt = time.Now().UTC().Add(-10 * time.Minute)
		future := testEmailJob("future@example.com")
		future.ScheduledAt = time.Now().UTC().Add(1 * time.Hour)

		for _, job := range []*entity.EmailJob{later, earlier, future} {
			if err := repo.Create(ctx, job); err != nil {
				t.Fatalf("failed to create job: %v", err)
			}
		}

		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get pending jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("expected 2 due jobs, got %d", len(jobs))
		}
		if jobs[0].RecipientEmail != "earlier@example.com" {
			t.Errorf("expected the oldest scheduled job first, got %s", jobs[0].RecipientEmail)
		}
	})

	t.Run("honors the batch limit", func(t *testing.T) {
		db := newTestDB(t, &model.EmailQueueModel{})
		repo := NewEmailQueueRepository(db)

		for i := 0; i < 3; i++ {
			job := testEmailJob("maya@example.com")
			job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
			if err := repo.Create(ctx, job); err != nil {
				t.Fatalf("failed to create job: %v", err)
			}
		}

		jobs, err := repo.GetPendingJobs(ctx, 2)
		if err != nil {
			t.Fatalf("failed to get pending jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Errorf("expected 2 jobs, got %d", len(jobs))
		}
	})

	t.Run("a sent job no longer shows up as pending", func(t *testing.T) {
		db := newTestDB(t, &model.EmailQueueModel{})
		repo := NewEmailQueueRepository(db)

		job := testEmailJob("maya@example.com")
		job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		job.MarkSent("resend-123")
		if err := repo.Update(ctx, job); err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get pending jobs: %v", err)
		}
		if len(jobs) != 0 {
			t.Errorf("expected no pending jobs, got %d", len(jobs))
		}
	})

	t.Run("a failed job keeps its attempt count and error", func(t *testing.T) {
		db := newTestDB(t, &model.EmailQueueModel{})
		repo := NewEmailQueueRepository(db)

		job := testEmailJob("maya@example.com")
		job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		job.MarkFailed(errors.New("503 service unavailable"), false)
		if err := repo.Update(ctx, job); err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		jobs, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to get pending jobs: %v", err)
		}
		if len(jobs) != 1 {
			t.Fatalf("expected the retried job to stay pending, got %d jobs", len(jobs))
		}
		if jobs[0].Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", jobs[0].Attempts)
		}
		if jobs[0].LastError == "" {
			t.Error("expected the last error to be stored")
		}
	})
}

func TestEmailQueueRepositoryDeleteOldSentJobs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.EmailQueueModel{})
	repo := NewEmailQueueRepository(db)

	old := testEmailJob("old@example.com")
	old.MarkSent("resend-old")
	past := time.Now().UTC().AddDate(0, 0, -40)
	old.ProcessedAt = &past

	recent := testEmailJob("recent@example.com")
	recent.MarkSent("resend-recent")

	pending := testEmailJob("pending@example.com")

	for _, job := range []*entity.EmailJob{old, recent, pending} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}
	}

	deleted, err := repo.DeleteOldSentJobs(ctx, 30)
	if err != nil {
		t.Fatalf("failed to delete old sent jobs: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted job, got %d", deleted)
	}

	var count int64
	if err := db.Model(&model.EmailQueueModel{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count jobs: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 remaining jobs, got %d", count)
	}
}
