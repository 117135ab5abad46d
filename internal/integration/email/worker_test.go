package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	"github.com/budget-planner/backend/internal/integration/email/templates"
)

// memoryQueue is an in-memory adapter.EmailQueueRepository for worker tests.
type memoryQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	pending := make([]*entity.EmailJob, 0)
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			pending = append(pending, job)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) DeleteOldSentJobs(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func (q *memoryQueue) jobsFor(email string) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, 0)
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func passwordResetInput(email, name string) adapter.QueuePasswordResetInput {
	return adapter.QueuePasswordResetInput{
		UserID:    uuid.NewString(),
		UserEmail: email,
		UserName:  name,
		ResetURL:  "https://app.example.com/reset-password?token=tok123",
		ExpiresIn: "1 hour",
	}
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender *MockEmailSender) *Worker {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorkerProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a password reset email", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		worker := newTestWorker(t, queue, sender)

		svc := NewService(queue, "https://app.example.com")
		err := svc.QueuePasswordResetEmail(ctx, passwordResetInput("maya@example.com", "Maya"))
		if err != nil {
			t.Fatalf("failed to queue email: %v", err)
		}

		worker.ProcessNow(ctx)

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}
		sent := sender.SentEmails[0]
		if sent.To != "maya@example.com" {
			t.Errorf("unexpected recipient %q", sent.To)
		}
		if !strings.Contains(sent.HTML, "https://app.example.com/reset-password?token=tok123") {
			t.Error("HTML body should contain the reset URL")
		}
		if !strings.Contains(sent.Text, "tok123") {
			t.Error("text body should contain the reset token")
		}

		jobs := queue.jobsFor("maya@example.com")
		if len(jobs) != 1 || jobs[0].Status != entity.EmailStatusSent {
			t.Errorf("job should be marked sent, got %+v", jobs)
		}
	})

	t.Run("sends an over-allocation notice", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		worker := newTestWorker(t, queue, sender)

		job := entity.NewEmailJob(
			entity.TemplateOverAllocation,
			"maya@example.com",
			"Maya",
			"Your 2026-03 budget is over-allocated - Budget Planner",
			map[string]interface{}{
				"user_name": "Maya",
				"month":     "2026-03",
				"allocated": "48000",
				"spendable": "45000",
				"remaining": "-3000",
				"currency":  "INR",
			},
		)
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue email: %v", err)
		}

		worker.ProcessNow(ctx)

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}
		if !strings.Contains(sender.SentEmails[0].HTML, "2026-03") {
			t.Error("HTML body should mention the month")
		}
		if !strings.Contains(sender.SentEmails[0].Text, "48000 INR") {
			t.Error("text body should contain the allocated amount")
		}
	})

	t.Run("temporary failure schedules a retry", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("503 service unavailable"), false)
		worker := newTestWorker(t, queue, sender)

		svc := NewService(queue, "https://app.example.com")
		if err := svc.QueuePasswordResetEmail(ctx, passwordResetInput("maya@example.com", "Maya")); err != nil {
			t.Fatalf("failed to queue email: %v", err)
		}

		worker.ProcessNow(ctx)

		jobs := queue.jobsFor("maya@example.com")
		if len(jobs) != 1 {
			t.Fatalf("expected 1 job, got %d", len(jobs))
		}
		if jobs[0].Status != entity.EmailStatusPending {
			t.Errorf("job should be pending for retry, got %s", jobs[0].Status)
		}
		if jobs[0].Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", jobs[0].Attempts)
		}
	})

	t.Run("permanent failure is not retried", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("422 validation error"), true)
		worker := newTestWorker(t, queue, sender)

		svc := NewService(queue, "https://app.example.com")
		if err := svc.QueuePasswordResetEmail(ctx, passwordResetInput("maya@example.com", "Maya")); err != nil {
			t.Fatalf("failed to queue email: %v", err)
		}

		worker.ProcessNow(ctx)

		jobs := queue.jobsFor("maya@example.com")
		if len(jobs) != 1 {
			t.Fatalf("expected 1 job, got %d", len(jobs))
		}
		if jobs[0].Status != entity.EmailStatusFailed {
			t.Errorf("job should be failed, got %s", jobs[0].Status)
		}
	})
}
