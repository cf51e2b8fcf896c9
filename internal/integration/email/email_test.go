package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/schedule"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// fakeQueue is an in-memory email queue for worker and service tests.
type fakeQueue struct {
	jobs []*entity.EmailJob
}

func (q *fakeQueue) Enqueue(_ context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	var pending []*entity.EmailJob
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

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	for i, stored := range q.jobs {
		if stored.ID == job.ID {
			q.jobs[i] = job
			return nil
		}
	}
	return errors.New("job not found")
}

func (q *fakeQueue) HasReminderFor(_ context.Context, recurringID uuid.UUID, dueDate time.Time) (bool, error) {
	for _, job := range q.jobs {
		if job.RecurringExpenseID != nil && *job.RecurringExpenseID == recurringID &&
			job.DueDate != nil && job.DueDate.Equal(dueDate) {
			return true, nil
		}
	}
	return false, nil
}

func seedReminder(t *testing.T) (*entity.User, *entity.RecurringExpense) {
	t.Helper()

	user := entity.NewUser("ada@example.com", "Ada", "hash")
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rec := entity.NewRecurringExpense(user.ID, "Rent", decimal.NewFromInt(1200), entity.CurrencyARS,
		uuid.New(), schedule.FrequencyMonthly, due.AddDate(0, -2, 0), nil, due, nil, "")
	return user, rec
}

func TestService_QueuePaymentReminder(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	service := NewService(queue)
	user, rec := seedReminder(t)

	if err := service.QueuePaymentReminder(ctx, user, rec); err != nil {
		t.Fatalf("queue reminder: %v", err)
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected 1 queued job, got %d", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.TemplateType != entity.TemplatePaymentReminder {
		t.Errorf("unexpected template type %s", job.TemplateType)
	}
	if job.RecipientEmail != user.Email {
		t.Errorf("recipient = %s, want %s", job.RecipientEmail, user.Email)
	}
	if job.RecurringExpenseID == nil || *job.RecurringExpenseID != rec.ID {
		t.Error("job must carry the recurring expense ID for deduplication")
	}
	if job.DueDate == nil || !job.DueDate.Equal(rec.NextPaymentDate) {
		t.Error("job must carry the occurrence due date for deduplication")
	}
	if got := job.TemplateData["amount"]; got != "1200.00" {
		t.Errorf("amount = %v, want 1200.00", got)
	}
}

func TestService_QueuePaymentReminder_SameOccurrenceOnce(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	service := NewService(queue)
	user, rec := seedReminder(t)

	for i := 0; i < 3; i++ {
		if err := service.QueuePaymentReminder(ctx, user, rec); err != nil {
			t.Fatalf("queue reminder: %v", err)
		}
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("expected the occurrence to be queued once, got %d jobs", len(queue.jobs))
	}

	// The next occurrence is a new reminder.
	rec.NextPaymentDate = rec.NextPaymentDate.AddDate(0, 1, 0)
	if err := service.QueuePaymentReminder(ctx, user, rec); err != nil {
		t.Fatalf("queue reminder: %v", err)
	}
	if len(queue.jobs) != 2 {
		t.Fatalf("expected 2 queued jobs after advancing the due date, got %d", len(queue.jobs))
	}
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *MockEmailSender) *Worker {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorker_SendsPendingReminder(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	user, rec := seedReminder(t)

	if err := NewService(queue).QueuePaymentReminder(ctx, user, rec); err != nil {
		t.Fatalf("queue reminder: %v", err)
	}

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "ada@example.com" {
		t.Errorf("to = %s", sent.To)
	}
	if !strings.Contains(sent.HTML, "Rent") || !strings.Contains(sent.HTML, "1200.00") {
		t.Error("rendered HTML must mention the expense and amount")
	}
	if !strings.Contains(sent.Text, "2024-03-15") {
		t.Error("rendered text must mention the due date")
	}

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusSent {
		t.Errorf("status = %s, want sent", job.Status)
	}
	if job.ProviderID == "" {
		t.Error("provider ID must be recorded after a successful send")
	}
}

func TestWorker_TransientFailureIsRetried(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)
	user, rec := seedReminder(t)

	if err := NewService(queue).QueuePaymentReminder(ctx, user, rec); err != nil {
		t.Fatalf("queue reminder: %v", err)
	}

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusPending {
		t.Errorf("status = %s, want pending for retry", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", job.Attempts)
	}
	if !job.ScheduledAt.After(time.Now().UTC()) {
		t.Error("retry must be scheduled in the future")
	}
}

func TestWorker_PermanentFailureIsNotRetried(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("validation error"), true)
	user, rec := seedReminder(t)

	if err := NewService(queue).QueuePaymentReminder(ctx, user, rec); err != nil {
		t.Fatalf("queue reminder: %v", err)
	}

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", job.Attempts)
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	sender := NewMockEmailSender()

	job := entity.NewEmailJob("newsletter", "ada@example.com", "Ada", "News", nil)
	if err := queue.Enqueue(ctx, job); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	if len(sender.SentEmails) != 0 {
		t.Fatal("nothing must be sent for an unknown template")
	}
	if queue.jobs[0].Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", queue.jobs[0].Status)
	}
}
