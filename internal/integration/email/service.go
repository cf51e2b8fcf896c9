// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// dueDateFormat is how due dates appear in reminder emails.
const dueDateFormat = "2006-01-02"

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueuePaymentReminder queues a payment reminder email for an upcoming
// recurring expense occurrence. Queueing the same occurrence twice is a
// no-op, so reminder sweeps stay idempotent.
func (s *Service) QueuePaymentReminder(ctx context.Context, user *entity.User, recurring *entity.RecurringExpense) error {
	dueDate := recurring.NextPaymentDate

	queued, err := s.queue.HasReminderFor(ctx, recurring.ID, dueDate)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to check for an existing reminder",
			err,
		)
	}
	if queued {
		return nil
	}

	subject := fmt.Sprintf("Upcoming payment: %s", recurring.Description)

	templateData := map[string]interface{}{
		"user_name":   user.Name,
		"description": recurring.Description,
		"amount":      recurring.Amount.StringFixed(2),
		"currency":    string(recurring.Currency),
		"due_date":    dueDate.Format(dueDateFormat),
	}

	job := entity.NewEmailJob(
		entity.TemplatePaymentReminder,
		user.Email,
		user.Name,
		subject,
		templateData,
	)
	job.RecurringExpenseID = &recurring.ID
	job.DueDate = &dueDate

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue payment reminder email",
			err,
		)
	}

	return nil
}
