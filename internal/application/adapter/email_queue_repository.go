// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for the email queue.
type EmailQueueRepository interface {
	// Enqueue adds a new email job to the queue.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves pending jobs whose scheduled time has
	// passed, oldest first, up to limit entries.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update updates an existing email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// HasReminderFor checks whether a reminder for the given recurring
	// expense occurrence has already been queued.
	HasReminderFor(ctx context.Context, recurringID uuid.UUID, dueDate time.Time) (bool, error)
}
