// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Enqueue adds a new email job to the queue.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	jobModel := model.EmailJobFromEntity(job)
	result := r.db.WithContext(ctx).Create(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetPendingJobs retrieves pending jobs whose scheduled time has passed,
// oldest first, up to limit entries.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var jobModels []model.EmailJobModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", string(entity.EmailStatusPending), time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&jobModels)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, len(jobModels))
	for i, jm := range jobModels {
		jobs[i] = jm.ToEntity()
	}
	return jobs, nil
}

// Update updates an existing email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	jobModel := model.EmailJobFromEntity(job)
	result := r.db.WithContext(ctx).Save(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// HasReminderFor checks whether a reminder for the given recurring
// expense occurrence has already been queued.
func (r *emailQueueRepository) HasReminderFor(ctx context.Context, recurringID uuid.UUID, dueDate time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.EmailJobModel{}).
		Where("recurring_expense_id = ? AND due_date = ?", recurringID, dueDate).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
