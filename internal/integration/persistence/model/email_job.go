// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailJobModel represents the email_queue table in the database.
type EmailJobModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TemplateType   string       `gorm:"type:varchar(50);not null"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	RecipientName  string       `gorm:"type:varchar(255)"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	TemplateData   string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	ProviderID     string       `gorm:"type:varchar(100)"`
	CreatedAt      time.Time    `gorm:"not null"`
	ScheduledAt    time.Time    `gorm:"not null;index"`
	ProcessedAt    sql.NullTime `gorm:"type:timestamptz"`

	RecurringExpenseID *uuid.UUID   `gorm:"type:uuid;index"`
	DueDate            sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailJobModel.
func (EmailJobModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailJobModel to a domain EmailJob entity.
func (m *EmailJobModel) ToEntity() *entity.EmailJob {
	var templateData map[string]interface{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &templateData); err != nil {
			slog.Warn("Failed to unmarshal email template data", "error", err, "id", m.ID)
		}
	}
	if templateData == nil {
		templateData = make(map[string]interface{})
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	var dueDate *time.Time
	if m.DueDate.Valid {
		dueDate = &m.DueDate.Time
	}

	return &entity.EmailJob{
		ID:                 m.ID,
		TemplateType:       entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:     m.RecipientEmail,
		RecipientName:      m.RecipientName,
		Subject:            m.Subject,
		TemplateData:       templateData,
		Status:             entity.EmailStatus(m.Status),
		Attempts:           m.Attempts,
		MaxAttempts:        m.MaxAttempts,
		LastError:          m.LastError,
		ProviderID:         m.ProviderID,
		CreatedAt:          m.CreatedAt,
		ScheduledAt:        m.ScheduledAt,
		ProcessedAt:        processedAt,
		RecurringExpenseID: m.RecurringExpenseID,
		DueDate:            dueDate,
	}
}

// EmailJobFromEntity creates an EmailJobModel from a domain EmailJob entity.
func EmailJobFromEntity(job *entity.EmailJob) *EmailJobModel {
	templateDataJSON, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to marshal email template data", "error", err, "job_id", job.ID)
		templateDataJSON = []byte("{}")
	}

	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	var dueDate sql.NullTime
	if job.DueDate != nil {
		dueDate = sql.NullTime{Time: *job.DueDate, Valid: true}
	}

	return &EmailJobModel{
		ID:                 job.ID,
		TemplateType:       string(job.TemplateType),
		RecipientEmail:     job.RecipientEmail,
		RecipientName:      job.RecipientName,
		Subject:            job.Subject,
		TemplateData:       string(templateDataJSON),
		Status:             string(job.Status),
		Attempts:           job.Attempts,
		MaxAttempts:        job.MaxAttempts,
		LastError:          job.LastError,
		ProviderID:         job.ProviderID,
		CreatedAt:          job.CreatedAt,
		ScheduledAt:        job.ScheduledAt,
		ProcessedAt:        processedAt,
		RecurringExpenseID: job.RecurringExpenseID,
		DueDate:            dueDate,
	}
}
