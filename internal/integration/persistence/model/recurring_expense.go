// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// RecurringExpenseModel represents the recurring_expenses table in the database.
type RecurringExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(255);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Frequency       string          `gorm:"type:varchar(20);not null"`
	StartDate       time.Time       `gorm:"type:timestamptz;not null"`
	EndDate         sql.NullTime    `gorm:"type:timestamptz"`
	NextPaymentDate time.Time       `gorm:"type:timestamptz;not null;index"`
	DayOfMonth      *int            `gorm:"type:integer"`
	IsActive        bool            `gorm:"default:true;index"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RecurringExpenseModel.
func (RecurringExpenseModel) TableName() string {
	return "recurring_expenses"
}

// ToEntity converts a RecurringExpenseModel to a domain RecurringExpense entity.
func (m *RecurringExpenseModel) ToEntity() *entity.RecurringExpense {
	var endDate *time.Time
	if m.EndDate.Valid {
		endDate = &m.EndDate.Time
	}

	return &entity.RecurringExpense{
		ID:              m.ID,
		UserID:          m.UserID,
		Description:     m.Description,
		Amount:          m.Amount,
		Currency:        entity.Currency(m.Currency),
		CategoryID:      m.CategoryID,
		Frequency:       schedule.Frequency(m.Frequency),
		StartDate:       m.StartDate,
		EndDate:         endDate,
		NextPaymentDate: m.NextPaymentDate,
		DayOfMonth:      m.DayOfMonth,
		IsActive:        m.IsActive,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// RecurringExpenseFromEntity creates a RecurringExpenseModel from a domain RecurringExpense entity.
func RecurringExpenseFromEntity(recurring *entity.RecurringExpense) *RecurringExpenseModel {
	var endDate sql.NullTime
	if recurring.EndDate != nil {
		endDate = sql.NullTime{Time: *recurring.EndDate, Valid: true}
	}

	return &RecurringExpenseModel{
		ID:              recurring.ID,
		UserID:          recurring.UserID,
		Description:     recurring.Description,
		Amount:          recurring.Amount,
		Currency:        string(recurring.Currency),
		CategoryID:      recurring.CategoryID,
		Frequency:       string(recurring.Frequency),
		StartDate:       recurring.StartDate,
		EndDate:         endDate,
		NextPaymentDate: recurring.NextPaymentDate,
		DayOfMonth:      recurring.DayOfMonth,
		IsActive:        recurring.IsActive,
		Notes:           recurring.Notes,
		CreatedAt:       recurring.CreatedAt,
		UpdatedAt:       recurring.UpdatedAt,
	}
}
