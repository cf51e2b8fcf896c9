// Package recurring contains recurring expense use cases: the lifecycle
// of templates that are materialized into ledger entries.
package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// RecurringOutput represents a recurring expense in use case outputs.
type RecurringOutput struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Description     string
	Amount          decimal.Decimal
	Currency        entity.Currency
	CategoryID      uuid.UUID
	Frequency       schedule.Frequency
	StartDate       time.Time
	EndDate         *time.Time
	NextPaymentDate time.Time
	DayOfMonth      *int
	IsActive        bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// toRecurringOutput maps a domain entity to its output representation.
func toRecurringOutput(r *entity.RecurringExpense) *RecurringOutput {
	return &RecurringOutput{
		ID:              r.ID,
		UserID:          r.UserID,
		Description:     r.Description,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CategoryID:      r.CategoryID,
		Frequency:       r.Frequency,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		NextPaymentDate: r.NextPaymentDate,
		DayOfMonth:      r.DayOfMonth,
		IsActive:        r.IsActive,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
