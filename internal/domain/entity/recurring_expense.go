// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// recurringNoteSuffix marks ledger entries materialized from a
// recurring expense.
const recurringNoteSuffix = "Recurring expense"

// RecurringExpense is a template for a recurring obligation. It is
// materialized into concrete Expense entries by payment processing,
// which also advances NextPaymentDate.
type RecurringExpense struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Description     string
	Amount          decimal.Decimal
	Currency        Currency
	CategoryID      uuid.UUID
	Frequency       schedule.Frequency
	StartDate       time.Time
	EndDate         *time.Time
	NextPaymentDate time.Time
	DayOfMonth      *int // Pins month-based frequencies to a day, 1-31
	IsActive        bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRecurringExpense creates a new active RecurringExpense entity.
// NextPaymentDate must already be computed by the recurrence calculator.
func NewRecurringExpense(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	currency Currency,
	categoryID uuid.UUID,
	frequency schedule.Frequency,
	startDate time.Time,
	endDate *time.Time,
	nextPaymentDate time.Time,
	dayOfMonth *int,
	notes string,
) *RecurringExpense {
	now := time.Now().UTC()

	return &RecurringExpense{
		ID:              uuid.New(),
		UserID:          userID,
		Description:     description,
		Amount:          amount,
		Currency:        currency,
		CategoryID:      categoryID,
		Frequency:       frequency,
		StartDate:       startDate,
		EndDate:         endDate,
		NextPaymentDate: nextPaymentDate,
		DayOfMonth:      dayOfMonth,
		IsActive:        true,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Materialize builds the ledger entry for one payment of this recurring
// expense, occurring at now. Amount, currency, category and description
// are copied from the template and the notes are annotated with the
// recurring origin.
func (r *RecurringExpense) Materialize(now time.Time) *Expense {
	notes := recurringNoteSuffix
	if r.Notes != "" {
		notes = r.Notes + " (" + recurringNoteSuffix + ")"
	}

	return NewExpense(r.UserID, r.Amount, r.Currency, r.CategoryID, r.Description, now, notes, true)
}

// Expired reports whether the recurring expense's end date has passed
// at the given instant. A nil end date never expires.
func (r *RecurringExpense) Expired(now time.Time) bool {
	return r.EndDate != nil && !now.Before(*r.EndDate)
}
