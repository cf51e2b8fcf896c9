// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopspring/decimal"
)

// Expense represents a realized expense in the ledger. Entries are
// created by direct user action or by materializing a recurring
// expense; the scheduler never touches an entry after creation.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal // Always positive
	Currency    Currency
	CategoryID  uuid.UUID
	Description string
	Date        time.Time
	Notes       string
	IsRecurring bool // Set when materialized from a recurring expense
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	amount decimal.Decimal,
	currency Currency,
	categoryID uuid.UUID,
	description string,
	date time.Time,
	notes string,
	isRecurring bool,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Currency:    currency,
		CategoryID:  categoryID,
		Description: description,
		Date:        date,
		Notes:       notes,
		IsRecurring: isRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
