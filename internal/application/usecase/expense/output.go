// Package expense contains ledger entry use cases.
package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseOutput represents expense data returned by use cases.
type ExpenseOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Currency    entity.Currency
	CategoryID  uuid.UUID
	Description string
	Date        time.Time
	Notes       string
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toExpenseOutput(e *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		CategoryID:  e.CategoryID,
		Description: e.Description,
		Date:        e.Date,
		Notes:       e.Notes,
		IsRecurring: e.IsRecurring,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
