// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency" binding:"required,oneof=ARS USD EUR MXN COP CLP BRL"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Date        string  `json:"date" binding:"required"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateExpenseRequest represents the request body for expense update.
type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty" binding:"omitempty,oneof=ARS USD EUR MXN COP CLP BRL"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Description *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Date        *string  `json:"date,omitempty"`
	Notes       *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	CategoryID  string    `json:"category_id"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes"`
	IsRecurring bool      `json:"is_recurring"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts an ExpenseOutput to an ExpenseResponse DTO.
func ToExpenseResponse(e *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Amount:      e.Amount.String(),
		Currency:    string(e.Currency),
		CategoryID:  e.CategoryID.String(),
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Notes:       e.Notes,
		IsRecurring: e.IsRecurring,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToExpenseListResponse converts a ListExpensesOutput to ExpenseListResponse.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{Expenses: expenses}
}
