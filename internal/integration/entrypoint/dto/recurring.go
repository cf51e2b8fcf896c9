// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
)

// CreateRecurringRequest represents the request body for recurring expense creation.
type CreateRecurringRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency" binding:"required,oneof=ARS USD EUR MXN COP CLP BRL"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Frequency   string  `json:"frequency" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateRecurringRequest represents the request body for recurring expense update.
type UpdateRecurringRequest struct {
	Description     *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount          *float64 `json:"amount,omitempty"`
	Currency        *string  `json:"currency,omitempty" binding:"omitempty,oneof=ARS USD EUR MXN COP CLP BRL"`
	CategoryID      *string  `json:"category_id,omitempty"`
	Frequency       *string  `json:"frequency,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	ClearEndDate    bool     `json:"clear_end_date,omitempty"`
	DayOfMonth      *int     `json:"day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
	ClearDayOfMonth bool     `json:"clear_day_of_month,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
	Notes           *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// RecurringResponse represents a single recurring expense in API responses.
type RecurringResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Description     string    `json:"description"`
	Amount          string    `json:"amount"`
	Currency        string    `json:"currency"`
	CategoryID      string    `json:"category_id"`
	Frequency       string    `json:"frequency"`
	StartDate       string    `json:"start_date"`
	EndDate         *string   `json:"end_date,omitempty"`
	NextPaymentDate string    `json:"next_payment_date"`
	DayOfMonth      *int      `json:"day_of_month,omitempty"`
	IsActive        bool      `json:"is_active"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecurringListResponse represents the response for listing recurring expenses.
type RecurringListResponse struct {
	Recurring []RecurringResponse `json:"recurring_expenses"`
}

// ProcessPaymentResponse represents the response for processing a recurring payment.
type ProcessPaymentResponse struct {
	Recurring RecurringResponse `json:"recurring_expense"`
	ExpenseID string            `json:"expense_id"`
}

// ToRecurringResponse converts a RecurringOutput to a RecurringResponse DTO.
func ToRecurringResponse(r *recurring.RecurringOutput) RecurringResponse {
	response := RecurringResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Description:     r.Description,
		Amount:          r.Amount.String(),
		Currency:        string(r.Currency),
		CategoryID:      r.CategoryID.String(),
		Frequency:       string(r.Frequency),
		StartDate:       r.StartDate.Format("2006-01-02"),
		NextPaymentDate: r.NextPaymentDate.Format("2006-01-02"),
		DayOfMonth:      r.DayOfMonth,
		IsActive:        r.IsActive,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.EndDate != nil {
		endDate := r.EndDate.Format("2006-01-02")
		response.EndDate = &endDate
	}

	return response
}

// ToRecurringListResponse converts a ListRecurringOutput to RecurringListResponse.
func ToRecurringListResponse(output *recurring.ListRecurringOutput) RecurringListResponse {
	items := make([]RecurringResponse, len(output.Recurring))
	for i, r := range output.Recurring {
		items[i] = ToRecurringResponse(r)
	}
	return RecurringListResponse{Recurring: items}
}
