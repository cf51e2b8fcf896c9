// Package expense contains ledger entry use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing expenses. All
// filters are optional and combine with AND semantics.
type ListExpensesInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Currency   *entity.Currency
}

// ListExpensesOutput represents the output of listing expenses,
// newest first.
type ListExpensesOutput struct {
	Expenses []*ExpenseOutput
}

// ListExpensesUseCase handles expense listing.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute retrieves the user's expenses matching the filters.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Currency != nil && !input.Currency.IsValid() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCurrency,
			"currency is not supported",
			domainerror.ErrInvalidCurrency,
		)
	}

	items, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:     input.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		Currency:   input.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	outputs := make([]*ExpenseOutput, len(items))
	for i, item := range items {
		outputs[i] = toExpenseOutput(item)
	}

	return &ListExpensesOutput{Expenses: outputs}, nil
}
