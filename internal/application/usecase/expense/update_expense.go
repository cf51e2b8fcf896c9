// Package expense contains ledger entry use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for an expense update. A nil
// pointer leaves the field untouched.
type UpdateExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID

	Amount      *decimal.Decimal
	Currency    *entity.Currency
	CategoryID  *uuid.UUID
	Description *string
	Date        *time.Time
	Notes       *string
}

// UpdateExpenseOutput represents the output of an expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic. The IsRecurring
// marker is immutable: entries keep their provenance for life.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
	now          func() time.Time
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatsCache,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.UserID != input.UserID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotAuthorizedExpense,
			"not authorized to update this expense",
			domainerror.ErrNotAuthorizedToModifyExpense,
		)
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpenseAmount,
				"amount must be positive",
				domainerror.ErrInvalidExpenseAmount,
			)
		}
		expense.Amount = *input.Amount
	}

	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidCurrency,
				"currency is not supported",
				domainerror.ErrInvalidCurrency,
			)
		}
		expense.Currency = *input.Currency
	}

	if input.CategoryID != nil {
		if err := checkCategoryOwnership(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		expense.CategoryID = *input.CategoryID
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		expense.Description = *input.Description
	}

	if input.Date != nil {
		expense.Date = *input.Date
	}

	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeNotesTooLong,
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
				domainerror.ErrNotesTooLong,
			)
		}
		expense.Notes = *input.Notes
	}

	expense.UpdatedAt = uc.now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	invalidateStats(ctx, uc.statsCache, input.UserID)

	return &UpdateExpenseOutput{Expense: toExpenseOutput(expense)}, nil
}
