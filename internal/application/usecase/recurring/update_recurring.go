// Package recurring contains recurring expense use cases.
package recurring

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
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// UpdateRecurringInput represents the input for a recurring expense
// update. The set of mutable fields is statically enumerated: a nil
// pointer leaves the field untouched. ClearEndDate and ClearDayOfMonth
// distinguish "remove the value" from "leave as is".
type UpdateRecurringInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID

	Description     *string
	Amount          *decimal.Decimal
	Currency        *entity.Currency
	CategoryID      *uuid.UUID
	Frequency       *schedule.Frequency
	StartDate       *time.Time
	EndDate         *time.Time
	ClearEndDate    bool
	DayOfMonth      *int
	ClearDayOfMonth bool
	IsActive        *bool
	Notes           *string
}

// UpdateRecurringOutput represents the output of a recurring expense update.
type UpdateRecurringOutput struct {
	Recurring *RecurringOutput
}

// UpdateRecurringUseCase handles recurring expense update logic.
//
// Changing the frequency, start date or day of month recomputes the
// next payment date from the merged values and the current time; all
// other edits leave it untouched.
type UpdateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
	categoryRepo  adapter.CategoryRepository
	now           func() time.Time
}

// NewUpdateRecurringUseCase creates a new UpdateRecurringUseCase instance.
func NewUpdateRecurringUseCase(
	recurringRepo adapter.RecurringRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateRecurringUseCase {
	return &UpdateRecurringUseCase{
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
		now:           time.Now,
	}
}

// Execute performs the recurring expense update.
func (uc *UpdateRecurringUseCase) Execute(ctx context.Context, input UpdateRecurringInput) (*UpdateRecurringOutput, error) {
	recurring, err := uc.recurringRepo.FindByID(ctx, input.RecurringID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringNotFound,
				"recurring expense not found",
				domainerror.ErrRecurringNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recurring expense: %w", err)
	}

	if recurring.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"not authorized to update this recurring expense",
			domainerror.ErrNotAuthorizedToModifyRecurring,
		)
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		recurring.Description = *input.Description
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpenseAmount,
				"amount must be positive",
				domainerror.ErrInvalidExpenseAmount,
			)
		}
		recurring.Amount = *input.Amount
	}

	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidCurrency,
				"currency is not supported",
				domainerror.ErrInvalidCurrency,
			)
		}
		recurring.Currency = *input.Currency
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForExpense,
			)
		}
		if category.UserID != input.UserID && !category.IsPreset {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeNotAuthorizedCategory,
				"category does not belong to user",
				domainerror.ErrNotAuthorizedToModifyCategory,
			)
		}
		recurring.CategoryID = *input.CategoryID
	}

	// Track whether any schedule-affecting field changed.
	reschedule := false

	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidFrequency,
				fmt.Sprintf("frequency must be one of %v", schedule.Frequencies),
				domainerror.ErrInvalidFrequency,
			)
		}
		recurring.Frequency = *input.Frequency
		reschedule = true
	}

	if input.StartDate != nil {
		recurring.StartDate = *input.StartDate
		reschedule = true
	}

	if input.ClearDayOfMonth {
		recurring.DayOfMonth = nil
		reschedule = true
	} else if input.DayOfMonth != nil {
		if *input.DayOfMonth < 1 || *input.DayOfMonth > 31 {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidDayOfMonth,
				"day of month must be between 1 and 31",
				domainerror.ErrInvalidDayOfMonth,
			)
		}
		recurring.DayOfMonth = input.DayOfMonth
		reschedule = true
	}

	if input.ClearEndDate {
		recurring.EndDate = nil
	} else if input.EndDate != nil {
		recurring.EndDate = input.EndDate
	}

	if recurring.EndDate != nil && !recurring.EndDate.After(recurring.StartDate) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidEndDate,
			"end date must be after start date",
			domainerror.ErrInvalidEndDate,
		)
	}

	if input.IsActive != nil {
		recurring.IsActive = *input.IsActive
	}

	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeNotesTooLong,
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
				domainerror.ErrNotesTooLong,
			)
		}
		recurring.Notes = *input.Notes
	}

	if reschedule {
		recurring.NextPaymentDate = schedule.NextOccurrence(
			recurring.StartDate, recurring.Frequency, recurring.DayOfMonth, uc.now().UTC())
	}

	recurring.UpdatedAt = uc.now().UTC()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}

	return &UpdateRecurringOutput{Recurring: toRecurringOutput(recurring)}, nil
}
