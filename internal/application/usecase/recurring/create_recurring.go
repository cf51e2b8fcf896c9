// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

const (
	// MaxDescriptionLength is the maximum allowed length for descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for notes.
	MaxNotesLength = 1000
)

// CreateRecurringInput represents the input for recurring expense creation.
type CreateRecurringInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Currency    entity.Currency
	CategoryID  uuid.UUID
	Frequency   schedule.Frequency
	StartDate   time.Time
	EndDate     *time.Time
	DayOfMonth  *int
	Notes       string
}

// CreateRecurringOutput represents the output of recurring expense creation.
type CreateRecurringOutput struct {
	Recurring *RecurringOutput
}

// CreateRecurringUseCase handles recurring expense creation logic.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
	categoryRepo  adapter.CategoryRepository
	now           func() time.Time
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(
	recurringRepo adapter.RecurringRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
		now:           time.Now,
	}
}

// Execute performs the recurring expense creation. The recurring
// expense starts active with a freshly computed next payment date.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
	if err := validateRecurringFields(input.Frequency, input.DayOfMonth, input.Description, input.Notes); err != nil {
		return nil, err
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if !input.Currency.IsValid() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCurrency,
			"currency is not supported",
			domainerror.ErrInvalidCurrency,
		)
	}

	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidEndDate,
			"end date must be after start date",
			domainerror.ErrInvalidEndDate,
		)
	}

	if err := uc.checkCategory(ctx, input.CategoryID, input.UserID); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	nextPayment := schedule.NextOccurrence(input.StartDate, input.Frequency, input.DayOfMonth, now)

	recurring := entity.NewRecurringExpense(
		input.UserID,
		input.Description,
		input.Amount,
		input.Currency,
		input.CategoryID,
		input.Frequency,
		input.StartDate,
		input.EndDate,
		nextPayment,
		input.DayOfMonth,
		input.Notes,
	)

	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring expense: %w", err)
	}

	return &CreateRecurringOutput{Recurring: toRecurringOutput(recurring)}, nil
}

// checkCategory verifies the category exists and belongs to the user.
func (uc *CreateRecurringUseCase) checkCategory(ctx context.Context, categoryID, userID uuid.UUID) error {
	category, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForExpense,
		)
	}
	if category.UserID != userID && !category.IsPreset {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"category does not belong to user",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}
	return nil
}

// validateRecurringFields validates the fields shared by create and update.
func validateRecurringFields(frequency schedule.Frequency, dayOfMonth *int, description, notes string) error {
	if !frequency.IsValid() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			fmt.Sprintf("frequency must be one of %v", schedule.Frequencies),
			domainerror.ErrInvalidFrequency,
		)
	}

	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day of month must be between 1 and 31",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	if len(description) > MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if len(notes) > MaxNotesLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	return nil
}
