// Package expense contains ledger entry use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for notes.
	MaxNotesLength = 1000
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Currency    entity.Currency
	CategoryID  uuid.UUID
	Description string
	Date        time.Time
	Notes       string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatsCache,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Amount, input.Currency, input.Description, input.Notes); err != nil {
		return nil, err
	}

	if err := checkCategoryOwnership(ctx, uc.categoryRepo, input.CategoryID, input.UserID); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.UserID,
		input.Amount,
		input.Currency,
		input.CategoryID,
		input.Description,
		input.Date,
		input.Notes,
		false,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	invalidateStats(ctx, uc.statsCache, input.UserID)

	return &CreateExpenseOutput{Expense: toExpenseOutput(expense)}, nil
}

// validateExpenseFields validates the fields shared by create and update.
func validateExpenseFields(amount decimal.Decimal, currency entity.Currency, description, notes string) error {
	if !amount.IsPositive() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if !currency.IsValid() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCurrency,
			"currency is not supported",
			domainerror.ErrInvalidCurrency,
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

// checkCategoryOwnership verifies the category exists and is usable by the user.
func checkCategoryOwnership(ctx context.Context, categoryRepo adapter.CategoryRepository, categoryID, userID uuid.UUID) error {
	category, err := categoryRepo.FindByID(ctx, categoryID)
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

// invalidateStats drops the user's cached analytics after a ledger write.
// A cache failure never fails the write.
func invalidateStats(ctx context.Context, cache adapter.StatsCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Debug("Failed to invalidate stats cache",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}
