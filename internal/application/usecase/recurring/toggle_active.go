// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ToggleActiveInput represents the input for pausing or resuming a
// recurring expense.
type ToggleActiveInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID
}

// ToggleActiveOutput represents the output of toggling a recurring expense.
type ToggleActiveOutput struct {
	Recurring *RecurringOutput
}

// ToggleActiveUseCase flips a recurring expense between active and
// paused. The next payment date is left untouched.
//
// Pausing is not sticky: processing a payment before the end date
// re-activates the recurring expense regardless of a previous toggle.
// See ProcessPaymentUseCase.
type ToggleActiveUseCase struct {
	recurringRepo adapter.RecurringRepository
	now           func() time.Time
}

// NewToggleActiveUseCase creates a new ToggleActiveUseCase instance.
func NewToggleActiveUseCase(recurringRepo adapter.RecurringRepository) *ToggleActiveUseCase {
	return &ToggleActiveUseCase{
		recurringRepo: recurringRepo,
		now:           time.Now,
	}
}

// Execute performs the toggle.
func (uc *ToggleActiveUseCase) Execute(ctx context.Context, input ToggleActiveInput) (*ToggleActiveOutput, error) {
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

	recurring.IsActive = !recurring.IsActive
	recurring.UpdatedAt = uc.now().UTC()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}

	return &ToggleActiveOutput{Recurring: toRecurringOutput(recurring)}, nil
}
