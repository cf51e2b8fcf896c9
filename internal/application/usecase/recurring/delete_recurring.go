// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteRecurringInput represents the input for recurring expense deletion.
type DeleteRecurringInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID
}

// DeleteRecurringOutput represents the output of recurring expense deletion.
type DeleteRecurringOutput struct {
	Success bool
}

// DeleteRecurringUseCase handles recurring expense deletion. Ledger
// entries already materialized from the recurring expense are kept.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringRepository) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute performs the recurring expense deletion.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) (*DeleteRecurringOutput, error) {
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
			"not authorized to delete this recurring expense",
			domainerror.ErrNotAuthorizedToModifyRecurring,
		)
	}

	if err := uc.recurringRepo.Delete(ctx, input.RecurringID); err != nil {
		return nil, fmt.Errorf("failed to delete recurring expense: %w", err)
	}

	return &DeleteRecurringOutput{Success: true}, nil
}
