// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ListRecurringInput represents the input for listing recurring expenses.
type ListRecurringInput struct {
	UserID uuid.UUID
}

// ListRecurringOutput represents the output of listing recurring
// expenses, ordered by next payment date ascending.
type ListRecurringOutput struct {
	Recurring []*RecurringOutput
}

// ListRecurringUseCase handles listing recurring expenses.
type ListRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewListRecurringUseCase creates a new ListRecurringUseCase instance.
func NewListRecurringUseCase(recurringRepo adapter.RecurringRepository) *ListRecurringUseCase {
	return &ListRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute retrieves the user's recurring expenses.
func (uc *ListRecurringUseCase) Execute(ctx context.Context, input ListRecurringInput) (*ListRecurringOutput, error) {
	items, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	outputs := make([]*RecurringOutput, len(items))
	for i, item := range items {
		outputs[i] = toRecurringOutput(item)
	}

	return &ListRecurringOutput{Recurring: outputs}, nil
}
