// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/schedule"
)

// ProcessPaymentInput represents the input for processing one payment
// of a recurring expense.
type ProcessPaymentInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID
}

// ProcessPaymentOutput represents the output of processing a payment.
type ProcessPaymentOutput struct {
	Recurring *RecurringOutput
	ExpenseID uuid.UUID
}

// ProcessPaymentUseCase materializes one payment of a recurring
// expense: it appends a ledger entry copied from the template, advances
// the next payment date from the current instant, and re-derives the
// active flag from the end date.
//
// Two contract points callers must be aware of:
//
//   - The active flag is set to whether the end date has not yet
//     passed. A manually paused recurring expense therefore becomes
//     active again when a payment is processed before its end date.
//   - The ledger append and the schedule advance are applied as a
//     single atomic unit. On failure nothing is committed and the
//     recurring expense stays due, so the operation can be retried as
//     a whole.
type ProcessPaymentUseCase struct {
	recurringRepo adapter.RecurringRepository
	statsCache    adapter.StatsCache
	now           func() time.Time
}

// NewProcessPaymentUseCase creates a new ProcessPaymentUseCase instance.
func NewProcessPaymentUseCase(
	recurringRepo adapter.RecurringRepository,
	statsCache adapter.StatsCache,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		recurringRepo: recurringRepo,
		statsCache:    statsCache,
		now:           time.Now,
	}
}

// Execute performs the payment processing.
func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, input ProcessPaymentInput) (*ProcessPaymentOutput, error) {
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
			"not authorized to process this recurring expense",
			domainerror.ErrNotAuthorizedToModifyRecurring,
		)
	}

	// Stored rows are validated on the way in, but a corrupted frequency
	// must not reach the schedule arithmetic.
	if !recurring.Frequency.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"recurring expense has an invalid frequency",
			domainerror.ErrInvalidFrequency,
		)
	}

	now := uc.now().UTC()

	entry := recurring.Materialize(now)

	recurring.NextPaymentDate = schedule.NextOccurrence(now, recurring.Frequency, recurring.DayOfMonth, now)
	recurring.IsActive = !recurring.Expired(now)
	recurring.UpdatedAt = now

	if err := uc.recurringRepo.ApplyPayment(ctx, recurring, entry); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	if uc.statsCache != nil {
		// Cache entries expire on their own; the payment is already committed.
		if err := uc.statsCache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Debug("Failed to invalidate stats cache after payment",
				"userID", input.UserID,
				"error", err,
			)
		}
	}

	return &ProcessPaymentOutput{
		Recurring: toRecurringOutput(recurring),
		ExpenseID: entry.ID,
	}, nil
}
