// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// RecurringRepository defines the interface for recurring expense
// persistence operations.
type RecurringRepository interface {
	// Create creates a new recurring expense in the database.
	Create(ctx context.Context, recurring *entity.RecurringExpense) error

	// FindByID retrieves a recurring expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error)

	// FindByUser retrieves all recurring expenses for a given user,
	// ordered by next payment date ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error)

	// FindDue retrieves active recurring expenses whose next payment
	// date is at or before the given instant, up to limit entries.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.RecurringExpense, error)

	// FindDueBetween retrieves active recurring expenses whose next
	// payment date falls within (from, to].
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.RecurringExpense, error)

	// Update updates an existing recurring expense in the database.
	Update(ctx context.Context, recurring *entity.RecurringExpense) error

	// Delete removes a recurring expense from the database. Already
	// materialized ledger entries are unaffected.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyPayment persists a materialized ledger entry together with
	// the advanced recurring expense as a single atomic unit. Either
	// both writes commit or neither does, so a recurring expense can
	// never advance without its ledger entry or vice versa.
	ApplyPayment(ctx context.Context, recurring *entity.RecurringExpense, entry *entity.Expense) error
}
