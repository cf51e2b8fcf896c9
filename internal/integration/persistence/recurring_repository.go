// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// recurringRepository implements the adapter.RecurringRepository interface.
type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring expense repository instance.
func NewRecurringRepository(db *gorm.DB) adapter.RecurringRepository {
	return &recurringRepository{
		db: db,
	}
}

// Create creates a new recurring expense in the database.
func (r *recurringRepository) Create(ctx context.Context, recurring *entity.RecurringExpense) error {
	recurringModel := model.RecurringExpenseFromEntity(recurring)
	result := r.db.WithContext(ctx).Create(recurringModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a recurring expense by its ID.
func (r *recurringRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	var recurringModel model.RecurringExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recurringModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return recurringModel.ToEntity(), nil
}

// FindByUser retrieves the user's recurring expenses ordered by next payment date.
func (r *recurringRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	var recurringModels []model.RecurringExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_payment_date ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toEntities(recurringModels), nil
}

// FindDue retrieves active recurring expenses whose next payment date
// has passed, oldest first, up to limit entries.
func (r *recurringRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.RecurringExpense, error) {
	var recurringModels []model.RecurringExpenseModel
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_payment_date <= ?", true, now).
		Order("next_payment_date ASC").
		Limit(limit).
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toEntities(recurringModels), nil
}

// FindDueBetween retrieves active recurring expenses due in (from, to].
func (r *recurringRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.RecurringExpense, error) {
	var recurringModels []model.RecurringExpenseModel
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_payment_date > ? AND next_payment_date <= ?", true, from, to).
		Order("next_payment_date ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toEntities(recurringModels), nil
}

// Update updates an existing recurring expense in the database.
func (r *recurringRepository) Update(ctx context.Context, recurring *entity.RecurringExpense) error {
	recurringModel := model.RecurringExpenseFromEntity(recurring)
	result := r.db.WithContext(ctx).Save(recurringModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a recurring expense from the database. Ledger entries
// already materialized from it are left untouched.
func (r *recurringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ApplyPayment persists one payment of a recurring expense: the new
// ledger entry and the advanced schedule are committed in a single
// transaction so a failure can never advance the schedule without its
// entry or record the entry without the advance.
func (r *recurringRepository) ApplyPayment(ctx context.Context, recurring *entity.RecurringExpense, entry *entity.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.ExpenseFromEntity(entry)).Error; err != nil {
			return err
		}
		if err := tx.Save(model.RecurringExpenseFromEntity(recurring)).Error; err != nil {
			return err
		}
		return nil
	})
}

func toEntities(models []model.RecurringExpenseModel) []*entity.RecurringExpense {
	recurring := make([]*entity.RecurringExpense, len(models))
	for i, rm := range models {
		recurring[i] = rm.ToEntity()
	}
	return recurring
}
