package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/schedule"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.RecurringExpenseModel{},
		&model.EmailJobModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAndCategory(t *testing.T, db *gorm.DB) (*entity.User, *entity.Category) {
	t.Helper()
	ctx := context.Background()

	user := entity.NewUser("ada@example.com", "Ada", "hash")
	if err := NewUserRepository(db).Create(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	cat := entity.NewCategory(user.ID, "Rent", "#6366F1", "home")
	if err := NewCategoryRepository(db).Create(ctx, cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return user, cat
}

func TestExpenseRepository_CRUDAndFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, cat := seedUserAndCategory(t, db)
	repo := NewExpenseRepository(db)

	e := entity.NewExpense(user.ID, decimal.NewFromInt(42), entity.CurrencyARS, cat.ID,
		"groceries", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "", false)
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.Amount.Equal(e.Amount) || got.Currency != entity.CurrencyARS {
		t.Errorf("roundtrip mismatch: %+v", got)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); err != domainerror.ErrExpenseNotFound {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, e.ID); err != domainerror.ErrExpenseNotFound {
		t.Errorf("expected deleted expense to be gone, got %v", err)
	}
}

func TestCategoryRepository_CountExpenses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, cat := seedUserAndCategory(t, db)
	expenseRepo := NewExpenseRepository(db)
	categoryRepo := NewCategoryRepository(db)

	for i := 0; i < 3; i++ {
		e := entity.NewExpense(user.ID, decimal.NewFromInt(10), entity.CurrencyARS, cat.ID,
			"e", time.Now().UTC(), "", false)
		if err := expenseRepo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err := categoryRepo.CountExpenses(ctx, cat.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 referencing expenses, got %d", count)
	}
}

func TestRecurringRepository_ApplyPayment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, cat := seedUserAndCategory(t, db)
	recurringRepo := NewRecurringRepository(db)
	expenseRepo := NewExpenseRepository(db)

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rec := entity.NewRecurringExpense(user.ID, "Rent", decimal.NewFromInt(1200), entity.CurrencyARS,
		cat.ID, schedule.FrequencyMonthly, now.AddDate(0, -2, 0), nil, now, nil, "")
	if err := recurringRepo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	entry := rec.Materialize(now)
	rec.NextPaymentDate = now.AddDate(0, 1, 0)
	if err := recurringRepo.ApplyPayment(ctx, rec, entry); err != nil {
		t.Fatalf("apply payment: %v", err)
	}

	stored, err := recurringRepo.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.NextPaymentDate.Equal(rec.NextPaymentDate) {
		t.Errorf("next payment date not advanced: %v", stored.NextPaymentDate)
	}

	entries, err := expenseRepo.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 materialized entry, got %d", len(entries))
	}
	if !entries[0].IsRecurring {
		t.Error("materialized entry must be marked recurring")
	}
}

func TestRecurringRepository_FindDue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, cat := seedUserAndCategory(t, db)
	repo := NewRecurringRepository(db)

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mk := func(next time.Time, active bool) {
		rec := entity.NewRecurringExpense(user.ID, "x", decimal.NewFromInt(10), entity.CurrencyARS,
			cat.ID, schedule.FrequencyMonthly, now.AddDate(0, -3, 0), nil, next, nil, "")
		rec.IsActive = active
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mk(now.AddDate(0, 0, -1), true)  // due
	mk(now.AddDate(0, 0, 1), true)   // not yet due
	mk(now.AddDate(0, 0, -1), false) // paused

	due, err := repo.FindDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("find due: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due recurring expense, got %d", len(due))
	}

	upcoming, err := repo.FindDueBetween(ctx, now, now.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("find due between: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming recurring expense, got %d", len(upcoming))
	}
}

func TestEmailQueueRepository_ReminderDeduplication(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewEmailQueueRepository(db)

	recurringID := uuid.New()
	dueDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	job := entity.NewEmailJob(entity.TemplatePaymentReminder, "ada@example.com", "Ada",
		"Upcoming payment", map[string]interface{}{"amount": "1200"})
	job.RecurringExpenseID = &recurringID
	job.DueDate = &dueDate

	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	has, err := repo.HasReminderFor(ctx, recurringID, dueDate)
	if err != nil {
		t.Fatalf("has reminder: %v", err)
	}
	if !has {
		t.Error("expected reminder to be found for the queued occurrence")
	}

	has, err = repo.HasReminderFor(ctx, recurringID, dueDate.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("has reminder: %v", err)
	}
	if has {
		t.Error("a different occurrence must not count as queued")
	}

	pending, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending job, got %d", len(pending))
	}
}
