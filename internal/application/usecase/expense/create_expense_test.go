package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func seedCategory(t *testing.T, repo *fakeCategoryRepo, userID uuid.UUID) *entity.Category {
	t.Helper()
	cat := entity.NewCategory(userID, "Groceries", "#10B981", "cart")
	if err := repo.Create(context.Background(), cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return cat
}

func TestCreateExpense(t *testing.T) {
	userID := uuid.New()

	t.Run("creates and invalidates stats cache", func(t *testing.T) {
		expenseRepo := newFakeExpenseRepo()
		categoryRepo := newFakeCategoryRepo()
		cache := &fakeStatsCache{}
		cat := seedCategory(t, categoryRepo, userID)

		uc := NewCreateExpenseUseCase(expenseRepo, categoryRepo, cache)
		out, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:      userID,
			Amount:      decimal.NewFromFloat(42.50),
			Currency:    entity.CurrencyARS,
			CategoryID:  cat.ID,
			Description: "weekly shop",
			Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Expense.IsRecurring {
			t.Error("directly created expenses must not be marked recurring")
		}
		if len(expenseRepo.items) != 1 {
			t.Fatalf("expected 1 stored expense, got %d", len(expenseRepo.items))
		}
		if len(cache.invalidated) != 1 || cache.invalidated[0] != userID {
			t.Errorf("expected stats cache invalidation for %s, got %v", userID, cache.invalidated)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo()
		cat := seedCategory(t, categoryRepo, userID)
		uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), categoryRepo, nil)

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
			if _, err := uc.Execute(context.Background(), CreateExpenseInput{
				UserID:     userID,
				Amount:     amount,
				Currency:   entity.CurrencyARS,
				CategoryID: cat.ID,
				Date:       time.Now(),
			}); err == nil {
				t.Errorf("expected error for amount %s", amount)
			}
		}
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo()
		cat := seedCategory(t, categoryRepo, userID)
		uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), categoryRepo, nil)

		if _, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:     userID,
			Amount:     decimal.NewFromInt(10),
			Currency:   entity.Currency("GBP"),
			CategoryID: cat.ID,
			Date:       time.Now(),
		}); err == nil {
			t.Error("expected error for unsupported currency")
		}
	})

	t.Run("rejects missing category", func(t *testing.T) {
		uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), newFakeCategoryRepo(), nil)

		if _, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:     userID,
			Amount:     decimal.NewFromInt(10),
			Currency:   entity.CurrencyARS,
			CategoryID: uuid.New(),
			Date:       time.Now(),
		}); err == nil {
			t.Error("expected error for unknown category")
		}
	})

	t.Run("rejects another user's category", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo()
		cat := seedCategory(t, categoryRepo, uuid.New())
		uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), categoryRepo, nil)

		if _, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:     userID,
			Amount:     decimal.NewFromInt(10),
			Currency:   entity.CurrencyARS,
			CategoryID: cat.ID,
			Date:       time.Now(),
		}); err == nil {
			t.Error("expected error for category owned by another user")
		}
	})

	t.Run("allows preset category of another user", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo()
		preset := entity.NewCategory(uuid.New(), "Transport", "#3B82F6", "bus")
		preset.IsPreset = true
		if err := categoryRepo.Create(context.Background(), preset); err != nil {
			t.Fatalf("seed: %v", err)
		}
		uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), categoryRepo, nil)

		if _, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:     userID,
			Amount:     decimal.NewFromInt(10),
			Currency:   entity.CurrencyARS,
			CategoryID: preset.ID,
			Date:       time.Now(),
		}); err != nil {
			t.Errorf("preset categories must be usable by everyone: %v", err)
		}
	})
}
