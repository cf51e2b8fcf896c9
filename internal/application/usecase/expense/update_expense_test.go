package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestUpdateExpense_PartialUpdates(t *testing.T) {
	userID := uuid.New()

	seed := func(t *testing.T) (*UpdateExpenseUseCase, *fakeExpenseRepo, *entity.Expense) {
		t.Helper()
		expenseRepo := newFakeExpenseRepo()
		categoryRepo := newFakeCategoryRepo()
		exp := entity.NewExpense(
			userID,
			decimal.NewFromInt(100),
			entity.CurrencyARS,
			seedCategory(t, categoryRepo, userID).ID,
			"dinner",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			"with friends",
			false,
		)
		if err := expenseRepo.Create(context.Background(), exp); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return NewUpdateExpenseUseCase(expenseRepo, categoryRepo, nil), expenseRepo, exp
	}

	t.Run("nil pointers leave fields untouched", func(t *testing.T) {
		uc, _, exp := seed(t)
		amount := decimal.NewFromInt(250)

		out, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID: exp.ID,
			UserID:    userID,
			Amount:    &amount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.Expense.Amount.Equal(amount) {
			t.Errorf("expected amount %s, got %s", amount, out.Expense.Amount)
		}
		if out.Expense.Description != "dinner" {
			t.Errorf("description must survive a partial update, got %q", out.Expense.Description)
		}
		if out.Expense.Notes != "with friends" {
			t.Errorf("notes must survive a partial update, got %q", out.Expense.Notes)
		}
		if out.Expense.Currency != entity.CurrencyARS {
			t.Errorf("currency must survive a partial update, got %s", out.Expense.Currency)
		}
	})

	t.Run("clears notes with empty string", func(t *testing.T) {
		uc, _, exp := seed(t)
		empty := ""

		out, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID: exp.ID,
			UserID:    userID,
			Notes:     &empty,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Expense.Notes != "" {
			t.Errorf("expected notes cleared, got %q", out.Expense.Notes)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		uc, repo, exp := seed(t)
		amount := decimal.Zero

		if _, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID: exp.ID,
			UserID:    userID,
			Amount:    &amount,
		}); err == nil {
			t.Fatal("expected error for zero amount")
		}

		stored, _ := repo.FindByID(context.Background(), exp.ID)
		if !stored.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("amount must not change on rejected update, got %s", stored.Amount)
		}
	})

	t.Run("rejects another user", func(t *testing.T) {
		uc, _, exp := seed(t)
		desc := "hijack"

		if _, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID:   exp.ID,
			UserID:      uuid.New(),
			Description: &desc,
		}); err == nil {
			t.Fatal("expected authorization error")
		}
	})

	t.Run("unknown expense", func(t *testing.T) {
		uc, _, _ := seed(t)
		desc := "x"

		if _, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID:   uuid.New(),
			UserID:      userID,
			Description: &desc,
		}); err == nil {
			t.Fatal("expected not-found error")
		}
	})
}

func TestListExpenses_Filters(t *testing.T) {
	userID := uuid.New()
	expenseRepo := newFakeExpenseRepo()
	categoryRepo := newFakeCategoryRepo()
	catA := seedCategory(t, categoryRepo, userID)

	mk := func(amount int64, currency entity.Currency, categoryID uuid.UUID, date time.Time) {
		e := entity.NewExpense(userID, decimal.NewFromInt(amount), currency, categoryID, "e", date, "", false)
		if err := expenseRepo.Create(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	catB := uuid.New()
	mk(10, entity.CurrencyARS, catA.ID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	mk(20, entity.CurrencyUSD, catA.ID, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
	mk(30, entity.CurrencyARS, catB, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	uc := NewListExpensesUseCase(expenseRepo)

	t.Run("date range", func(t *testing.T) {
		from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
		out, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, StartDate: &from, EndDate: &to})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Expenses) != 1 {
			t.Fatalf("expected 1 expense in February, got %d", len(out.Expenses))
		}
	})

	t.Run("currency filter", func(t *testing.T) {
		usd := entity.CurrencyUSD
		out, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, Currency: &usd})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Expenses) != 1 {
			t.Fatalf("expected 1 USD expense, got %d", len(out.Expenses))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, CategoryID: &catA.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Expenses) != 2 {
			t.Fatalf("expected 2 expenses in category, got %d", len(out.Expenses))
		}
	})

	t.Run("invalid currency filter", func(t *testing.T) {
		bad := entity.Currency("XXX")
		if _, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, Currency: &bad}); err == nil {
			t.Fatal("expected error for invalid currency filter")
		}
	})
}
