package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// fakeExpenseRepo serves a fixed ledger snapshot.
type fakeExpenseRepo struct {
	entries []*entity.Expense
}

func (f *fakeExpenseRepo) Create(context.Context, *entity.Expense) error { return nil }
func (f *fakeExpenseRepo) FindByID(context.Context, uuid.UUID) (*entity.Expense, error) {
	return nil, nil
}
func (f *fakeExpenseRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Expense, error) {
	return f.entries, nil
}
func (f *fakeExpenseRepo) FindByFilter(context.Context, adapter.ExpenseFilter) ([]*entity.Expense, error) {
	return f.entries, nil
}
func (f *fakeExpenseRepo) Update(context.Context, *entity.Expense) error { return nil }
func (f *fakeExpenseRepo) Delete(context.Context, uuid.UUID) error       { return nil }

// fakeCategoryRepo serves a fixed category list.
type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }
func (f *fakeCategoryRepo) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return f.categories, nil
}
func (f *fakeCategoryRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (f *fakeCategoryRepo) CountExpenses(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func newSummaryUseCase(entries []*entity.Expense, categories []*entity.Category) *GetSummaryUseCase {
	return NewGetSummaryUseCase(
		&fakeExpenseRepo{entries: entries},
		&fakeCategoryRepo{categories: categories},
		nil,
	)
}

func TestGetSummary_MonthVariation(t *testing.T) {
	cat := category("Rent")
	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, cat.ID, day(2024, 2, 10)),
		entry(200, entity.CurrencyARS, cat.ID, day(2024, 3, 10)),
	}

	uc := newSummaryUseCase(entries, []*entity.Category{cat})
	uc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New(), Currency: entity.CurrencyARS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.MonthlyTotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected monthly total 200, got %s", out.MonthlyTotal)
	}
	approx(t, out.MonthVariation, 100, 1e-9, "month variation")
}

func TestGetSummary_MonthVariationAtMonthEnd(t *testing.T) {
	// March 31 has no same-day counterpart in February; the previous
	// month must still be February, not March again.
	cat := category("Rent")
	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, cat.ID, day(2024, 2, 10)),
		entry(200, entity.CurrencyARS, cat.ID, day(2024, 3, 10)),
	}

	uc := newSummaryUseCase(entries, []*entity.Category{cat})
	uc.now = func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New(), Currency: entity.CurrencyARS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approx(t, out.MonthVariation, 100, 1e-9, "month variation")
}

func TestGetSummary_RejectsUnknownCurrency(t *testing.T) {
	uc := newSummaryUseCase(nil, nil)

	if _, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New(), Currency: entity.Currency("XYZ")}); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}
