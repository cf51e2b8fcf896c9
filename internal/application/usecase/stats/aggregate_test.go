package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func entry(amount float64, currency entity.Currency, categoryID uuid.UUID, date time.Time) *entity.Expense {
	return &entity.Expense{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Amount:     decimal.NewFromFloat(amount),
		Currency:   currency,
		CategoryID: categoryID,
		Date:       date,
	}
}

func category(name string) *entity.Category {
	return &entity.Category{ID: uuid.New(), Name: name}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approx(t *testing.T, got, want, tolerance float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}

func TestPeriodTotal(t *testing.T) {
	cat := category("Food")
	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, cat.ID, day(2024, 1, 5)),
		entry(50, entity.CurrencyARS, cat.ID, day(2024, 2, 5)),
		entry(25, entity.CurrencyUSD, cat.ID, day(2024, 1, 10)),
	}

	t.Run("open bounds include everything", func(t *testing.T) {
		got := PeriodTotal(entries, entity.CurrencyARS, nil, nil)
		if !got.Equal(decimal.NewFromInt(150)) {
			t.Errorf("got %s, want 150", got)
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		from := day(2024, 1, 5)
		to := day(2024, 2, 5)
		got := PeriodTotal(entries, entity.CurrencyARS, &from, &to)
		if !got.Equal(decimal.NewFromInt(150)) {
			t.Errorf("got %s, want 150", got)
		}
	})

	t.Run("currency filter", func(t *testing.T) {
		got := PeriodTotal(entries, entity.CurrencyUSD, nil, nil)
		if !got.Equal(decimal.NewFromInt(25)) {
			t.Errorf("got %s, want 25", got)
		}
	})

	t.Run("empty ledger yields zero", func(t *testing.T) {
		got := PeriodTotal(nil, entity.CurrencyARS, nil, nil)
		if !got.IsZero() {
			t.Errorf("got %s, want 0", got)
		}
	})
}

func TestMonthlyAndWeeklyTotal(t *testing.T) {
	cat := category("Food")
	now := day(2024, 3, 15)
	entries := []*entity.Expense{
		entry(10, entity.CurrencyARS, cat.ID, day(2024, 3, 1)),
		entry(20, entity.CurrencyARS, cat.ID, day(2024, 3, 14)),
		entry(40, entity.CurrencyARS, cat.ID, day(2024, 2, 28)),
	}

	if got := MonthlyTotal(entries, entity.CurrencyARS, now); !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("monthly: got %s, want 30", got)
	}
	if got := WeeklyTotal(entries, entity.CurrencyARS, now); !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("weekly: got %s, want 20", got)
	}
}

func TestCategoryDistribution_SumsEqualPeriodTotal(t *testing.T) {
	food := category("Food")
	transport := category("Transport")
	unused := category("Unused")
	categories := []*entity.Category{food, transport, unused}

	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, food.ID, day(2024, 1, 5)),
		entry(60, entity.CurrencyARS, transport.ID, day(2024, 2, 5)),
		entry(40, entity.CurrencyARS, food.ID, day(2024, 3, 5)),
		entry(5, entity.CurrencyUSD, food.ID, day(2024, 3, 6)),
	}

	dist := CategoryDistribution(entries, categories, entity.CurrencyARS)
	if len(dist) != 2 {
		t.Fatalf("zero-sum categories must be excluded, got %d rows", len(dist))
	}

	sum := decimal.Zero
	for _, row := range dist {
		sum = sum.Add(row.Total)
	}
	total := PeriodTotal(entries, entity.CurrencyARS, nil, nil)
	if !sum.Equal(total) {
		t.Errorf("distribution sum %s must equal period total %s", sum, total)
	}
}

func TestTopCategory_TiesBreakToEarlierCategory(t *testing.T) {
	first := category("First")
	second := category("Second")
	categories := []*entity.Category{first, second}

	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, first.ID, day(2024, 1, 5)),
		entry(100, entity.CurrencyARS, second.ID, day(2024, 1, 6)),
	}

	top := TopCategory(entries, categories)
	if top == nil {
		t.Fatal("expected a top category")
	}
	if top.CategoryID != first.ID {
		t.Errorf("tie must break to the earlier category, got %s", top.Name)
	}

	if TopCategory(nil, categories) != nil {
		t.Error("empty ledger must yield nil")
	}
}

func TestTopExpenses_NormalizationHeuristic(t *testing.T) {
	cat := category("Food")
	ars := entry(80, entity.CurrencyARS, cat.ID, day(2024, 1, 5))
	usd := entry(1, entity.CurrencyUSD, cat.ID, day(2024, 1, 6))

	top := TopExpenses([]*entity.Expense{ars, usd}, 1)
	if len(top) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(top))
	}
	if top[0].ID != usd.ID {
		t.Error("1 USD must outrank 80 ARS under the 1000x normalization")
	}
	if !top[0].Amount.Equal(decimal.NewFromInt(1)) {
		t.Errorf("returned amounts must stay untouched, got %s", top[0].Amount)
	}

	if got := TopExpenses([]*entity.Expense{ars, usd}, 10); len(got) != 2 {
		t.Errorf("n beyond ledger size returns all entries, got %d", len(got))
	}
}

func TestMonthVariation(t *testing.T) {
	tests := []struct {
		current, previous int64
		want              float64
	}{
		{100, 0, 100}, // zero previous, positive current
		{0, 0, 0},     // both zero
		{150, 100, 50},
		{50, 100, -50},
		{100, 100, 0},
	}

	for _, tt := range tests {
		got := MonthVariation(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.previous))
		approx(t, got, tt.want, 1e-9, "variation")
	}
}

func TestCategoryWithMaxGrowth(t *testing.T) {
	now := day(2024, 3, 15)
	grower := category("Grower")
	steady := category("Steady")
	newcomer := category("Newcomer")
	categories := []*entity.Category{grower, steady, newcomer}

	entries := []*entity.Expense{
		// grower: 100 -> 300 (+200%)
		entry(100, entity.CurrencyARS, grower.ID, day(2024, 2, 10)),
		entry(300, entity.CurrencyARS, grower.ID, day(2024, 3, 10)),
		// steady: 100 -> 110 (+10%)
		entry(100, entity.CurrencyARS, steady.ID, day(2024, 2, 12)),
		entry(110, entity.CurrencyARS, steady.ID, day(2024, 3, 12)),
		// newcomer: nothing previous month, undefined growth
		entry(9999, entity.CurrencyARS, newcomer.ID, day(2024, 3, 1)),
	}

	top := CategoryWithMaxGrowth(entries, categories, now)
	if top == nil {
		t.Fatal("expected a growth leader")
	}
	if top.CategoryID != grower.ID {
		t.Errorf("expected grower, got %s", top.Name)
	}
	approx(t, top.Variation, 200, 1e-9, "growth")
}

func TestAverages_WeekSpan(t *testing.T) {
	cat := category("Food")
	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, cat.ID, day(2024, 1, 1)),
		entry(50, entity.CurrencyARS, cat.ID, day(2024, 1, 8)),
	}

	avg := Averages(entries, entity.CurrencyARS)
	approx(t, avg.Daily, 150.0/7, 0.01, "daily")
	approx(t, avg.Weekly, 150, 1e-9, "weekly")
	approx(t, avg.Monthly, 150.0/7*30, 0.01, "monthly")
}

func TestAverages_EdgeCases(t *testing.T) {
	t.Run("empty ledger yields zeros", func(t *testing.T) {
		avg := Averages(nil, entity.CurrencyARS)
		if avg.Daily != 0 || avg.Weekly != 0 || avg.Monthly != 0 {
			t.Errorf("expected all zeros, got %+v", avg)
		}
	})

	t.Run("single entry spans one day", func(t *testing.T) {
		cat := category("Food")
		avg := Averages([]*entity.Expense{entry(70, entity.CurrencyARS, cat.ID, day(2024, 1, 1))}, entity.CurrencyARS)
		approx(t, avg.Daily, 70, 1e-9, "daily")
		approx(t, avg.Weekly, 490, 1e-9, "weekly")
	})

	t.Run("partial day rounds up to a whole day", func(t *testing.T) {
		cat := category("Food")
		entries := []*entity.Expense{
			entry(100, entity.CurrencyARS, cat.ID, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
			entry(50, entity.CurrencyARS, cat.ID, time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC)),
		}

		// 7.5 days between the entries count as 8 full days.
		avg := Averages(entries, entity.CurrencyARS)
		approx(t, avg.Daily, 150.0/8, 1e-9, "daily")
		approx(t, avg.Weekly, 150.0/8*7, 1e-9, "weekly")
		approx(t, avg.Monthly, 150.0/8*30, 1e-9, "monthly")
	})
}

func TestProjectMonthlySpending(t *testing.T) {
	cat := category("Food")
	now := day(2024, 3, 10) // 10 of 31 days elapsed
	entries := []*entity.Expense{
		entry(100, entity.CurrencyARS, cat.ID, day(2024, 3, 5)),
	}

	got := ProjectMonthlySpending(entries, entity.CurrencyARS, now)
	want := decimal.NewFromInt(310)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	if !ProjectMonthlySpending(nil, entity.CurrencyARS, now).IsZero() {
		t.Error("empty month must project zero")
	}
}

func TestCategoryTrends(t *testing.T) {
	food := category("Food")
	now := day(2024, 3, 15)

	entries := []*entity.Expense{
		entry(10, entity.CurrencyARS, food.ID, day(2024, 1, 5)),
		entry(20, entity.CurrencyARS, food.ID, day(2024, 2, 5)),
		entry(30, entity.CurrencyARS, food.ID, day(2024, 3, 5)),
		entry(1, entity.CurrencyUSD, food.ID, day(2024, 3, 6)), // normalized to 1000
		entry(99, entity.CurrencyARS, food.ID, day(2023, 11, 5)),
	}

	rows := CategoryTrends(entries, 3, now)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !rows[0].Month.Equal(day(2024, 1, 1)) || !rows[2].Month.Equal(day(2024, 3, 1)) {
		t.Errorf("rows must cover the trailing months oldest first, got %v..%v", rows[0].Month, rows[2].Month)
	}
	if !rows[0].Totals[food.ID].Equal(decimal.NewFromInt(10)) {
		t.Errorf("january: got %s", rows[0].Totals[food.ID])
	}
	if !rows[2].Totals[food.ID].Equal(decimal.NewFromInt(1030)) {
		t.Errorf("march with normalized USD entry: got %s, want 1030", rows[2].Totals[food.ID])
	}
}

func TestCategoryStats(t *testing.T) {
	food := category("Food")
	transport := category("Transport")
	categories := []*entity.Category{transport, food}
	now := day(2024, 3, 15)

	entries := []*entity.Expense{
		// food: previous 100, current 200 -> +100% -> up; total 300
		entry(100, entity.CurrencyARS, food.ID, day(2024, 2, 10)),
		entry(200, entity.CurrencyARS, food.ID, day(2024, 3, 10)),
		// transport: previous 100, current 100 -> stable; total 200
		entry(100, entity.CurrencyARS, transport.ID, day(2024, 2, 11)),
		entry(100, entity.CurrencyARS, transport.ID, day(2024, 3, 11)),
	}

	rows := CategoryStats(entries, categories, now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].CategoryID != food.ID {
		t.Errorf("rows must sort descending by total, got %s first", rows[0].Name)
	}
	if rows[0].Trend != TrendUp {
		t.Errorf("food trend: got %s, want up", rows[0].Trend)
	}
	if rows[1].Trend != TrendStable {
		t.Errorf("transport trend: got %s, want stable", rows[1].Trend)
	}
	if rows[0].Count != 2 {
		t.Errorf("food count: got %d, want 2", rows[0].Count)
	}
	if !rows[0].Average.Equal(decimal.NewFromInt(150)) {
		t.Errorf("food average: got %s, want 150", rows[0].Average)
	}
	approx(t, rows[0].Percentage, 60, 1e-9, "food percentage")
	approx(t, rows[1].Percentage, 40, 1e-9, "transport percentage")
}
