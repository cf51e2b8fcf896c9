// Package stats contains the ledger analytics use cases.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// statsCacheTTL bounds how stale a cached analytics payload may get.
// Writes invalidate eagerly; the TTL only covers missed invalidations.
const statsCacheTTL = 5 * time.Minute

// topExpensesCount is the number of entries reported in the summary.
const topExpensesCount = 5

// GetSummaryInput represents the input for the spending summary.
type GetSummaryInput struct {
	UserID   uuid.UUID
	Currency entity.Currency
}

// GetSummaryOutput is the dashboard summary: totals, distribution,
// rankings, averages, variation and the current-month projection.
type GetSummaryOutput struct {
	Total          decimal.Decimal
	MonthlyTotal   decimal.Decimal
	WeeklyTotal    decimal.Decimal
	Distribution   []CategoryTotal
	TopCategory    *CategoryTotal
	TopExpenses    []*entity.Expense
	MonthVariation float64
	MaxGrowth      *CategoryGrowth
	Averages       AverageSpending
	Projected      decimal.Decimal
}

// GetSummaryUseCase computes the spending summary for a user.
type GetSummaryUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
	now          func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatsCache,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

// Execute computes the summary, serving from cache when possible.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if !input.Currency.IsValid() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCurrency,
			"currency is not supported",
			domainerror.ErrInvalidCurrency,
		)
	}

	key := summaryCacheKey(input.UserID, input.Currency)
	var cached GetSummaryOutput
	if hit := cacheGet(ctx, uc.statsCache, key, &cached); hit {
		return &cached, nil
	}

	entries, err := uc.expenseRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	now := uc.now().UTC()
	currentMonth := MonthlyTotal(entries, input.Currency, now)
	// Anchor on the month start: stepping back from day 29-31 after a
	// shorter month would normalize into the current month again.
	previousMonth := MonthlyTotal(entries, input.Currency, monthStart(now).AddDate(0, -1, 0))

	out := &GetSummaryOutput{
		Total:          PeriodTotal(entries, input.Currency, nil, nil),
		MonthlyTotal:   currentMonth,
		WeeklyTotal:    WeeklyTotal(entries, input.Currency, now),
		Distribution:   CategoryDistribution(entries, categories, input.Currency),
		TopCategory:    TopCategory(entries, categories),
		TopExpenses:    TopExpenses(entries, topExpensesCount),
		MonthVariation: MonthVariation(currentMonth, previousMonth),
		MaxGrowth:      CategoryWithMaxGrowth(entries, categories, now),
		Averages:       Averages(entries, input.Currency),
		Projected:      ProjectMonthlySpending(entries, input.Currency, now),
	}

	cacheSet(ctx, uc.statsCache, key, out)
	return out, nil
}

func summaryCacheKey(userID uuid.UUID, currency entity.Currency) string {
	return fmt.Sprintf("stats:%s:summary:%s", userID, currency)
}

// cacheGet loads a cached payload. Cache failures degrade to a miss.
func cacheGet(ctx context.Context, cache adapter.StatsCache, key string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		slog.Debug("Stats cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return hit
}

// cacheSet stores a computed payload. Failures are logged and ignored.
func cacheSet(ctx context.Context, cache adapter.StatsCache, key string, value interface{}) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, value, statsCacheTTL); err != nil {
		slog.Debug("Stats cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
