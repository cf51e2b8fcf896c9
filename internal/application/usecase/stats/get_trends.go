// Package stats contains the ledger analytics use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DefaultTrendMonths is the trailing window used when none is given.
const DefaultTrendMonths = 6

// MaxTrendMonths caps the trailing window a caller may request.
const MaxTrendMonths = 24

// GetTrendsInput represents the input for category trends.
type GetTrendsInput struct {
	UserID     uuid.UUID
	MonthCount int
}

// GetTrendsOutput is the category trend matrix, one row per trailing
// calendar month, oldest first. Category names accompany the matrix so
// consumers need no second lookup.
type GetTrendsOutput struct {
	Months        []MonthlyCategoryTotals
	CategoryNames map[uuid.UUID]string
}

// GetTrendsUseCase computes the per-month category trend matrix.
type GetTrendsUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
	now          func() time.Time
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatsCache,
) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

// Execute computes the trend matrix, serving from cache when possible.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	monthCount := input.MonthCount
	if monthCount <= 0 {
		monthCount = DefaultTrendMonths
	}
	if monthCount > MaxTrendMonths {
		monthCount = MaxTrendMonths
	}

	key := fmt.Sprintf("stats:%s:trends:%d", input.UserID, monthCount)
	var cached GetTrendsOutput
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

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := &GetTrendsOutput{
		Months:        CategoryTrends(entries, monthCount, uc.now().UTC()),
		CategoryNames: names,
	}

	cacheSet(ctx, uc.statsCache, key, out)
	return out, nil
}
