// Package stats contains the ledger analytics use cases.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// GetCategoryStatsInput represents the input for per-category stats.
type GetCategoryStatsInput struct {
	UserID uuid.UUID
}

// GetCategoryStatsOutput represents the per-category dashboard rows.
type GetCategoryStatsOutput struct {
	Categories []CategoryStatsRow
}

// GetCategoryStatsUseCase computes per-category totals, averages and
// trend classifications.
type GetCategoryStatsUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
	now          func() time.Time
}

// NewGetCategoryStatsUseCase creates a new GetCategoryStatsUseCase instance.
func NewGetCategoryStatsUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	statsCache adapter.StatsCache,
) *GetCategoryStatsUseCase {
	return &GetCategoryStatsUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

// Execute computes the category stats, serving from cache when possible.
func (uc *GetCategoryStatsUseCase) Execute(ctx context.Context, input GetCategoryStatsInput) (*GetCategoryStatsOutput, error) {
	key := fmt.Sprintf("stats:%s:categories", input.UserID)
	var cached GetCategoryStatsOutput
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

	out := &GetCategoryStatsOutput{
		Categories: CategoryStats(entries, categories, uc.now().UTC()),
	}

	cacheSet(ctx, uc.statsCache, key, out)
	return out, nil
}
