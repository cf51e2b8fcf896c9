// Package category contains category use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion. A category that is
// still referenced by any ledger entry cannot be deleted; the caller
// must reassign or delete those entries first. Preset categories are
// never deletable.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	statsCache   adapter.StatsCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, statsCache adapter.StatsCache) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		statsCache:   statsCache,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.IsPreset {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodePresetCategoryImmutable,
			"preset categories cannot be deleted",
			domainerror.ErrPresetCategoryImmutable,
		)
	}

	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	count, err := uc.categoryRepo.CountExpenses(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses for category: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is referenced by %d expenses", count),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	if uc.statsCache != nil {
		if err := uc.statsCache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Debug("Failed to invalidate stats cache after category deletion",
				slog.String("user_id", input.UserID.String()),
				slog.String("error", err.Error()))
		}
	}

	return &DeleteCategoryOutput{Success: true}, nil
}
