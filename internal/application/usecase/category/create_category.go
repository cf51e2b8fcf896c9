// Package category contains category use cases.
package category

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreateCategoryInput represents the input for category creation.
// Color and Icon fall back to the defaults when empty.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Color  string
	Icon   string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *CategoryOutput
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation. Names are unique per user.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := validateCategoryName(input.Name); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, input.Name, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(input.UserID, input.Name, color, icon)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: toCategoryOutput(category)}, nil
}

// validateCategoryName validates the category name.
func validateCategoryName(name string) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if len(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

// validateColor validates the hex color format.
func validateColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a hex value like #RRGGBB",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}
