// Package category contains category use cases.
package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryOutput represents category data returned by use cases.
type CategoryOutput struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	IsPreset  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toCategoryOutput(c *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		IsPreset:  c.IsPreset,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
