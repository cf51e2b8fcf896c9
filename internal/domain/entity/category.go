// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents an expense category. Preset categories are
// provided by the system; the rest are user-created. Name, color and
// icon are mutable; a category cannot be deleted while any expense
// still references it.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	IsPreset  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new user-created Category entity. Defaulting of
// color and icon is applied in the use case layer before calling this
// constructor.
func NewCategory(userID uuid.UUID, name, color, icon string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		IsPreset:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
