package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeExpenseRepo is an in-memory ExpenseRepository for unit tests.
type fakeExpenseRepo struct {
	items map[uuid.UUID]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{items: make(map[uuid.UUID]*entity.Expense)}
}

func (f *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExpenseRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range f.items {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) FindByFilter(_ context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range f.items {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		if filter.CategoryID != nil && e.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Currency != nil && e.Currency != *filter.Currency {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	if _, ok := f.items[e.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for unit tests.
type fakeCategoryRepo struct {
	items map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.items {
		if c.UserID == userID || c.IsPreset {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range f.items {
		if c.Name == name && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCategoryRepo) CountExpenses(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeStatsCache records invalidations for assertions.
type fakeStatsCache struct {
	invalidated []uuid.UUID
}

func (f *fakeStatsCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (f *fakeStatsCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (f *fakeStatsCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}
