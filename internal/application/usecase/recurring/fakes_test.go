package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeRecurringRepo is an in-memory RecurringRepository for unit tests.
type fakeRecurringRepo struct {
	items     map[uuid.UUID]*entity.RecurringExpense
	expenses  []*entity.Expense
	failApply error
}

func newFakeRecurringRepo() *fakeRecurringRepo {
	return &fakeRecurringRepo{items: make(map[uuid.UUID]*entity.RecurringExpense)}
}

func (f *fakeRecurringRepo) Create(_ context.Context, r *entity.RecurringExpense) error {
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeRecurringRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, domainerror.ErrRecurringNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecurringRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	var out []*entity.RecurringExpense
	for _, r := range f.items {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRecurringRepo) FindDue(_ context.Context, now time.Time, limit int) ([]*entity.RecurringExpense, error) {
	var out []*entity.RecurringExpense
	for _, r := range f.items {
		if r.IsActive && !r.NextPaymentDate.After(now) {
			cp := *r
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRecurringRepo) FindDueBetween(_ context.Context, from, to time.Time) ([]*entity.RecurringExpense, error) {
	var out []*entity.RecurringExpense
	for _, r := range f.items {
		if r.IsActive && r.NextPaymentDate.After(from) && !r.NextPaymentDate.After(to) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRecurringRepo) Update(_ context.Context, r *entity.RecurringExpense) error {
	if _, ok := f.items[r.ID]; !ok {
		return domainerror.ErrRecurringNotFound
	}
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeRecurringRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRecurringRepo) ApplyPayment(_ context.Context, r *entity.RecurringExpense, e *entity.Expense) error {
	if f.failApply != nil {
		return f.failApply
	}
	rcp := *r
	ecp := *e
	f.items[r.ID] = &rcp
	f.expenses = append(f.expenses, &ecp)
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
