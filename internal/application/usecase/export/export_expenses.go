// Package export contains the ledger export use case.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// csvHeader is the column layout of the exported file.
var csvHeader = []string{"date", "description", "category", "amount", "currency", "recurring", "notes"}

// ExportExpensesInput represents the input for a ledger export. The
// optional filters mirror expense listing.
type ExportExpensesInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Currency   *entity.Currency
}

// ExportExpensesOutput carries the rendered CSV document.
type ExportExpensesOutput struct {
	FileName string
	Content  []byte
}

// ExportExpensesUseCase renders a user's ledger as CSV. It reads the
// ledger and category repositories directly and never mutates state.
type ExportExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	now          func() time.Time
}

// NewExportExpensesUseCase creates a new ExportExpensesUseCase instance.
func NewExportExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *ExportExpensesUseCase {
	return &ExportExpensesUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Execute renders the filtered ledger as a CSV document.
func (uc *ExportExpensesUseCase) Execute(ctx context.Context, input ExportExpensesInput) (*ExportExpensesOutput, error) {
	entries, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:     input.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		Currency:   input.Currency,
	})
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

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		recurring := "no"
		if e.IsRecurring {
			recurring = "yes"
		}
		record := []string{
			e.Date.Format("2006-01-02"),
			e.Description,
			names[e.CategoryID],
			e.Amount.String(),
			string(e.Currency),
			recurring,
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}

	return &ExportExpensesOutput{
		FileName: fmt.Sprintf("expenses-%s.csv", uc.now().UTC().Format("2006-01-02")),
		Content:  buf.Bytes(),
	}, nil
}
