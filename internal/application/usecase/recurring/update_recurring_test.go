package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/schedule"
)

func TestUpdateRecurring_RescheduleRules(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	newUseCase := func(t *testing.T) (*UpdateRecurringUseCase, *fakeRecurringRepo, uuid.UUID) {
		t.Helper()
		repo := newFakeRecurringRepo()
		rec := newTestRecurring(userID, schedule.FrequencyMonthly, start, nil)
		rec.NextPaymentDate = time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
		if err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
		uc := NewUpdateRecurringUseCase(repo, newFakeCategoryRepo())
		uc.now = func() time.Time { return now }
		return uc, repo, rec.ID
	}

	t.Run("changing frequency recomputes next payment date", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		freq := schedule.FrequencyWeekly

		out, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      userID,
			Frequency:   &freq,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := schedule.NextOccurrence(start, freq, nil, now)
		if !out.Recurring.NextPaymentDate.Equal(want) {
			t.Errorf("expected next payment %v, got %v", want, out.Recurring.NextPaymentDate)
		}
	})

	t.Run("changing day of month recomputes next payment date", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		day := 28

		out, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      userID,
			DayOfMonth:  &day,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := schedule.NextOccurrence(start, schedule.FrequencyMonthly, &day, now)
		if !out.Recurring.NextPaymentDate.Equal(want) {
			t.Errorf("expected next payment %v, got %v", want, out.Recurring.NextPaymentDate)
		}
	})

	t.Run("amount edit leaves next payment date untouched", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		amount := decimal.NewFromInt(1500)

		out, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      userID,
			Amount:      &amount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
		if !out.Recurring.NextPaymentDate.Equal(want) {
			t.Errorf("expected next payment unchanged at %v, got %v", want, out.Recurring.NextPaymentDate)
		}
		if !out.Recurring.Amount.Equal(amount) {
			t.Errorf("expected amount %s, got %s", amount, out.Recurring.Amount)
		}
	})

	t.Run("invalid day of month is rejected", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		day := 32

		if _, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      userID,
			DayOfMonth:  &day,
		}); err == nil {
			t.Fatal("expected validation error for day of month 32")
		}
	})

	t.Run("invalid frequency is rejected", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		freq := schedule.Frequency("fortnightly")

		if _, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      userID,
			Frequency:   &freq,
		}); err == nil {
			t.Fatal("expected validation error for unknown frequency")
		}
	})

	t.Run("other user's recurring expense is rejected", func(t *testing.T) {
		uc, _, id := newUseCase(t)
		desc := "hijack"

		if _, err := uc.Execute(context.Background(), UpdateRecurringInput{
			RecurringID: id,
			UserID:      uuid.New(),
			Description: &desc,
		}); err == nil {
			t.Fatal("expected authorization error")
		}
	})
}
