// Package scheduler drives recurring expense processing in the background.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/email"
)

// Sweeper periodically materializes due recurring expenses and queues
// payment reminder emails for upcoming ones. Each template is processed
// independently; a failure on one never blocks the rest of the sweep.
type Sweeper struct {
	recurringRepo  adapter.RecurringRepository
	userRepo       adapter.UserRepository
	processPayment *recurring.ProcessPaymentUseCase
	emailService   *email.Service

	sweepInterval    time.Duration
	batchSize        int
	reminderLeadTime time.Duration
	maxConcurrency   int

	now func() time.Time
}

// SweeperConfig holds configuration for the sweeper.
type SweeperConfig struct {
	SweepInterval    time.Duration
	BatchSize        int
	ReminderLeadTime time.Duration
	MaxConcurrency   int
}

// DefaultSweeperConfig returns the default sweeper configuration.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		SweepInterval:    time.Hour,
		BatchSize:        100,
		ReminderLeadTime: 3 * 24 * time.Hour,
		MaxConcurrency:   8,
	}
}

// NewSweeper creates a new sweeper.
func NewSweeper(
	recurringRepo adapter.RecurringRepository,
	userRepo adapter.UserRepository,
	processPayment *recurring.ProcessPaymentUseCase,
	emailService *email.Service,
	config SweeperConfig,
) *Sweeper {
	maxConcurrency := config.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Sweeper{
		recurringRepo:    recurringRepo,
		userRepo:         userRepo,
		processPayment:   processPayment,
		emailService:     emailService,
		sweepInterval:    config.SweepInterval,
		batchSize:        config.BatchSize,
		reminderLeadTime: config.ReminderLeadTime,
		maxConcurrency:   maxConcurrency,
		now:              time.Now,
	}
}

// Start begins the sweep loop. It blocks until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	slog.Info("Recurring expense sweeper started",
		"sweep_interval", s.sweepInterval,
		"batch_size", s.batchSize,
		"reminder_lead_time", s.reminderLeadTime,
	)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	// Sweep immediately on start, then on ticker
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring expense sweeper shutting down")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass: due payments first, then upcoming reminders.
func (s *Sweeper) Sweep(ctx context.Context) {
	s.processDue(ctx)
	s.queueReminders(ctx)
}

// processDue materializes every due recurring expense. Templates are
// independent of each other, so they are processed by a bounded set of
// goroutines. A processed template advances past now, so one pass per
// sweep catches up even templates that missed several occurrences.
func (s *Sweeper) processDue(ctx context.Context) {
	now := s.now().UTC()

	due, err := s.recurringRepo.FindDue(ctx, now, s.batchSize)
	if err != nil {
		slog.Error("Failed to find due recurring expenses", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	slog.Debug("Processing due recurring expenses", "count", len(due))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxConcurrency)

	for _, rec := range due {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		rec := rec
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.processOne(ctx, rec)
		}()
	}
	wg.Wait()
}

// processOne materializes a single due template. Failures are logged
// and left for the next sweep; the template stays due.
func (s *Sweeper) processOne(ctx context.Context, rec *entity.RecurringExpense) {
	output, err := s.processPayment.Execute(ctx, recurring.ProcessPaymentInput{
		RecurringID: rec.ID,
		UserID:      rec.UserID,
	})
	if err != nil {
		slog.Error("Failed to process recurring payment",
			"recurring_id", rec.ID,
			"user_id", rec.UserID,
			"error", err,
		)
		return
	}

	slog.Info("Recurring payment processed",
		"recurring_id", rec.ID,
		"expense_id", output.ExpenseID,
		"next_payment_date", output.Recurring.NextPaymentDate,
	)
}

// queueReminders queues a payment reminder for every recurring expense
// due within the lead time. Queueing is idempotent per occurrence.
func (s *Sweeper) queueReminders(ctx context.Context) {
	now := s.now().UTC()

	upcoming, err := s.recurringRepo.FindDueBetween(ctx, now, now.Add(s.reminderLeadTime))
	if err != nil {
		slog.Error("Failed to find upcoming recurring expenses", "error", err)
		return
	}

	for _, rec := range upcoming {
		select {
		case <-ctx.Done():
			return
		default:
		}

		user, err := s.userRepo.FindByID(ctx, rec.UserID)
		if err != nil {
			slog.Error("Failed to load user for payment reminder",
				"recurring_id", rec.ID,
				"user_id", rec.UserID,
				"error", err,
			)
			continue
		}

		if err := s.emailService.QueuePaymentReminder(ctx, user, rec); err != nil {
			slog.Error("Failed to queue payment reminder",
				"recurring_id", rec.ID,
				"error", err,
			)
		}
	}
}
