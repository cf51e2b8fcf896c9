// Package main is the entry point for the recurring expense scheduler.
// It runs the due-payment sweeper and the email delivery worker as a
// standalone process, separate from the API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/internal/integration/scheduler"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting recurring expense scheduler",
		"environment", cfg.Server.Environment,
		"sweep_interval", cfg.Scheduler.SweepInterval.String(),
	)

	// The scheduler cannot run without a database
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.RecurringExpenseModel{},
		&model.EmailJobModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// Stats cache so processed payments invalidate cached analytics
	var statsCache adapter.StatsCache
	if opts, err := redis.ParseURL(cfg.Redis.URL); err != nil {
		slog.Warn("Invalid Redis URL, running without stats cache", "error", err)
	} else {
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		statsCache = cache.NewStatsCache(redis.NewClient(opts))
	}

	// Create repositories and services
	userRepo := persistence.NewUserRepository(database.DB())
	recurringRepo := persistence.NewRecurringRepository(database.DB())
	emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

	processPaymentUseCase := recurring.NewProcessPaymentUseCase(recurringRepo, statsCache)
	emailService := email.NewService(emailQueueRepo)

	sweeper := scheduler.NewSweeper(
		recurringRepo,
		userRepo,
		processPaymentUseCase,
		emailService,
		scheduler.SweeperConfig{
			SweepInterval:    cfg.Scheduler.SweepInterval,
			BatchSize:        cfg.Scheduler.BatchSize,
			ReminderLeadTime: cfg.Scheduler.ReminderLeadTime,
			MaxConcurrency:   cfg.Scheduler.MaxConcurrency,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Email delivery worker drains the reminder queue
	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to load email templates", "error", err)
			os.Exit(1)
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
		go worker.Start(ctx)
	} else {
		slog.Warn("Email worker disabled, reminders will stay queued")
	}

	sweeper.Start(ctx)

	slog.Info("Scheduler exited properly")
}
