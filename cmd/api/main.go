// Package main is the entry point for the Expense Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/export"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
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

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var database *db.Database
	var dbHealthChecker func() bool

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		database = nil
		dbHealthChecker = func() bool { return false }
	} else {
		// Run database migrations
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
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize Redis-backed stats cache. Analytics fall back to the
	// database when the cache is unavailable.
	var statsCache adapter.StatsCache
	var cacheHealthChecker func() bool
	if opts, err := redis.ParseURL(cfg.Redis.URL); err != nil {
		slog.Warn("Invalid Redis URL, running without stats cache", "error", err)
	} else {
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		redisClient := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis connection failed, running without stats cache", "error", err)
		} else {
			statsCache = cache.NewStatsCache(redisClient)
			cacheHealthChecker = func() bool {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return redisClient.Ping(ctx).Err() == nil
			}
			slog.Info("Redis stats cache initialized")
		}
		cancel()
	}

	// Create health controller with dependency checkers
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	// Create controllers and middleware (only if database is available)
	var authController *controller.AuthController
	var categoryController *controller.CategoryController
	var expenseController *controller.ExpenseController
	var recurringController *controller.RecurringController
	var statsController *controller.StatsController
	var exportController *controller.ExportController
	var loginRateLimiter *middleware.RateLimiter
	var authMiddleware *middleware.AuthMiddleware

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if database != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(database.DB())
		categoryRepo := persistence.NewCategoryRepository(database.DB())
		expenseRepo := persistence.NewExpenseRepository(database.DB())
		recurringRepo := persistence.NewRecurringRepository(database.DB())
		emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

		// Create category use cases
		createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
		listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
		updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
		deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, statsCache)

		// Create expense use cases
		createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, categoryRepo, statsCache)
		listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
		updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo, statsCache)
		deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, statsCache)

		// Create recurring expense use cases
		createRecurringUseCase := recurring.NewCreateRecurringUseCase(recurringRepo, categoryRepo)
		listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
		updateRecurringUseCase := recurring.NewUpdateRecurringUseCase(recurringRepo, categoryRepo)
		deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo)
		toggleActiveUseCase := recurring.NewToggleActiveUseCase(recurringRepo)
		processPaymentUseCase := recurring.NewProcessPaymentUseCase(recurringRepo, statsCache)

		// Create analytics and export use cases
		summaryUseCase := stats.NewGetSummaryUseCase(expenseRepo, categoryRepo, statsCache)
		categoryStatsUseCase := stats.NewGetCategoryStatsUseCase(expenseRepo, categoryRepo, statsCache)
		trendsUseCase := stats.NewGetTrendsUseCase(expenseRepo, categoryRepo, statsCache)
		exportUseCase := export.NewExportExpensesUseCase(expenseRepo, categoryRepo)

		// Create controllers
		authController = controller.NewAuthController(registerUseCase, loginUseCase)
		categoryController = controller.NewCategoryController(
			createCategoryUseCase,
			listCategoriesUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		)
		expenseController = controller.NewExpenseController(
			createExpenseUseCase,
			listExpensesUseCase,
			updateExpenseUseCase,
			deleteExpenseUseCase,
		)
		recurringController = controller.NewRecurringController(
			createRecurringUseCase,
			listRecurringUseCase,
			updateRecurringUseCase,
			deleteRecurringUseCase,
			toggleActiveUseCase,
			processPaymentUseCase,
		)
		statsController = controller.NewStatsController(summaryUseCase, categoryStatsUseCase, trendsUseCase)
		exportController = controller.NewExportController(exportUseCase)

		// Create middleware
		loginRateLimiter = middleware.NewRateLimiter()
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		slog.Info("API systems initialized successfully")

		// Start the email delivery worker alongside the API when enabled
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
			go worker.Start(workerCtx)
		} else {
			slog.Warn("Email worker disabled")
		}
	} else {
		slog.Warn("API systems not initialized due to missing database connection")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		expenseController,
		recurringController,
		statsController,
		exportController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
