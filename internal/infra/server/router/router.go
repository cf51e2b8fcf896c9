// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	categoryController  *controller.CategoryController
	expenseController   *controller.ExpenseController
	recurringController *controller.RecurringController
	statsController     *controller.StatsController
	exportController    *controller.ExportController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	expenseController *controller.ExpenseController,
	recurringController *controller.RecurringController,
	statsController *controller.StatsController,
	exportController *controller.ExportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		categoryController:  categoryController,
		expenseController:   expenseController,
		recurringController: recurringController,
		statsController:     statsController,
		exportController:    exportController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Expense routes (require authentication)
		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)
				expenses.PATCH("/:id", r.expenseController.Update)
				expenses.DELETE("/:id", r.expenseController.Delete)

				if r.exportController != nil {
					expenses.GET("/export", r.exportController.Export)
				}
			}
		}

		// Recurring expense routes (require authentication)
		if r.recurringController != nil && r.authMiddleware != nil {
			recurring := v1.Group("/recurring-expenses")
			recurring.Use(r.authMiddleware.Authenticate())
			{
				recurring.GET("", r.recurringController.List)
				recurring.POST("", r.recurringController.Create)
				recurring.PATCH("/:id", r.recurringController.Update)
				recurring.DELETE("/:id", r.recurringController.Delete)
				recurring.POST("/:id/toggle", r.recurringController.ToggleActive)
				recurring.POST("/:id/process", r.recurringController.ProcessPayment)
			}
		}

		// Analytics routes (require authentication)
		if r.statsController != nil && r.authMiddleware != nil {
			stats := v1.Group("/stats")
			stats.Use(r.authMiddleware.Authenticate())
			{
				stats.GET("/summary", r.statsController.Summary)
				stats.GET("/categories", r.statsController.Categories)
				stats.GET("/trends", r.statsController.Trends)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
