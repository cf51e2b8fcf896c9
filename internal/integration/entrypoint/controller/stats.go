// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// StatsController handles analytics endpoints.
type StatsController struct {
	summaryUseCase       *stats.GetSummaryUseCase
	categoryStatsUseCase *stats.GetCategoryStatsUseCase
	trendsUseCase        *stats.GetTrendsUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(
	summaryUseCase *stats.GetSummaryUseCase,
	categoryStatsUseCase *stats.GetCategoryStatsUseCase,
	trendsUseCase *stats.GetTrendsUseCase,
) *StatsController {
	return &StatsController{
		summaryUseCase:       summaryUseCase,
		categoryStatsUseCase: categoryStatsUseCase,
		trendsUseCase:        trendsUseCase,
	}
}

// Summary handles GET /stats/summary requests. The currency query
// parameter selects which ledger slice the totals are computed over and
// defaults to ARS.
func (c *StatsController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	currency := entity.CurrencyARS
	if currencyStr := ctx.Query("currency"); currencyStr != "" {
		currency = entity.Currency(currencyStr)
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), stats.GetSummaryInput{
		UserID:   userID,
		Currency: currency,
	})
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Categories handles GET /stats/categories requests.
func (c *StatsController) Categories(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.categoryStatsUseCase.Execute(ctx.Request.Context(), stats.GetCategoryStatsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryStatsResponse(output))
}

// Trends handles GET /stats/trends requests.
func (c *StatsController) Trends(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := stats.GetTrendsInput{
		UserID: userID,
	}
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		if months, err := strconv.Atoi(monthsStr); err == nil {
			input.MonthCount = months
		}
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// handleStatsError handles analytics errors and returns appropriate HTTP responses.
func (c *StatsController) handleStatsError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		statusCode := http.StatusBadRequest
		if expErr.Code == domainerror.ErrCodeExpenseNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
