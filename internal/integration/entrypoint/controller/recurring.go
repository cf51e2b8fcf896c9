// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/schedule"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring expense endpoints.
type RecurringController struct {
	createUseCase         *recurring.CreateRecurringUseCase
	listUseCase           *recurring.ListRecurringUseCase
	updateUseCase         *recurring.UpdateRecurringUseCase
	deleteUseCase         *recurring.DeleteRecurringUseCase
	toggleActiveUseCase   *recurring.ToggleActiveUseCase
	processPaymentUseCase *recurring.ProcessPaymentUseCase
}

// NewRecurringController creates a new recurring expense controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateRecurringUseCase,
	listUseCase *recurring.ListRecurringUseCase,
	updateUseCase *recurring.UpdateRecurringUseCase,
	deleteUseCase *recurring.DeleteRecurringUseCase,
	toggleActiveUseCase *recurring.ToggleActiveUseCase,
	processPaymentUseCase *recurring.ProcessPaymentUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:         createUseCase,
		listUseCase:           listUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		toggleActiveUseCase:   toggleActiveUseCase,
		processPaymentUseCase: processPaymentUseCase,
	}
}

// Create handles POST /recurring-expenses requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingRecurringFields),
			})
			return
		}
		endDate = &parsed
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	input := recurring.CreateRecurringInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Currency:    entity.Currency(req.Currency),
		CategoryID:  categoryID,
		Frequency:   schedule.Frequency(req.Frequency),
		StartDate:   startDate,
		EndDate:     endDate,
		DayOfMonth:  req.DayOfMonth,
		Notes:       req.Notes,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringResponse(output.Recurring))
}

// List handles GET /recurring-expenses requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve recurring expenses",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringListResponse(output))
}

// Update handles PATCH /recurring-expenses/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID format",
		})
		return
	}

	var req dto.UpdateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	input := recurring.UpdateRecurringInput{
		RecurringID:     recurringID,
		UserID:          userID,
		ClearEndDate:    req.ClearEndDate,
		ClearDayOfMonth: req.ClearDayOfMonth,
		DayOfMonth:      req.DayOfMonth,
		IsActive:        req.IsActive,
		Description:     req.Description,
		Notes:           req.Notes,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Currency != nil {
		currency := entity.Currency(*req.Currency)
		input.Currency = &currency
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Frequency != nil {
		frequency := schedule.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingRecurringFields),
			})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingRecurringFields),
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output.Recurring))
}

// Delete handles DELETE /recurring-expenses/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID format",
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringInput{
		RecurringID: recurringID,
		UserID:      userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ToggleActive handles POST /recurring-expenses/:id/toggle requests.
func (c *RecurringController) ToggleActive(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID format",
		})
		return
	}

	output, err := c.toggleActiveUseCase.Execute(ctx.Request.Context(), recurring.ToggleActiveInput{
		RecurringID: recurringID,
		UserID:      userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output.Recurring))
}

// ProcessPayment handles POST /recurring-expenses/:id/process requests.
func (c *RecurringController) ProcessPayment(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID format",
		})
		return
	}

	output, err := c.processPaymentUseCase.Execute(ctx.Request.Context(), recurring.ProcessPaymentInput{
		RecurringID: recurringID,
		UserID:      userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProcessPaymentResponse{
		Recurring: dto.ToRecurringResponse(output.Recurring),
		ExpenseID: output.ExpenseID.String(),
	})
}

// handleRecurringError handles recurring expense errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecurringError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	// Amount and category validation surface as expense or category errors here
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		statusCode := http.StatusBadRequest
		if expErr.Code == domainerror.ErrCodeExpCategoryNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring expense error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedRecurring:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeInvalidEndDate,
		domainerror.ErrCodeMissingRecurringFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
