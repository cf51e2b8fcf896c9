// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/export"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ExportController handles ledger export endpoints.
type ExportController struct {
	exportUseCase *export.ExportExpensesUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(exportUseCase *export.ExportExpensesUseCase) *ExportController {
	return &ExportController{
		exportUseCase: exportUseCase,
	}
}

// Export handles GET /expenses/export requests. It streams the user's
// ledger as a CSV attachment, honoring the same filters as listing.
func (c *ExportController) Export(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := export.ExportExpensesInput{
		UserID: userID,
	}

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			input.EndDate = &endDate
		}
	}
	if categoryIDStr := ctx.Query("categoryId"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			input.CategoryID = &categoryID
		}
	}
	if currencyStr := ctx.Query("currency"); currencyStr != "" {
		currency := entity.Currency(currencyStr)
		input.Currency = &currency
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to export expenses",
		})
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.FileName)
	ctx.Data(http.StatusOK, "text/csv", output.Content)
}
