// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/usecase/categorybudget"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
)

// CategoryBudgetController handles standing category budget endpoints.
type CategoryBudgetController struct {
	upsertUseCase *categorybudget.UpsertCategoryBudgetUseCase
	listUseCase   *categorybudget.ListCategoryBudgetsUseCase
	deleteUseCase *categorybudget.DeleteCategoryBudgetUseCase
}

// NewCategoryBudgetController creates a new category budget controller instance.
func NewCategoryBudgetController(
	upsertUseCase *categorybudget.UpsertCategoryBudgetUseCase,
	listUseCase *categorybudget.ListCategoryBudgetsUseCase,
	deleteUseCase *categorybudget.DeleteCategoryBudgetUseCase,
) *CategoryBudgetController {
	return &CategoryBudgetController{
		upsertUseCase: upsertUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Upsert handles PUT /category-budgets/:categoryID requests.
func (c *CategoryBudgetController) Upsert(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("categoryID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeBudgetCategoryNotFound),
		})
		return
	}

	var req dto.UpsertCategoryBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidBudgetAmount),
		})
		return
	}

	input := categorybudget.UpsertCategoryBudgetInput{
		UserID:         userID,
		CategoryID:     categoryID,
		BudgetAmount:   decimal.NewFromFloat(req.BudgetAmount),
		Period:         entity.BudgetPeriod(req.Period),
		AlertThreshold: req.AlertThreshold,
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBudgetResponse(output.Budget, output.Category))
}

// List handles GET /category-budgets requests.
func (c *CategoryBudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), categorybudget.ListCategoryBudgetsInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve category budgets",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBudgetListResponse(output.Items))
}

// Delete handles DELETE /category-budgets/:categoryID requests.
func (c *CategoryBudgetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("categoryID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeBudgetCategoryNotFound),
		})
		return
	}

	input := categorybudget.DeleteCategoryBudgetInput{
		UserID:     userID,
		CategoryID: categoryID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleCategoryBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Category budget removed successfully",
	})
}

// handleCategoryBudgetError maps category budget errors to HTTP responses.
func (c *CategoryBudgetController) handleCategoryBudgetError(ctx *gin.Context, err error) {
	var cbErr *domainerror.CategoryBudgetError
	if errors.As(err, &cbErr) {
		ctx.JSON(c.getStatusCodeForCategoryBudgetError(cbErr.Code), dto.ErrorResponse{
			Error: cbErr.Message,
			Code:  string(cbErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryBudgetError maps error codes to HTTP status codes.
func (c *CategoryBudgetController) getStatusCodeForCategoryBudgetError(code domainerror.CategoryBudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryBudgetNotFound,
		domainerror.ErrCodeBudgetCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNotOwnedByUser:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidAlertThreshold,
		domainerror.ErrCodeInvalidBudgetPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
