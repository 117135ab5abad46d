// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/usecase/budget"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/domain/valueobject"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget plan endpoints.
type BudgetController struct {
	generateUseCase  *budget.GeneratePlanUseCase
	saveUseCase      *budget.SavePlanUseCase
	currentUseCase   *budget.GetCurrentPlanUseCase
	historyUseCase   *budget.PlanHistoryUseCase
	recommendUseCase *budget.RecommendChangesUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	generateUseCase *budget.GeneratePlanUseCase,
	saveUseCase *budget.SavePlanUseCase,
	currentUseCase *budget.GetCurrentPlanUseCase,
	historyUseCase *budget.PlanHistoryUseCase,
	recommendUseCase *budget.RecommendChangesUseCase,
) *BudgetController {
	return &BudgetController{
		generateUseCase:  generateUseCase,
		saveUseCase:      saveUseCase,
		currentUseCase:   currentUseCase,
		historyUseCase:   historyUseCase,
		recommendUseCase: recommendUseCase,
	}
}

// Generate handles POST /budget/generate requests.
func (c *BudgetController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	input := budget.GeneratePlanInput{
		UserID:           userID,
		Month:            req.Month,
		Income:           decimal.NewFromFloat(req.Income),
		TargetSavingsPct: req.TargetSavingsPct,
		Method:           entity.BudgetMethod(req.Method),
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GeneratePlanResponse{
		Plan: dto.ToPlanResponse(output.Plan),
		MTD:  dto.ToMTDResponse(output.MTD),
	})
}

// Save handles POST /budget/save requests.
func (c *BudgetController) Save(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SavePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	input := budget.SavePlanInput{
		UserID:           userID,
		Month:            req.Month,
		Method:           entity.BudgetMethod(req.Method),
		Income:           decimal.NewFromFloat(req.Income),
		TargetSavingsPct: req.TargetSavingsPct,
		Allocations:      dto.ToAllocations(req.Allocations),
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SavePlanResponse{
		Plan: dto.ToPlanResponse(output.Plan),
	})
}

// Current handles GET /budget/current requests. The month query parameter
// defaults to the current calendar month.
func (c *BudgetController) Current(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month := ctx.Query("month")
	if month == "" {
		month = valueobject.MonthOf(time.Now()).String()
	}

	output, err := c.currentUseCase.Execute(ctx.Request.Context(), budget.GetCurrentPlanInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	response := dto.CurrentPlanResponse{
		MTD: dto.ToMTDResponse(output.MTD),
	}
	if output.Plan != nil {
		plan := dto.ToPlanResponse(output.Plan)
		response.Plan = &plan
	}

	ctx.JSON(http.StatusOK, response)
}

// History handles GET /budget/history requests.
func (c *BudgetController) History(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), budget.PlanHistoryInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve plan history",
		})
		return
	}

	items := make([]dto.PlanResponse, len(output.Items))
	for i := range output.Items {
		items[i] = dto.ToPlanResponse(&output.Items[i])
	}

	ctx.JSON(http.StatusOK, dto.PlanHistoryResponse{Items: items})
}

// Recommend handles POST /budget/recommend requests.
func (c *BudgetController) Recommend(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.RecommendChangesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	input := budget.RecommendChangesInput{
		UserID:           userID,
		Month:            req.Month,
		Income:           decimal.NewFromFloat(req.Income),
		TargetSavingsPct: req.TargetSavingsPct,
		Allocations:      dto.ToAllocations(req.Allocations),
	}

	output, err := c.recommendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecommendChangesResponse{
		Changes: dto.ToPlanChangeResponses(output.Changes),
	})
}

// handleBudgetError maps budget errors to HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		// All budget error codes are validation failures.
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
