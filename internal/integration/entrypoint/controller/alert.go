// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/application/usecase/alert"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/domain/valueobject"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
)

// AlertController handles reconciliation alert endpoints.
type AlertController struct {
	listUseCase *alert.ListAlertsUseCase
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(listUseCase *alert.ListAlertsUseCase) *AlertController {
	return &AlertController{listUseCase: listUseCase}
}

// List handles GET /alerts requests. The month query parameter defaults to
// the current calendar month.
func (c *AlertController) List(ctx *gin.Context) {
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

	output, err := c.listUseCase.Execute(ctx.Request.Context(), alert.ListAlertsInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		var budgetErr *domainerror.BudgetError
		if errors.As(err, &budgetErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: budgetErr.Message,
				Code:  string(budgetErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute alerts",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertListResponse(output.Alerts))
}
