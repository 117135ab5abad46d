// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// AlertSeverity represents how serious an alert is.
type AlertSeverity string

const (
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityError   AlertSeverity = "error"
)

// AlertType identifies what triggered an alert.
type AlertType string

const (
	// AlertTypeCategoryBudgetExceeded fires when current-month spend has
	// reached or passed a standing category budget.
	AlertTypeCategoryBudgetExceeded AlertType = "category_budget_exceeded"
	// AlertTypeCategoryBudgetThreshold fires when current-month spend has
	// crossed the configured warning threshold of a category budget.
	AlertTypeCategoryBudgetThreshold AlertType = "category_budget_threshold"
	// AlertTypeBudgetOver fires when month-to-date spend exceeds a plan
	// allocation by more than the overage tolerance.
	AlertTypeBudgetOver AlertType = "budget_over"
)

// Alert is one reconciliation finding. Alerts are computed on demand and
// never persisted.
type Alert struct {
	Type     AlertType
	Severity AlertSeverity
	Category string
	Month    string
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
	Message  string
}
