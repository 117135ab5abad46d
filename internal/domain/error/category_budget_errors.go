// Package error defines domain-specific errors for the Budget Planner application.
package error

import "errors"

// Category budget domain errors.
var (
	// ErrCategoryBudgetNotFound is returned when no budget exists for a category.
	ErrCategoryBudgetNotFound = errors.New("category budget not found")

	// ErrInvalidBudgetAmount is returned when the budget amount is invalid (zero or negative).
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidAlertThreshold is returned when the alert threshold is out of range.
	ErrInvalidAlertThreshold = errors.New("alert threshold must be between 0 and 100")

	// ErrInvalidBudgetPeriod is returned when the budget period is invalid.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrBudgetCategoryNotFound is returned when the category for a budget is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")
)

// CategoryBudgetErrorCode defines error codes for category budget errors.
// Format: CBG-XXYYYY where XX is category and YYYY is specific error.
type CategoryBudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryBudgetNotFound CategoryBudgetErrorCode = "CBG-010001"
	ErrCodeInvalidBudgetAmount    CategoryBudgetErrorCode = "CBG-010002"
	ErrCodeInvalidAlertThreshold  CategoryBudgetErrorCode = "CBG-010003"
	ErrCodeInvalidBudgetPeriod    CategoryBudgetErrorCode = "CBG-010004"
	ErrCodeBudgetCategoryNotFound CategoryBudgetErrorCode = "CBG-010005"
	ErrCodeCategoryNotOwnedByUser CategoryBudgetErrorCode = "CBG-010006"
)

// CategoryBudgetError represents a category budget error with code and message.
type CategoryBudgetError struct {
	Code    CategoryBudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryBudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryBudgetError) Unwrap() error {
	return e.Err
}

// NewCategoryBudgetError creates a new CategoryBudgetError with the given code and message.
func NewCategoryBudgetError(code CategoryBudgetErrorCode, message string, err error) *CategoryBudgetError {
	return &CategoryBudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
