// Package error defines domain-specific errors for the Budget Planner application.
package error

import "errors"

// Budget plan domain errors.
var (
	// ErrInvalidMonthKey is returned when a month key does not match YYYY-MM.
	ErrInvalidMonthKey = errors.New("invalid month key")

	// ErrNegativeIncome is returned when the provided income is negative.
	ErrNegativeIncome = errors.New("income must not be negative")

	// ErrInvalidSavingsPct is returned when the target savings percentage is out of range.
	ErrInvalidSavingsPct = errors.New("target savings percentage must be between 0 and 90")

	// ErrInvalidBudgetMethod is returned when the allocation method is unknown.
	ErrInvalidBudgetMethod = errors.New("invalid budget method")

	// ErrNoExpenseCategories is returned when a plan cannot be generated because
	// the user has no expense categories.
	ErrNoExpenseCategories = errors.New("no expense categories to allocate")

	// ErrInvalidAllocation is returned when a submitted allocation entry is malformed.
	ErrInvalidAllocation = errors.New("invalid allocation entry")
)

// BudgetErrorCode defines error codes for budget plan errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthKey     BudgetErrorCode = "BGT-010001"
	ErrCodeNegativeIncome      BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidSavingsPct   BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidBudgetMethod BudgetErrorCode = "BGT-010004"
	ErrCodeNoExpenseCategories BudgetErrorCode = "BGT-010005"
	ErrCodeInvalidAllocation   BudgetErrorCode = "BGT-010006"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BGT-010007"
)

// BudgetError represents a budget plan error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
