// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetSuggestion is an audit record of one AI refinement attempt during
// plan generation: which categories the model covered, what it proposed,
// and what was accepted after clamping.
type BudgetSuggestion struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Month         string
	Categories    []string
	ProposedTotal decimal.Decimal
	AcceptedTotal decimal.Decimal
	Applied       bool
	CreatedAt     time.Time
}

// NewBudgetSuggestion creates a new BudgetSuggestion entity.
func NewBudgetSuggestion(
	userID uuid.UUID,
	month string,
	categories []string,
	proposedTotal, acceptedTotal decimal.Decimal,
	applied bool,
) *BudgetSuggestion {
	return &BudgetSuggestion{
		ID:            uuid.New(),
		UserID:        userID,
		Month:         month,
		Categories:    categories,
		ProposedTotal: proposedTotal,
		AcceptedTotal: acceptedTotal,
		Applied:       applied,
		CreatedAt:     time.Now().UTC(),
	}
}
