// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// BudgetSuggestionModel represents the budget_suggestions table in the database.
type BudgetSuggestionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month         string          `gorm:"type:varchar(7);not null"`
	Categories    pq.StringArray  `gorm:"type:text[]"`
	ProposedTotal decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AcceptedTotal decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Applied       bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the BudgetSuggestionModel.
func (BudgetSuggestionModel) TableName() string {
	return "budget_suggestions"
}

// ToEntity converts a BudgetSuggestionModel to a domain BudgetSuggestion entity.
func (m *BudgetSuggestionModel) ToEntity() *entity.BudgetSuggestion {
	return &entity.BudgetSuggestion{
		ID:            m.ID,
		UserID:        m.UserID,
		Month:         m.Month,
		Categories:    m.Categories,
		ProposedTotal: m.ProposedTotal,
		AcceptedTotal: m.AcceptedTotal,
		Applied:       m.Applied,
		CreatedAt:     m.CreatedAt,
	}
}

// BudgetSuggestionFromEntity creates a BudgetSuggestionModel from a domain entity.
func BudgetSuggestionFromEntity(suggestion *entity.BudgetSuggestion) *BudgetSuggestionModel {
	return &BudgetSuggestionModel{
		ID:            suggestion.ID,
		UserID:        suggestion.UserID,
		Month:         suggestion.Month,
		Categories:    suggestion.Categories,
		ProposedTotal: suggestion.ProposedTotal,
		AcceptedTotal: suggestion.AcceptedTotal,
		Applied:       suggestion.Applied,
		CreatedAt:     suggestion.CreatedAt,
	}
}
