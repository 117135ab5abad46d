// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/budget-planner/backend/internal/domain/entity"

// AlertResponse represents one reconciliation alert in API responses.
type AlertResponse struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Month    string `json:"month"`
	Budgeted string `json:"budgeted"`
	Spent    string `json:"spent"`
	Message  string `json:"message"`
}

// AlertListResponse represents the response for listing alerts.
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// ToAlertListResponse converts alerts to their API form.
func ToAlertListResponse(alerts []entity.Alert) AlertListResponse {
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertResponse{
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Category: a.Category,
			Month:    a.Month,
			Budgeted: a.Budgeted.String(),
			Spent:    a.Spent.String(),
			Message:  a.Message,
		}
	}
	return AlertListResponse{
		Alerts: out,
	}
}
