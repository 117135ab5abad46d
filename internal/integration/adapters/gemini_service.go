// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/budget-planner/backend/internal/application/adapter"
)

// GeminiBudgetService implements adapter.AIBudgetService using Google Gemini.
type GeminiBudgetService struct {
	apiKey    string
	modelName string
}

// NewGeminiBudgetService creates a new Gemini budget service instance.
func NewGeminiBudgetService(apiKey string) *GeminiBudgetService {
	return &GeminiBudgetService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiBudgetService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestAllocations asks Gemini to refine a baseline per-category allocation
// using the user's recent spending. The caller clamps the result, so amounts
// returned here are treated as proposals only.
func (s *GeminiBudgetService) SuggestAllocations(ctx context.Context, req adapter.BudgetRefinementRequest) ([]adapter.BudgetRefinement, error) {
	textContent, err := s.generate(ctx, s.buildRefinementPrompt(req))
	if err != nil {
		return nil, err
	}

	var raw []geminiRefinement
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	refinements := make([]adapter.BudgetRefinement, 0, len(raw))
	for _, r := range raw {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue // Skip malformed amounts
		}
		refinements = append(refinements, adapter.BudgetRefinement{
			Category: r.Category,
			Amount:   amount,
		})
	}

	return refinements, nil
}

// SuggestRebalancing asks Gemini for rebalancing advice on a stored plan
// given the month's actual spending.
func (s *GeminiBudgetService) SuggestRebalancing(ctx context.Context, req adapter.RebalancingRequest) ([]adapter.RebalancingAdvice, error) {
	textContent, err := s.generate(ctx, s.buildRebalancingPrompt(req))
	if err != nil {
		return nil, err
	}

	var raw []geminiRebalancing
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	advice := make([]adapter.RebalancingAdvice, 0, len(raw))
	for _, r := range raw {
		delta, err := decimal.NewFromString(r.DeltaAmount)
		if err != nil {
			continue
		}
		advice = append(advice, adapter.RebalancingAdvice{
			Category:    r.Category,
			DeltaAmount: delta,
			Reason:      r.Reason,
		})
	}

	return advice, nil
}

// generate runs one prompt against the model and returns the cleaned text.
func (s *GeminiBudgetService) generate(ctx context.Context, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	return textContent, nil
}

// buildRefinementPrompt creates the allocation refinement prompt.
func (s *GeminiBudgetService) buildRefinementPrompt(req adapter.BudgetRefinementRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal budgeting assistant. Your task is to refine a monthly
per-category budget allocation so it better matches the user's actual spending habits.

RULES:
- Only use category names from the BASELINE ALLOCATION list. Never invent categories.
- Amounts must be non-negative whole numbers.
- The sum of your amounts must not exceed the spendable amount.
- Shift money toward categories with consistently high recent spending and away
  from categories with little spending, but keep every category usable.

`)

	sb.WriteString(fmt.Sprintf("MONTH: %s\nCURRENCY: %s\nMONTHLY INCOME: %s\nSPENDABLE AFTER SAVINGS: %s\n\n",
		req.Month, req.Currency, req.Income.StringFixed(0), req.Spendable.StringFixed(0)))

	sb.WriteString("BASELINE ALLOCATION:\n")
	for _, b := range req.Baseline {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", b.Category, b.Amount.StringFixed(0)))
	}

	sb.WriteString("\nRECENT SPENDING:\n")
	if len(req.RecentSpend) > 0 {
		for _, r := range req.RecentSpend {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", r.Category, r.Amount.StringFixed(0)))
		}
	} else {
		sb.WriteString("(no spending recorded yet)\n")
	}

	sb.WriteString(`
Respond with a JSON array. Each element must have:
{
  "category": "name from the baseline list",
  "amount": "whole number as a string"
}

RESPONSE FORMAT: Return only the JSON array, no additional text.
`)

	return sb.String()
}

// buildRebalancingPrompt creates the mid-month rebalancing prompt.
func (s *GeminiBudgetService) buildRebalancingPrompt(req adapter.RebalancingRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal budgeting assistant. A user has a monthly budget plan
and partial actual spending for the month. Suggest per-category adjustments that keep the
overall plan total unchanged.

RULES:
- Only use category names from the PLAN list. Never invent categories.
- delta_amount is the signed change to the category's budget, a whole number.
- Positive deltas must be balanced by negative deltas elsewhere.
- Give at most 5 suggestions and only where the adjustment is meaningful.
- Each reason must be one short sentence.

`)

	sb.WriteString(fmt.Sprintf("MONTH: %s\nCURRENCY: %s\n\nPLAN:\n", req.Month, req.Currency))
	for _, a := range req.Allocations {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", a.Category, a.Amount.StringFixed(0)))
	}

	sb.WriteString("\nACTUAL SPENDING SO FAR:\n")
	if len(req.ActualSpend) > 0 {
		for _, a := range req.ActualSpend {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", a.Category, a.Amount.StringFixed(0)))
		}
	} else {
		sb.WriteString("(no spending recorded yet)\n")
	}

	sb.WriteString(`
Respond with a JSON array. Each element must have:
{
  "category": "name from the plan list",
  "delta_amount": "signed whole number as a string",
  "reason": "one short sentence"
}

RESPONSE FORMAT: Return only the JSON array, no additional text.
`)

	return sb.String()
}

// geminiRefinement represents one raw refinement from Gemini.
type geminiRefinement struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// geminiRebalancing represents one raw rebalancing suggestion from Gemini.
type geminiRebalancing struct {
	Category    string `json:"category"`
	DeltaAmount string `json:"delta_amount"`
	Reason      string `json:"reason"`
}
