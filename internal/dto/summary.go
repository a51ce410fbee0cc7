package dto

import (
	"encoding/json"

	"kaasu/internal/models"
)

// SummaryRowResponse is one category's total
type SummaryRowResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

// TotalsResponse is the overall spending in a date window
type TotalsResponse struct {
	Total json.Number `json:"total"`
	Count int64       `json:"count"`
}

// NewSummaryResponse maps category totals, never returning nil
func NewSummaryResponse(totals []models.CategoryTotal) []SummaryRowResponse {
	out := make([]SummaryRowResponse, 0, len(totals))
	for _, row := range totals {
		out = append(out, SummaryRowResponse{
			Category: row.Category,
			Total:    FormatAmount(row.Total),
		})
	}
	return out
}

// NewTotalsResponse maps spending totals
func NewTotalsResponse(totals models.SpendingTotals) TotalsResponse {
	return TotalsResponse{
		Total: FormatAmount(totals.Total),
		Count: totals.Count,
	}
}
