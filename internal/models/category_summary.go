package models

import "github.com/shopspring/decimal"

// CategoryTotal is the summed spending of one category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SpendingTotals is the overall spending across all categories
type SpendingTotals struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}
