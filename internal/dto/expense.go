package dto

import (
	"encoding/json"
	"time"

	"kaasu/internal/models"

	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest represents the request payload for creating an expense.
// Amount accepts a JSON number or a numeric string. Tag ids that match no tag
// are ignored.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,money"`
	Description string          `json:"description"`
	Date        *models.Date    `json:"date"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	TagIDs      []int64         `json:"tag_ids"`
}

// ToNewExpense converts the request into service input
func (r CreateExpenseRequest) ToNewExpense() models.NewExpense {
	return models.NewExpense{
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		TagIDs:      r.TagIDs,
		Description: r.Description,
		Date:        r.Date,
	}
}

// UpdateExpenseRequest represents a partial update. Keys missing from the
// body, or sent as null, leave the stored value unchanged.
type UpdateExpenseRequest struct {
	Amount      models.Optional[decimal.Decimal] `json:"amount" validate:"omitempty,money"`
	Description models.Optional[string]          `json:"description"`
	Date        models.Optional[models.Date]     `json:"date"`
	CategoryID  models.Optional[int64]           `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      models.Optional[[]int64]         `json:"tag_ids"`
}

// ToExpenseUpdate converts the request into service input
func (r UpdateExpenseRequest) ToExpenseUpdate() models.ExpenseUpdate {
	update := models.ExpenseUpdate{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		CategoryID:  r.CategoryID,
		TagIDs:      r.TagIDs,
	}
	// An explicit [] clears the tag set and must stay non-nil
	if update.TagIDs.Set && update.TagIDs.Value == nil {
		update.TagIDs.Value = []int64{}
	}
	return update
}

// Expense Response DTOs

// ExpenseResponse represents a single expense with its category and tags
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	Amount      json.Number      `json:"amount"`
	Description string           `json:"description"`
	Date        models.Date      `json:"date"`
	Category    CategoryResponse `json:"category"`
	Tags        []TagResponse    `json:"tags"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewExpenseResponse maps an expense model to its response form
func NewExpenseResponse(expense models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Amount:      FormatAmount(expense.Amount),
		Description: expense.Description,
		Date:        expense.Date,
		Category:    NewCategoryResponse(expense.Category),
		Tags:        NewTagListResponse(expense.Tags),
		CreatedAt:   expense.CreatedAt,
	}
}

// NewExpenseListResponse maps expenses, never returning nil
func NewExpenseListResponse(expenses []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		out = append(out, NewExpenseResponse(expense))
	}
	return out
}

// FormatAmount renders a decimal as a JSON number with two fraction digits
func FormatAmount(amount decimal.Decimal) json.Number {
	return json.Number(amount.StringFixed(models.AmountScale))
}
