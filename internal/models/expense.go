package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fraction digits stored for an amount.
const AmountScale = 2

var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrAmountTooLarge  = errors.New("amount exceeds decimal(12,2)")
	ErrCategoryMissing = errors.New("category ID is required")
)

// maxAmount is the largest value a decimal(12,2) column holds.
var maxAmount = decimal.New(1, 10).Sub(decimal.New(1, -AmountScale))

// Expense is a dated monetary record with one category and a set of tags.
type Expense struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	Date        Date            `gorm:"not null;index" json:"date"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`

	// Associations
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Tags     []Tag    `gorm:"many2many:expense_tags" json:"tags"`
}

// TableName returns the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// TagNames returns the names of the expense's tags in their loaded order.
func (e *Expense) TagNames() []string {
	names := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// NewExpense carries the caller-supplied fields for creating an expense.
// A nil Date means "today".
type NewExpense struct {
	Amount      decimal.Decimal
	CategoryID  int64
	TagIDs      []int64
	Description string
	Date        *Date
}

// ExpenseUpdate is a partial update. Only fields that are Set are written;
// a Set TagIDs replaces the whole tag set, even when empty.
type ExpenseUpdate struct {
	Amount      Optional[decimal.Decimal]
	Description Optional[string]
	Date        Optional[Date]
	CategoryID  Optional[int64]
	TagIDs      Optional[[]int64]
}

// IsEmpty reports whether the update would change nothing.
func (u ExpenseUpdate) IsEmpty() bool {
	return !u.Amount.Set && !u.Description.Set && !u.Date.Set && !u.CategoryID.Set && !u.TagIDs.Set
}

// NormalizeAmount rounds an amount to the stored scale and checks its range.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(AmountScale)
	if !rounded.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if rounded.GreaterThan(maxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return rounded, nil
}

// UniqueIDs returns ids with duplicates and non-positive values removed,
// preserving first occurrence order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
