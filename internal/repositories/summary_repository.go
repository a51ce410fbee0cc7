package repositories

import (
	"context"
	"fmt"

	"kaasu/internal/models"

	"gorm.io/gorm"
)

// summaryRepository implements SummaryRepositoryInterface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) SummaryRepositoryInterface {
	return &summaryRepository{
		db: db,
	}
}

// CategoryTotals sums expense amounts per category within the date window.
// Categories without matching expenses are omitted. Rows are ordered by
// total descending, ties broken by name.
func (r *summaryRepository) CategoryTotals(ctx context.Context, filters models.SummaryFilters) ([]models.CategoryTotal, error) {
	var rows []models.CategoryTotal

	query := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.name AS category, SUM(expenses.amount) AS total").
		Joins("JOIN expenses ON expenses.category_id = categories.id")
	query = applyDateWindow(query, filters)

	err := query.
		Group("categories.id, categories.name").
		Order("SUM(expenses.amount) DESC").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}

	totals := make([]models.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		row.Total = row.Total.Round(models.AmountScale)
		totals = append(totals, row)
	}
	return totals, nil
}

// Totals returns the overall sum and count of expenses in the date window
func (r *summaryRepository) Totals(ctx context.Context, filters models.SummaryFilters) (*models.SpendingTotals, error) {
	var totals models.SpendingTotals

	query := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(expenses.amount), 0) AS total, COUNT(*) AS count")
	query = applyDateWindow(query, filters)

	if err := query.Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}

	totals.Total = totals.Total.Round(models.AmountScale)
	return &totals, nil
}

func applyDateWindow(query *gorm.DB, filters models.SummaryFilters) *gorm.DB {
	if filters.DateFrom != nil {
		query = query.Where("expenses.date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("expenses.date <= ?", *filters.DateTo)
	}
	return query
}
