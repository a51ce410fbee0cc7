package services

import (
	"context"
	"io"
	"time"

	"kaasu/internal/models"
)

// CategoryServiceInterface manages spending categories
type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

// TagServiceInterface manages expense tags
type TagServiceInterface interface {
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)
}

// ExpenseServiceInterface manages expenses
type ExpenseServiceInterface interface {
	// CreateExpense stores a new expense, defaulting the date to today
	CreateExpense(ctx context.Context, input models.NewExpense) (*models.Expense, error)
	ListExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	// UpdateExpense applies a partial update
	UpdateExpense(ctx context.Context, id int64, update models.ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}

// SummaryServiceInterface provides aggregate spending figures
type SummaryServiceInterface interface {
	CategoryTotals(ctx context.Context, filters models.SummaryFilters) ([]models.CategoryTotal, error)
	Totals(ctx context.Context, filters models.SummaryFilters) (*models.SpendingTotals, error)
}

// ExportServiceInterface writes filtered expenses as a downloadable file
type ExportServiceInterface interface {
	// Export writes the expenses matching filters to w and returns the row count
	Export(ctx context.Context, filters models.ExpenseFilters, format models.ExportFormat, w io.Writer) (int, error)
}

// ActivityLoggerInterface records structured events for data changes
type ActivityLoggerInterface interface {
	LogCreated(ctx context.Context, entity string, id int64)
	LogUpdated(ctx context.Context, entity string, id int64, fields []string)
	LogDeleted(ctx context.Context, entity string, id int64, deleted bool)
	LogTagsDropped(ctx context.Context, expenseID int64, requested, attached int)
	LogFailed(ctx context.Context, entity, operation string, err error)
}

// MetricsRecorderInterface defines the interface for recording metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
