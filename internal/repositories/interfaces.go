package repositories

import (
	"context"

	"kaasu/internal/models"
)

// CategoryRepositoryInterface defines the contract for category persistence
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TagRepositoryInterface defines the contract for tag persistence
type TagRepositoryInterface interface {
	Create(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ExpenseRepositoryInterface defines the contract for expense persistence.
// Returned expenses always carry their Category and Tags.
type ExpenseRepositoryInterface interface {
	Create(ctx context.Context, expense *models.Expense, tagIDs []int64) (*models.Expense, error)
	List(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error)
	GetByID(ctx context.Context, id int64) (*models.Expense, error)
	Update(ctx context.Context, id int64, update models.ExpenseUpdate) (*models.Expense, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SummaryRepositoryInterface defines the aggregate spending queries
type SummaryRepositoryInterface interface {
	CategoryTotals(ctx context.Context, filters models.SummaryFilters) ([]models.CategoryTotal, error)
	Totals(ctx context.Context, filters models.SummaryFilters) (*models.SpendingTotals, error)
}
