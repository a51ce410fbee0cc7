package repositories

import (
	"context"
	"errors"
	"fmt"

	"kaasu/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts the expense and links the known tags among tagIDs in one
// transaction. The stored expense is returned with its associations loaded.
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense, tagIDs []int64) (*models.Expense, error) {
	var created *models.Expense

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategoryExists(tx, expense.CategoryID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(expense).Error; err != nil {
			if isForeignKeyError(err) {
				return ErrUnknownCategory
			}
			return fmt.Errorf("failed to create expense: %w", err)
		}

		tags, err := resolveTags(tx, tagIDs)
		if err != nil {
			return err
		}
		if err := replaceTags(tx, expense.ID, tags); err != nil {
			return err
		}

		created, err = loadExpense(tx, expense.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// List returns expenses matching filters, newest date first
func (r *expenseRepository) List(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error) {
	expenses := []models.Expense{}

	query := withAssociations(r.db.WithContext(ctx).Model(&models.Expense{}))
	if filters.CategoryID != nil {
		query = query.Where("expenses.category_id = ?", *filters.CategoryID)
	}
	if filters.TagID != nil {
		query = query.
			Joins("JOIN expense_tags ON expense_tags.expense_id = expenses.id").
			Where("expense_tags.tag_id = ?", *filters.TagID)
	}
	if filters.DateFrom != nil {
		query = query.Where("expenses.date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("expenses.date <= ?", *filters.DateTo)
	}

	err := query.
		Order("expenses.date DESC").
		Order("expenses.id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

// GetByID retrieves an expense with its category and tags
func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	return loadExpense(r.db.WithContext(ctx), id)
}

// Update applies the fields set in update. Unset fields keep their stored
// values; a set tag list replaces the tag set entirely.
func (r *expenseRepository) Update(ctx context.Context, id int64, update models.ExpenseUpdate) (*models.Expense, error) {
	var updated *models.Expense

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Expense{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		if count == 0 {
			return ErrExpenseNotFound
		}

		changes := map[string]interface{}{}
		if amount, ok := update.Amount.Get(); ok {
			changes["amount"] = amount
		}
		if description, ok := update.Description.Get(); ok {
			changes["description"] = description
		}
		if date, ok := update.Date.Get(); ok {
			changes["date"] = date
		}
		if categoryID, ok := update.CategoryID.Get(); ok {
			if err := ensureCategoryExists(tx, categoryID); err != nil {
				return err
			}
			changes["category_id"] = categoryID
		}

		if len(changes) > 0 {
			if err := tx.Model(&models.Expense{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				if isForeignKeyError(err) {
					return ErrUnknownCategory
				}
				return fmt.Errorf("failed to update expense: %w", err)
			}
		}

		if tagIDs, ok := update.TagIDs.Get(); ok {
			tags, err := resolveTags(tx, tagIDs)
			if err != nil {
				return err
			}
			if err := replaceTags(tx, id, tags); err != nil {
				return err
			}
		}

		var err error
		updated, err = loadExpense(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an expense and its tag links. It reports false when no
// expense had the given id.
func (r *expenseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
			return fmt.Errorf("failed to detach expense tags: %w", err)
		}

		result := tx.Delete(&models.Expense{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete expense: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		})
}

func loadExpense(db *gorm.DB, id int64) (*models.Expense, error) {
	var expense models.Expense
	if err := withAssociations(db).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}
