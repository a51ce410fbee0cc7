package repositories

import (
	"context"
	"errors"
	"fmt"

	"kaasu/internal/models"

	"gorm.io/gorm"
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// Create inserts a category. A taken name yields ErrCategoryExists.
func (r *categoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// List returns all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// Delete removes a category. It reports false when the category does not
// exist and ErrCategoryInUse while any expense still references it.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get category: %w", err)
		}

		var references int64
		if err := tx.Model(&models.Expense{}).Where("category_id = ?", id).Count(&references).Error; err != nil {
			return fmt.Errorf("failed to count category expenses: %w", err)
		}
		if references > 0 {
			return ErrCategoryInUse
		}

		result := tx.Delete(&models.Category{}, id)
		if result.Error != nil {
			if isForeignKeyError(result.Error) {
				return ErrCategoryInUse
			}
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// ensureCategoryExists fails with ErrUnknownCategory when id has no row
func ensureCategoryExists(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return ErrUnknownCategory
	}
	return nil
}
