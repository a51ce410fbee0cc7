package repositories

import (
	"context"
	"errors"
	"fmt"

	"kaasu/internal/models"

	"gorm.io/gorm"
)

// tagRepository implements TagRepositoryInterface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepositoryInterface {
	return &tagRepository{
		db: db,
	}
}

// Create inserts a tag. A taken name yields ErrTagExists.
func (r *tagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// List returns all tags ordered by name
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetByID retrieves a tag by ID
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// FindByIDs returns the tags among ids that exist. Unknown ids are skipped.
func (r *tagRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	return resolveTags(r.db.WithContext(ctx), ids)
}

// Delete removes a tag together with its expense associations
func (r *tagRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get tag: %w", err)
		}

		if err := tx.Where("tag_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
			return fmt.Errorf("failed to detach tag from expenses: %w", err)
		}

		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tag: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// resolveTags loads the existing tags for ids, ignoring unknown ones
func resolveTags(tx *gorm.DB, ids []int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return tags, nil
	}

	if err := tx.Where("id IN ?", ids).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	return tags, nil
}

// replaceTags makes tags the complete tag set of the expense
func replaceTags(tx *gorm.DB, expenseID int64, tags []models.Tag) error {
	if err := tx.Where("expense_id = ?", expenseID).Delete(&models.ExpenseTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear expense tags: %w", err)
	}
	if len(tags) == 0 {
		return nil
	}

	links := make([]models.ExpenseTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.ExpenseTag{ExpenseID: expenseID, TagID: tag.ID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to attach expense tags: %w", err)
	}
	return nil
}
