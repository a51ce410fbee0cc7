package services

import (
	"context"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories"
)

const entityCategory = "category"

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	activity     ActivityLoggerInterface
	metrics      MetricsRecorderInterface
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	activity ActivityLoggerInterface,
	metrics MetricsRecorderInterface,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		activity:     activity,
		metrics:      metrics,
	}
}

// CreateCategory trims and validates the name before storing it
func (s *categoryService) CreateCategory(ctx context.Context, name string) (category *models.Category, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityCategory, "create", start, err) }()

	name = models.NormalizeName(name)
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}

	category, err = s.categoryRepo.Create(ctx, name)
	if err != nil {
		s.activity.LogFailed(ctx, entityCategory, "create", err)
		return nil, err
	}

	s.activity.LogCreated(ctx, entityCategory, category.ID)
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory removes a category that no expense references
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) (deleted bool, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityCategory, "delete", start, err) }()

	deleted, err = s.categoryRepo.Delete(ctx, id)
	if err != nil {
		s.activity.LogFailed(ctx, entityCategory, "delete", err)
		return false, err
	}

	s.activity.LogDeleted(ctx, entityCategory, id, deleted)
	return deleted, nil
}
