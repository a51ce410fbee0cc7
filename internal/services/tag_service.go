package services

import (
	"context"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories"
)

const entityTag = "tag"

type tagService struct {
	tagRepo  repositories.TagRepositoryInterface
	activity ActivityLoggerInterface
	metrics  MetricsRecorderInterface
}

// NewTagService creates a new TagServiceInterface instance
func NewTagService(
	tagRepo repositories.TagRepositoryInterface,
	activity ActivityLoggerInterface,
	metrics MetricsRecorderInterface,
) TagServiceInterface {
	return &tagService{
		tagRepo:  tagRepo,
		activity: activity,
		metrics:  metrics,
	}
}

func (s *tagService) CreateTag(ctx context.Context, name string) (tag *models.Tag, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityTag, "create", start, err) }()

	name = models.NormalizeName(name)
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}

	tag, err = s.tagRepo.Create(ctx, name)
	if err != nil {
		s.activity.LogFailed(ctx, entityTag, "create", err)
		return nil, err
	}

	s.activity.LogCreated(ctx, entityTag, tag.ID)
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// DeleteTag removes the tag and detaches it from every expense
func (s *tagService) DeleteTag(ctx context.Context, id int64) (deleted bool, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityTag, "delete", start, err) }()

	deleted, err = s.tagRepo.Delete(ctx, id)
	if err != nil {
		s.activity.LogFailed(ctx, entityTag, "delete", err)
		return false, err
	}

	s.activity.LogDeleted(ctx, entityTag, id, deleted)
	return deleted, nil
}
