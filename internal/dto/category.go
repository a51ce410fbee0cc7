package dto

import "kaasu/internal/models"

// Category and Tag Request DTOs

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,name"`
}

// CreateTagRequest represents the request payload for creating a tag
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,name"`
}

// Category and Tag Response DTOs

// CategoryResponse represents a single category in API responses
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagResponse represents a single tag in API responses
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryResponse maps a category model to its response form
func NewCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

// NewCategoryListResponse maps categories, never returning nil
func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResponse(category))
	}
	return out
}

// NewTagResponse maps a tag model to its response form
func NewTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

// NewTagListResponse maps tags, never returning nil
func NewTagListResponse(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NewTagResponse(tag))
	}
	return out
}
