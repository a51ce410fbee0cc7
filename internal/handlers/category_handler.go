package handlers

import (
	"net/http"

	"kaasu/internal/dto"
	"kaasu/internal/errors"
	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a category with a unique name
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category name"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_002 - Name already exists"
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(*category))
}

// ListCategories returns every category ordered by name
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

// DeleteCategory deletes a category that no expense uses
// @Summary Delete a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_003 - Category still has expenses"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	deleted, err := h.categoryService.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return SendServiceError(c, err)
	}
	if !deleted {
		return SendError(c, errors.CategoryNotFound)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusDeleted})
}
