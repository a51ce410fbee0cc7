package handlers

import (
	"net/http"

	"kaasu/internal/dto"
	"kaasu/internal/errors"
	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService services.TagServiceInterface
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService services.TagServiceInterface) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTag creates a tag with a unique name
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Tag name"
// @Success 200 {object} dto.TagResponse
// @Failure 409 {object} errors.ErrorResponse "TAG_002 - Name already exists"
// @Router /api/tags [post]
func (h *TagHandler) CreateTag(c echo.Context) error {
	var req dto.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	tag, err := h.tagService.CreateTag(c.Request().Context(), req.Name)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTagResponse(*tag))
}

// ListTags returns every tag ordered by name
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Router /api/tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.ListTags(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTagListResponse(tags))
}

// DeleteTag deletes a tag and detaches it from its expenses
// @Summary Delete a tag
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} errors.ErrorResponse "TAG_001 - Tag not found"
// @Router /api/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	deleted, err := h.tagService.DeleteTag(c.Request().Context(), id)
	if err != nil {
		return SendServiceError(c, err)
	}
	if !deleted {
		return SendError(c, errors.TagNotFound)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusDeleted})
}
