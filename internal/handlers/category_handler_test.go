package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"kaasu/internal/dto"
	"kaasu/internal/errors"
	"kaasu/internal/models"
	"kaasu/internal/repositories"
	"kaasu/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// CategoryHandlerSuite defines the test suite for CategoryHandler
type CategoryHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockCategoryServiceInterface
	handler     *CategoryHandler
	echo        *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *CategoryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.mockService)
	s.echo = newTestEcho()
}

// TearDownTest runs after each test in the suite
func (s *CategoryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestCategoryHandlerSuite runs the test suite
func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerSuite))
}

func (s *CategoryHandlerSuite) TestCreateCategory() {
	s.mockService.EXPECT().CreateCategory(gomock.Any(), "Food").Return(&models.Category{ID: 1, Name: "Food"}, nil)

	c, rec := newContext(s.echo, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Food"})
	err := s.handler.CreateCategory(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"id":1,"name":"Food"}`, rec.Body.String())
}

func (s *CategoryHandlerSuite) TestCreateCategory_BlankName() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/categories", `{"name":"   "}`)
	err := s.handler.CreateCategory(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	resp := decodeError(rec)
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
	s.Equal("trace-test", resp.Error.TraceID)
}

func (s *CategoryHandlerSuite) TestCreateCategory_MalformedBody() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/categories", `{"name":`)
	err := s.handler.CreateCategory(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CategoryHandlerSuite) TestCreateCategory_Duplicate() {
	s.mockService.EXPECT().CreateCategory(gomock.Any(), "Food").Return(nil, repositories.ErrCategoryExists)

	c, rec := newContext(s.echo, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Food"})
	err := s.handler.CreateCategory(c)

	s.NoError(err)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.CategoryAlreadyExists), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestListCategories() {
	s.mockService.EXPECT().ListCategories(gomock.Any()).Return([]models.Category{{ID: 2, Name: "Food"}, {ID: 1, Name: "Rent"}}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/categories", nil)
	err := s.handler.ListCategories(c)

	s.NoError(err)
	var resp []dto.CategoryResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp, 2)
	s.Equal("Food", resp[0].Name)
}

func (s *CategoryHandlerSuite) TestListCategories_Empty() {
	s.mockService.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/categories", nil)
	err := s.handler.ListCategories(c)

	s.NoError(err)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *CategoryHandlerSuite) TestListCategories_StoreError() {
	s.mockService.EXPECT().ListCategories(gomock.Any()).Return(nil, stderrors.New("disk I/O error"))

	c, rec := newContext(s.echo, http.MethodGet, "/api/categories", nil)
	err := s.handler.ListCategories(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "disk I/O")
}

func (s *CategoryHandlerSuite) TestDeleteCategory() {
	s.mockService.EXPECT().DeleteCategory(gomock.Any(), int64(1)).Return(true, nil)

	c, rec := newContext(s.echo, http.MethodDelete, "/api/categories/1", nil)
	err := s.handler.DeleteCategory(withID(c, "1"))

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"deleted"}`, rec.Body.String())
}

func (s *CategoryHandlerSuite) TestDeleteCategory_NotFound() {
	s.mockService.EXPECT().DeleteCategory(gomock.Any(), int64(9)).Return(false, nil)

	c, rec := newContext(s.echo, http.MethodDelete, "/api/categories/9", nil)
	err := s.handler.DeleteCategory(withID(c, "9"))

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CategoryNotFound), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestDeleteCategory_InUse() {
	s.mockService.EXPECT().DeleteCategory(gomock.Any(), int64(1)).Return(false, repositories.ErrCategoryInUse)

	c, rec := newContext(s.echo, http.MethodDelete, "/api/categories/1", nil)
	err := s.handler.DeleteCategory(withID(c, "1"))

	s.NoError(err)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.CategoryInUse), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestDeleteCategory_InvalidID() {
	c, rec := newContext(s.echo, http.MethodDelete, "/api/categories/abc", nil)
	err := s.handler.DeleteCategory(withID(c, "abc"))

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationInvalidID), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestRequestContextIsPassed() {
	type key struct{}
	s.mockService.EXPECT().ListCategories(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]models.Category, error) {
			s.Equal("v", ctx.Value(key{}))
			return nil, nil
		})

	c, _ := newContext(s.echo, http.MethodGet, "/api/categories", nil)
	c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), key{}, "v")))

	s.NoError(s.handler.ListCategories(c))
}
