package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "kaasu/internal/errors"
	"kaasu/internal/services"
	"kaasu/internal/services/service_mocks"
	"kaasu/internal/validation"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for error handler middleware
type ErrorHandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	metrics *service_mocks.MockMetricsRecorderInterface
	echo    *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = NewHTTPErrorHandler(s.metrics)
}

func (s *ErrorHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) handle(method string, err error) (*httptest.ResponseRecorder, apierrors.ErrorResponse) {
	req := httptest.NewRequest(method, "/api/missing", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	s.echo.HTTPErrorHandler(err, c)

	var resp apierrors.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func (s *ErrorHandlerTestSuite) expectCounted(code apierrors.ErrorCode, status string) {
	s.metrics.EXPECT().IncrementCounter(services.MetricAPIError, map[string]string{
		"code":   string(code),
		"status": status,
	})
}

func (s *ErrorHandlerTestSuite) TestEchoHTTPError_NotFound() {
	s.expectCounted(apierrors.ResourceNotFound, "404")

	rec, resp := s.handle(http.MethodGet, echo.ErrNotFound)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apierrors.ResourceNotFound), resp.Error.Code)
	s.Equal("test-trace-id", resp.Error.TraceID)
}

func (s *ErrorHandlerTestSuite) TestEchoHTTPError_MethodNotAllowed() {
	s.expectCounted(apierrors.ValidationGeneral, "405")

	rec, _ := s.handle(http.MethodPost, echo.ErrMethodNotAllowed)

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *ErrorHandlerTestSuite) TestValidationErrors() {
	s.expectCounted(apierrors.ValidationGeneral, "400")

	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	err := validation.GetValidator().Struct(payload{})

	rec, resp := s.handle(http.MethodPost, err)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal([]string{"name: is required"}, resp.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestGenericErrorHidesCause() {
	s.expectCounted(apierrors.SystemInternalError, "500")

	rec, resp := s.handle(http.MethodGet, errors.New("pq: password authentication failed"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(apierrors.SystemInternalError), resp.Error.Code)
	s.NotContains(rec.Body.String(), "password")
}

func (s *ErrorHandlerTestSuite) TestHeadRequestHasNoBody() {
	s.expectCounted(apierrors.ResourceNotFound, "404")

	rec, _ := s.handle(http.MethodHead, echo.ErrNotFound)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Zero(rec.Body.Len())
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseIsLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	s.Require().NoError(c.String(http.StatusOK, "done"))

	s.echo.HTTPErrorHandler(errors.New("late"), c)

	s.Equal("done", rec.Body.String())
}

func TestMapHTTPStatusToErrorCode(t *testing.T) {
	cases := map[int]apierrors.ErrorCode{
		http.StatusBadRequest:          apierrors.ValidationGeneral,
		http.StatusNotFound:            apierrors.ResourceNotFound,
		http.StatusTooManyRequests:     apierrors.SystemRateLimitExceeded,
		http.StatusServiceUnavailable:  apierrors.SystemServiceUnavailable,
		http.StatusInternalServerError: apierrors.SystemInternalError,
		http.StatusTeapot:              apierrors.SystemUnexpectedError,
	}
	for status, code := range cases {
		if got := mapHTTPStatusToErrorCode(status); got != code {
			t.Errorf("status %d: got %s, want %s", status, got, code)
		}
	}
}

func TestNewHTTPErrorHandler_NilMetrics(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	e.HTTPErrorHandler(echo.ErrNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
