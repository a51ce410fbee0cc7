package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestRequestIDTestSuite runs the test suite
func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(header, value string) (string, string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var fromEcho, fromRequest string
	handler := RequestID()(func(c echo.Context) error {
		fromEcho = GetTraceID(c)
		fromRequest, _ = c.Request().Context().Value(services.RequestIDContextKey).(string)
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return fromEcho, fromRequest, rec
}

// TestRequestID_GeneratesTraceID tests that middleware generates a trace ID
func (s *RequestIDTestSuite) TestRequestID_GeneratesTraceID() {
	fromEcho, fromRequest, rec := s.run("", "")

	s.NotEmpty(fromEcho)
	s.Equal(fromEcho, fromRequest)
	s.Equal(fromEcho, rec.Header().Get(TraceIDHeader))
}

// TestRequestID_UsesExistingTraceID tests that middleware uses existing trace ID from request
func (s *RequestIDTestSuite) TestRequestID_UsesExistingTraceID() {
	fromEcho, fromRequest, rec := s.run(TraceIDHeader, "existing-trace-id-12345")

	s.Equal("existing-trace-id-12345", fromEcho)
	s.Equal("existing-trace-id-12345", fromRequest)
	s.Equal("existing-trace-id-12345", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestRequestID_AcceptsRequestIDHeader() {
	fromEcho, _, _ := s.run(RequestIDHeader, "from-proxy")

	s.Equal("from-proxy", fromEcho)
}

func (s *RequestIDTestSuite) TestRequestID_ReplacesOversizedID() {
	fromEcho, _, _ := s.run(TraceIDHeader, strings.Repeat("a", maxTraceIDLength+1))

	s.Len(fromEcho, 36)
}

func (s *RequestIDTestSuite) TestGetTraceID_Missing() {
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	s.Equal("", GetTraceID(c))
}
