package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestAccessLog(t *testing.T) {
	buf := captureDefaultLogger(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tags", nil), rec)
	c.Set(TraceIDContextKey, "trace-1")

	require.NoError(t, AccessLog()(okHandler)(c))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Request completed", entry["msg"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "/api/tags", entry["path"])
}

func TestAccessLog_HandlerError(t *testing.T) {
	buf := captureDefaultLogger(t)
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/nope", nil), rec)

	err := AccessLog()(func(c echo.Context) error { return echo.ErrNotFound })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"status":404`)
}
