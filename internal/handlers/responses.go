package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"kaasu/internal/errors"
	"kaasu/internal/models"
	"kaasu/internal/repositories"
	"kaasu/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Handlers report failures through these helpers only:
//
// 1. SendError - client errors and business rule violations (4xx)
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Not found errors: SendError(c, errors.CategoryNotFound)
//    - Conflicts: SendError(c, errors.CategoryInUse)
//
// 2. SendSystemError - store and unexpected failures (500). The cause is
//    logged and never shown to the client.
//
// 3. SendServiceError - maps a service or repository error onto one of the two.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	slog.ErrorContext(c.Request().Context(), "request failed",
		"error", internalErr,
		"trace_id", traceID,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendValidationError reports struct validation failures as field details
func SendValidationError(c echo.Context, err error) error {
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(validation.FormatErrors(err)...))
}

// SendServiceError translates known domain errors into API error codes and
// falls back to a system error
func SendServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, repositories.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, repositories.ErrCategoryExists):
		return SendError(c, errors.CategoryAlreadyExists)
	case stderrors.Is(err, repositories.ErrCategoryInUse):
		return SendError(c, errors.CategoryInUse)
	case stderrors.Is(err, repositories.ErrUnknownCategory):
		return SendError(c, errors.ExpenseInvalidCategory)
	case stderrors.Is(err, repositories.ErrTagNotFound):
		return SendError(c, errors.TagNotFound)
	case stderrors.Is(err, repositories.ErrTagExists):
		return SendError(c, errors.TagAlreadyExists)
	case stderrors.Is(err, repositories.ErrExpenseNotFound):
		return SendError(c, errors.ExpenseNotFound)
	case stderrors.Is(err, models.ErrInvalidAmount), stderrors.Is(err, models.ErrAmountTooLarge):
		return SendError(c, errors.ExpenseInvalidAmount, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrCategoryMissing):
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("category_id: is required"))
	case stderrors.Is(err, models.ErrNameRequired), stderrors.Is(err, models.ErrNameTooLong):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("name: "+err.Error()))
	case stderrors.Is(err, models.ErrUnsupportedExportFormat):
		return SendError(c, errors.ExpenseInvalidExport, errors.WithDetails(err.Error()))
	case stderrors.Is(err, repositories.ErrNotFound):
		return SendError(c, errors.ResourceNotFound)
	}
	return SendSystemError(c, err)
}
