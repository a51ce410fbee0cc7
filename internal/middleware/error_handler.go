package middleware

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"kaasu/internal/errors"
	"kaasu/internal/services"
	"kaasu/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler returns an echo error handler that formats errors as
// standardized error responses, logs them and counts them in metrics.
// Handlers normally write their own error bodies; this catches router
// errors (404, 405), middleware errors and anything returned unhandled.
func NewHTTPErrorHandler(metrics services.MetricsRecorderInterface) echo.HTTPErrorHandler {
	if metrics == nil {
		metrics = services.NoopMetrics{}
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "unknown"
		}

		errorResponse, httpStatus := buildErrorResponse(err, traceID)

		logLevel := slog.LevelWarn
		if httpStatus >= 500 {
			logLevel = slog.LevelError
		}

		slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
			"trace_id", traceID,
			"error_code", errorResponse.Error.Code,
			"status", httpStatus,
			"message", errorResponse.Error.Message,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
			"error", err.Error(),
		)

		metrics.IncrementCounter(services.MetricAPIError, map[string]string{
			"code":   errorResponse.Error.Code,
			"status": fmt.Sprintf("%d", httpStatus),
		})

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpStatus)
		} else {
			err = c.JSON(httpStatus, errorResponse)
		}
		if err != nil {
			slog.Error("Failed to send error response",
				"trace_id", traceID,
				"error", err.Error(),
			)
		}
	}
}

func buildErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		errorResponse := errors.NewErrorResponse(
			mapHTTPStatusToErrorCode(echoErr.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
		return errorResponse, echoErr.Code
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return errors.NewValidationErrorFromList(validation.FormatErrors(validationErrs), traceID), http.StatusBadRequest
	}

	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return errorResponse, errorResponse.GetHTTPStatus()
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity,
		http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return errors.ValidationGeneral
	case http.StatusNotFound:
		return errors.ResourceNotFound
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusInternalServerError:
		return errors.SystemInternalError
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemUnexpectedError
	}
}
