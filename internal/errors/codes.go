package errors

import "net/http"

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
	ValidationInvalidID     ErrorCode = "VALIDATION_006"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists ErrorCode = "CATEGORY_002"
	CategoryInUse         ErrorCode = "CATEGORY_003"
)

// Tag error codes (TAG_*)
const (
	TagNotFound      ErrorCode = "TAG_001"
	TagAlreadyExists ErrorCode = "TAG_002"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound        ErrorCode = "EXPENSE_001"
	ExpenseInvalidAmount   ErrorCode = "EXPENSE_002"
	ExpenseInvalidCategory ErrorCode = "EXPENSE_003"
	ExpenseInvalidExport   ErrorCode = "EXPENSE_004"
)

// Resource error codes (RESOURCE_*)
const (
	ResourceNotFound ErrorCode = "RESOURCE_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

type codeInfo struct {
	status  int
	message string
}

// registry holds the HTTP status and default message of every code
var registry = map[ErrorCode]codeInfo{
	ValidationGeneral:       {http.StatusBadRequest, "Validation failed"},
	ValidationRequiredField: {http.StatusBadRequest, "Required field is missing"},
	ValidationInvalidFormat: {http.StatusBadRequest, "Invalid field format"},
	ValidationOutOfRange:    {http.StatusBadRequest, "Field value is out of allowed range"},
	ValidationInvalidDate:   {http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"},
	ValidationInvalidID:     {http.StatusBadRequest, "Invalid ID, expected a positive integer"},

	CategoryNotFound:      {http.StatusNotFound, "Category not found"},
	CategoryAlreadyExists: {http.StatusConflict, "A category with this name already exists"},
	CategoryInUse:         {http.StatusConflict, "Category still has expenses and cannot be deleted"},

	TagNotFound:      {http.StatusNotFound, "Tag not found"},
	TagAlreadyExists: {http.StatusConflict, "A tag with this name already exists"},

	ExpenseNotFound:        {http.StatusNotFound, "Expense not found"},
	ExpenseInvalidAmount:   {http.StatusBadRequest, "Amount must be a positive number below 10000000000"},
	ExpenseInvalidCategory: {http.StatusUnprocessableEntity, "Category does not exist"},
	ExpenseInvalidExport:   {http.StatusBadRequest, "Unsupported export format, expected xlsx or csv"},

	ResourceNotFound: {http.StatusNotFound, "Resource not found"},

	SystemInternalError:      {http.StatusInternalServerError, "An unexpected error occurred. Please contact support with trace ID"},
	SystemDatabaseError:      {http.StatusInternalServerError, "Database connection error"},
	SystemServiceUnavailable: {http.StatusServiceUnavailable, "Service temporarily unavailable"},
	SystemConfigurationError: {http.StatusInternalServerError, "System configuration error"},
	SystemUnexpectedError:    {http.StatusInternalServerError, "An unexpected error occurred"},
	SystemRateLimitExceeded:  {http.StatusTooManyRequests, "Rate limit exceeded. Please try again later"},
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if info, ok := registry[code]; ok {
		return info.message
	}
	return "An error occurred"
}

// GetHTTPStatus returns the HTTP status for the error code. Unknown codes are
// server errors.
func GetHTTPStatus(code ErrorCode) int {
	if info, ok := registry[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := registry[code]
	return ok
}
