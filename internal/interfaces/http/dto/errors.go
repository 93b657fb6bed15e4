package dto

import "net/http"

// Error codes returned by the API. Codes are stable identifiers that clients
// can match on, independent of the human-readable message.
const (
	// General errors
	ErrCodeInternalError      = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// Validation errors
	ErrCodeValidationFailed = "ERR_VALIDATION"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeMissingParameter = "ERR_MISSING_PARAMETER"

	// Authentication and authorization errors
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	// Resource errors
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"

	// Rate limiting
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"

	// Platform integration errors
	ErrCodeUnknownPlatform      = "ERR_UNKNOWN_PLATFORM"
	ErrCodePlatformDisabled     = "ERR_PLATFORM_DISABLED"
	ErrCodeInvalidCredentials   = "ERR_INVALID_CREDENTIALS"
	ErrCodeMissingCredentials   = "ERR_MISSING_CREDENTIALS"
	ErrCodeInvalidSyncFrequency = "ERR_INVALID_SYNC_FREQUENCY"
	ErrCodeSyncInProgress       = "ERR_SYNC_IN_PROGRESS"
	ErrCodePlatformUnavailable  = "ERR_PLATFORM_UNAVAILABLE"
	ErrCodeInvalidResponse      = "ERR_INVALID_RESPONSE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeMissingParameter: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnknownPlatform:      http.StatusNotFound,
	ErrCodePlatformDisabled:     http.StatusUnprocessableEntity,
	ErrCodeInvalidCredentials:   http.StatusUnprocessableEntity,
	ErrCodeMissingCredentials:   http.StatusUnprocessableEntity,
	ErrCodeInvalidSyncFrequency: http.StatusUnprocessableEntity,
	ErrCodeSyncInProgress:       http.StatusConflict,
	ErrCodePlatformUnavailable:  http.StatusBadGateway,
	ErrCodeInvalidResponse:      http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500 so that unmapped errors are never
// silently reported as client errors.
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
