package dto

import "net/http"

// Error code constants, format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeCapacityExceeded is returned when the guest count is over the
	// venue limit and the hotel does not allow overrides
	ErrCodeCapacityExceeded = "ERR_CAPACITY_EXCEEDED"
	// ErrCodeInvalidTransition is returned for lifecycle moves outside the
	// allowed transition table
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeInvalidState is returned when an operation is invalid for the
	// resource's current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodePreconditionFailed is returned when an operation's precondition
	// is not met, such as deleting a booking that was never cancelled
	ErrCodePreconditionFailed = "ERR_PRECONDITION_FAILED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeCapacityExceeded:   http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:  http.StatusConflict,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodePreconditionFailed: http.StatusPreconditionFailed,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"PRECONDITION_FAILED":  ErrCodePreconditionFailed,
	"CAPACITY_EXCEEDED":    ErrCodeCapacityExceeded,
	"INVALID_TRANSITION":   ErrCodeInvalidTransition,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,

	"HOTEL_INACTIVE":   ErrCodeInvalidState,
	"VENUE_INACTIVE":   ErrCodeInvalidState,
	"BOOKING_TERMINAL": ErrCodeInvalidState,

	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_HOTEL":          ErrCodeInvalidInput,
	"INVALID_VENUE":          ErrCodeInvalidInput,
	"INVALID_CUSTOMER":       ErrCodeInvalidInput,
	"INVALID_BOOKING_NUMBER": ErrCodeInvalidInput,
	"INVALID_EVENT_NAME":     ErrCodeInvalidInput,
	"INVALID_TIME_RANGE":     ErrCodeInvalidInput,
	"INVALID_GUEST_COUNT":    ErrCodeInvalidInput,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"INVALID_NAME":           ErrCodeInvalidInput,
	"INVALID_EMAIL":          ErrCodeInvalidInput,
	"INVALID_PRICE":          ErrCodeInvalidInput,
	"INVALID_RATE":           ErrCodeInvalidInput,
	"INVALID_CURRENCY":       ErrCodeInvalidInput,
}

// NormalizeErrorCode maps a domain error code to its API error code.
// Unmapped codes pass through unchanged, so new domain codes surface
// verbatim rather than hiding behind ERR_UNKNOWN.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodeMapping[code]; ok {
		return mapped
	}
	return code
}
