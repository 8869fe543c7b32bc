package shared

import "fmt"

// DomainError represents an expected business-rule outcome. It is returned
// to callers as a typed result, never retried and never swallowed.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrPreconditionFailed  = NewDomainError("PRECONDITION_FAILED", "Operation precondition not met")
)

// NewCapacityExceededError reports a guest count over the venue limit with
// override disabled. The message names both figures so the caller can act.
func NewCapacityExceededError(requested, max int) *DomainError {
	return NewDomainError("CAPACITY_EXCEEDED",
		fmt.Sprintf("Requested guest count %d exceeds venue capacity %d", requested, max))
}

// NewInvalidTransitionError reports a status change not permitted from the
// current state.
func NewInvalidTransitionError(from, to string) *DomainError {
	return NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition booking from %s to %s", from, to))
}
