package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error represents a structured API error response.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails adds field-level error details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	e.Details = details
	return e
}

// ToJSON converts the error to JSON bytes.
func (e *Error) ToJSON() []byte {
	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    e.Code,
			"message": e.Message,
		},
	}

	if len(e.Details) > 0 {
		response["error"].(map[string]interface{})["details"] = e.Details
	}

	data, _ := json.Marshal(response)
	return data
}

// Error codes used across the store and handlers.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeValidation  = "VALIDATION_ERROR"
	CodeConflict    = "CONFLICT"
	CodeNotFound    = "NOT_FOUND"
	CodeFormat      = "FORMAT_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeInternal    = "INTERNAL_ERROR"
)

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeBadRequest,
		Message:    message,
	}
}

// Validation creates a 400 error for malformed or out-of-range input.
func Validation(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    message,
		Details:    details,
	}
}

// Conflict creates a 409 error for operations that would violate a
// cross-entity invariant (deleting an in-use item, double-selling a build).
func Conflict(message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeConflict,
		Message:    message,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    message,
	}
}

// Format creates a 400 error for malformed import payloads.
func Format(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeFormat,
		Message:    message,
	}
}

// Persistence creates a 500 error for failed storage reads/writes. The
// in-memory state stays authoritative, so callers surface this as a warning
// rather than failing the mutation.
func Persistence(message string) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       CodePersistence,
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    message,
	}
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsConflict reports whether err is a cross-entity conflict.
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsFormat reports whether err is an import format error.
func IsFormat(err error) bool { return hasCode(err, CodeFormat) }

// IsPersistence reports whether err is a storage failure.
func IsPersistence(err error) bool { return hasCode(err, CodePersistence) }
