package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrBadRequest marks malformed input or a request that violates a business rule.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized marks missing or invalid credentials and ownership violations.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated identity lacking the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an absent or soft-deleted entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrInternal marks an unexpected failure.
	ErrInternal = errors.New("internal error")
)

// Error carries a client-facing message together with its kind. Cause is never shown to clients.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func BadRequest(message string) error   { return newError(ErrBadRequest, message) }
func Unauthorized(message string) error { return newError(ErrUnauthorized, message) }
func Forbidden(message string) error    { return newError(ErrForbidden, message) }
func NotFound(message string) error     { return newError(ErrNotFound, message) }
func Conflict(message string) error     { return newError(ErrConflict, message) }

// Internal wraps an unexpected failure; the cause is kept for logging only.
func Internal(message string, cause error) error {
	return &Error{Kind: ErrInternal, Message: message, Cause: cause}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status     bool   `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// IsNotFound reports whether err is a domain or gorm not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a translated unique-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	message := "Internal server error"
	var appErr *Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, ErrInternal):
		return NewHTTPError(http.StatusInternalServerError, message, "INTERNAL_ERROR")
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, message, "BAD_REQUEST")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, message, "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, message, "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, message, "NOT_FOUND")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "Resource not found", "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, message, "CONFLICT")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, "Resource already exists", "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
