package apperrors

import (
	"errors"
	"net/http"
)

// Error kinds. Every *Error wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// Error is a domain failure with the message shown to the client.
type Error struct {
	Kind    error
	Message string
	Details []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Validation(message string, details ...string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Details: details}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// Internal hides cause behind a generic client-facing message.
func Internal(message string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: message, Cause: cause}
}

// Status maps an error to its HTTP status. Conflicts answer 400, which is what
// existing form clients of the signup routes expect.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Body renders the JSON error payload for err.
func Body(err error) map[string]any {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return map[string]any{"error": "internal server error"}
	}
	body := map[string]any{"error": appErr.Error()}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return body
}
