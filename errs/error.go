package errs

import (
	"errors"
	"fmt"
)

// Application error codes. They double as the error_type strings of the
// JSON error envelope, so they are lowercase snake case on purpose.
const (
	ECONFLICT     = "conflict"
	EFORBIDDEN    = "forbidden"
	EINTERNAL     = "internal_error"
	EINVALID      = "invalid_input"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthenticated"
)

// Error is an application error. Code is machine-readable and drives the
// HTTP status, Message is human-readable and safe to show to API clients.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the API layer, mainly
// for logging and test output.
func (e *Error) Error() string {
	return fmt.Sprintf("minitweet error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an Error with formatting.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always report EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors get a generic message so that internals never
// leak to clients.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
