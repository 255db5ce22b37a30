package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a machine code and the HTTP status the boundary should use.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func Wrap(err error, code, message string, status int) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

func NotFound(code, message string) *Error {
	return New(code, message, http.StatusNotFound)
}

func Conflict(code, message string) *Error {
	return New(code, message, http.StatusConflict)
}

func Invalid(code, message string) *Error {
	return New(code, message, http.StatusBadRequest)
}

func Database(err error) *Error {
	return Wrap(err, "database_error", "storage operation failed", http.StatusServiceUnavailable)
}

// From extracts an *Error from err, or nil when err carries none.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
