package taskapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches a 401 *StatusError.
	ErrUnauthorized = errors.New("not authorized")

	// ErrUnreachable is returned when no HTTP response was received,
	// including timeouts and cancelled contexts.
	ErrUnreachable = errors.New("task server unreachable")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response from task server")
)

// StatusError describes a non-2xx response. Message is taken from the
// response body when it carries one.
type StatusError struct {
	StatusCode int
	Message    string
}

// Is makes a 401 match ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsConflict reports whether err is a 409 StatusError.
func IsConflict(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusConflict
}
