package tasksync

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/phrazzld/smarttask/internal/redact"
)

// Kind classifies controller errors for the caller.
type Kind int

const (
	// KindValidation means the request was rejected locally; no network call was made.
	KindValidation Kind = iota + 1
	// KindConnectivity means the task list could not be read.
	KindConnectivity
	// KindWrite means a create or delete was not accepted by the server.
	KindWrite
	// KindAuth means the server rejected the session credential.
	KindAuth
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnectivity:
		return "connectivity"
	case KindWrite:
		return "write"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Sentinels matching each Kind, for use with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConnectivity = errors.New("connectivity error")
	ErrWrite        = errors.New("write error")
	ErrAuth         = errors.New("authentication error")

	// ErrNotLoaded is returned by mutations issued before the first Load.
	ErrNotLoaded = errors.New("tasks have not been loaded")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindConnectivity:
		return ErrConnectivity
	case KindWrite:
		return ErrWrite
	case KindAuth:
		return ErrAuth
	default:
		return nil
	}
}

// Error is returned by every failing controller operation.
type Error struct {
	// Kind classifies the failure
	Kind Kind
	// Op is the operation that failed (e.g., "load", "add_task")
	Op string
	// Message is a redacted, human-readable description
	Message string
	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s failed", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationError(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: redact.Error(err), Err: err}
}

// remoteError converts a collaborator failure. A 401 is always KindAuth;
// anything else takes the given kind.
func remoteError(op string, kind Kind, err error) *Error {
	if errors.Is(err, taskapi.ErrUnauthorized) {
		return &Error{Kind: KindAuth, Op: op, Message: "session rejected by server, please log in again", Err: err}
	}
	return &Error{Kind: kind, Op: op, Message: describe(err), Err: err}
}

func describe(err error) string {
	var se *taskapi.StatusError
	switch {
	case errors.As(err, &se):
		return redact.String(se.Message)
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, taskapi.ErrUnreachable):
		return "server unreachable"
	case errors.Is(err, taskapi.ErrInvalidResponse):
		return "server sent an invalid response"
	default:
		return redact.Error(err)
	}
}
