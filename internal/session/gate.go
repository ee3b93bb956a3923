package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/phrazzld/smarttask/internal/service/auth"
)

// Authenticator is the part of the backend the gate needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (taskapi.Credential, error)
	Register(ctx context.Context, username, password string) error
}

// Gate runs the authentication flows and keeps the Store current.
type Gate struct {
	remote Authenticator
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewGate creates a gate. A nil logger uses slog.Default().
func NewGate(remote Authenticator, store Store, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		remote: remote,
		store:  store,
		now:    time.Now,
		logger: logger.With("component", "session_gate"),
	}
}

// Login authenticates and saves the resulting session.
func (g *Gate) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	cred, err := g.remote.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, taskapi.ErrUnauthorized) {
			return nil, rejected(ErrInvalidCredentials, err)
		}
		return nil, rejected(ErrLoginFailed, err)
	}

	s := &Session{Username: username, Token: cred.AccessToken, TokenType: cred.TokenType}
	if err := g.store.Save(s); err != nil {
		return nil, err
	}
	g.logger.Info("logged in", "username", username)
	return s, nil
}

// Register creates an account. It does not log in.
func (g *Gate) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	if err := g.remote.Register(ctx, username, password); err != nil {
		if taskapi.IsConflict(err) {
			return rejected(ErrUserExists, err)
		}
		return rejected(ErrRegistrationFailed, err)
	}
	g.logger.Info("registered", "username", username)
	return nil
}

// Logout forgets the saved session.
func (g *Gate) Logout() error {
	return g.store.Clear()
}

// Current returns the saved session, or ErrNoSession / ErrSessionExpired.
// Tokens whose expiry cannot be read are returned as is; the server decides.
func (g *Gate) Current() (*Session, error) {
	s, err := g.store.Load()
	if err != nil {
		return nil, err
	}
	if auth.Expired(s.Token, g.now()) {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// RejectedError is a login or registration failure. Its text is the
// server's own message when the response carried one.
type RejectedError struct {
	// Message is shown to the user
	Message string
	// Reason is the session sentinel, e.g. ErrInvalidCredentials
	Reason error
	// Err is the underlying client error
	Err error
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	return e.Message
}

// Unwrap exposes both the reason and the cause to errors.Is/errors.As.
func (e *RejectedError) Unwrap() []error {
	return []error{e.Reason, e.Err}
}

func rejected(reason, err error) error {
	msg := reason.Error()
	var se *taskapi.StatusError
	if errors.As(err, &se) && se.Message != "" && se.Message != http.StatusText(se.StatusCode) {
		msg = se.Message
	} else if !errors.Is(err, taskapi.ErrUnauthorized) && !taskapi.IsConflict(err) {
		msg = fmt.Sprintf("%s: %v", reason, err)
	}
	return &RejectedError{Message: msg, Reason: reason, Err: err}
}
