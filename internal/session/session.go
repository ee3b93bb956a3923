package session

import (
	"errors"
	"strings"
)

var (
	// ErrNoSession is returned when no session has been saved.
	ErrNoSession = errors.New("not logged in")

	// ErrSessionExpired is returned when the saved token is past its expiry.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrInvalidCredentials is returned for a rejected username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserExists is returned by Register when the username is taken.
	ErrUserExists = errors.New("username already registered")

	// ErrLoginFailed and ErrRegistrationFailed cover any other failure of
	// the corresponding request.
	ErrLoginFailed        = errors.New("login failed")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Session is an authenticated identity.
type Session struct {
	Username  string `yaml:"username"`
	Token     string `yaml:"token"`
	TokenType string `yaml:"token_type"`
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Store persists a session between runs.
type Store interface {
	// Load returns the saved session or ErrNoSession.
	Load() (*Session, error)
	Save(s *Session) error
	// Clear removes the saved session. Clearing an absent session is not an error.
	Clear() error
}
