package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	LoginFn    func(ctx context.Context, username, password string) (taskapi.Credential, error)
	RegisterFn func(ctx context.Context, username, password string) error
}

func (f *fakeAuthenticator) Login(ctx context.Context, username, password string) (taskapi.Credential, error) {
	return f.LoginFn(ctx, username, password)
}

func (f *fakeAuthenticator) Register(ctx context.Context, username, password string) error {
	return f.RegisterFn(ctx, username, password)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ann",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key-the-client-never-verifies"))
	require.NoError(t, err)
	return tok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGate_Login(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	gate := NewGate(&fakeAuthenticator{
		LoginFn: func(_ context.Context, username, password string) (taskapi.Credential, error) {
			if password != "right-password" {
				return taskapi.Credential{}, taskapi.ErrUnauthorized
			}
			return taskapi.Credential{AccessToken: "tok-" + username, TokenType: "bearer"}, nil
		},
	}, store, discardLogger())

	_, err := gate.Login(context.Background(), "ann", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession, "failed login saves nothing")

	_, err = gate.Login(context.Background(), " ", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	s, err := gate.Login(context.Background(), " ann ", "right-password")
	require.NoError(t, err)
	assert.Equal(t, &Session{Username: "ann", Token: "tok-ann", TokenType: "bearer"}, s)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, s, saved)
}

func TestGate_LoginUnreachable(t *testing.T) {
	t.Parallel()

	gate := NewGate(&fakeAuthenticator{
		LoginFn: func(context.Context, string, string) (taskapi.Credential, error) {
			return taskapi.Credential{}, taskapi.ErrUnreachable
		},
	}, &MemoryStore{}, discardLogger())

	_, err := gate.Login(context.Background(), "ann", "pw")
	assert.ErrorIs(t, err, taskapi.ErrUnreachable)
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestGate_Register(t *testing.T) {
	t.Parallel()

	gate := NewGate(&fakeAuthenticator{
		RegisterFn: func(_ context.Context, username, _ string) error {
			if username == "taken" {
				return &taskapi.StatusError{StatusCode: http.StatusConflict, Message: "User already exists"}
			}
			return nil
		},
	}, &MemoryStore{}, discardLogger())

	assert.NoError(t, gate.Register(context.Background(), "ann", "long-enough"))
	assert.ErrorIs(t, gate.Register(context.Background(), "taken", "long-enough"), ErrUserExists)
	assert.ErrorIs(t, gate.Register(context.Background(), "ann", "short"), domain.ErrPasswordTooShort)
	assert.ErrorIs(t, gate.Register(context.Background(), "bad name", "long-enough"), domain.ErrInvalidUsername)
}

func TestGate_ServerMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		loginErr   error
		regErr     error
		wantReason error
		wantMsg    string
	}{
		{
			name:       "login rejected with detail",
			loginErr:   &taskapi.StatusError{StatusCode: http.StatusUnauthorized, Message: "Account locked after 5 attempts"},
			wantReason: ErrInvalidCredentials,
			wantMsg:    "Account locked after 5 attempts",
		},
		{
			name:       "login rejected without body",
			loginErr:   &taskapi.StatusError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"},
			wantReason: ErrInvalidCredentials,
			wantMsg:    ErrInvalidCredentials.Error(),
		},
		{
			name:       "register conflict with detail",
			regErr:     &taskapi.StatusError{StatusCode: http.StatusConflict, Message: "Username reserved by admin"},
			wantReason: ErrUserExists,
			wantMsg:    "Username reserved by admin",
		},
		{
			name:       "register validation detail",
			regErr:     &taskapi.StatusError{StatusCode: http.StatusUnprocessableEntity, Message: "Invalid username: too long"},
			wantReason: ErrRegistrationFailed,
			wantMsg:    "Invalid username: too long",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gate := NewGate(&fakeAuthenticator{
				LoginFn: func(context.Context, string, string) (taskapi.Credential, error) {
					return taskapi.Credential{}, tc.loginErr
				},
				RegisterFn: func(context.Context, string, string) error { return tc.regErr },
			}, &MemoryStore{}, discardLogger())

			var err error
			if tc.loginErr != nil {
				_, err = gate.Login(context.Background(), "ann", "long-enough")
			} else {
				err = gate.Register(context.Background(), "ann", "long-enough")
			}

			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
			var rej *RejectedError
			require.ErrorAs(t, err, &rej)
			assert.ErrorIs(t, err, tc.wantReason)
			var se *taskapi.StatusError
			assert.ErrorAs(t, err, &se, "client error stays in the chain")
		})
	}
}

func TestGate_ServerMessagesOverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Account locked after 5 attempts"}`))
		case "/register":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"detail":"Username reserved by admin"}`))
		}
	}))
	t.Cleanup(srv.Close)

	client, err := taskapi.NewClient(srv.URL, taskapi.WithLogger(discardLogger()))
	require.NoError(t, err)
	gate := NewGate(client, &MemoryStore{}, discardLogger())

	_, err = gate.Login(context.Background(), "ann", "long-enough")
	assert.EqualError(t, err, "Account locked after 5 attempts")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, taskapi.ErrUnauthorized)

	err = gate.Register(context.Background(), "ann", "long-enough")
	assert.EqualError(t, err, "Username reserved by admin")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestGate_Current(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *Session
		wantErr error
	}{
		{name: "no session", wantErr: ErrNoSession},
		{name: "valid jwt", session: &Session{Username: "ann", Token: signedToken(t, now.Add(time.Hour))}},
		{name: "expired jwt", session: &Session{Username: "ann", Token: signedToken(t, now.Add(-time.Minute))}, wantErr: ErrSessionExpired},
		{name: "opaque token", session: &Session{Username: "ann", Token: "opaque"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := &MemoryStore{}
			if tc.session != nil {
				require.NoError(t, store.Save(tc.session))
			}
			gate := NewGate(&fakeAuthenticator{}, store, discardLogger())
			gate.now = func() time.Time { return now }

			got, err := gate.Current()
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.session.Token, got.Token)
		})
	}
}

func TestGate_Logout(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	require.NoError(t, store.Save(&Session{Username: "ann", Token: "tok"}))
	gate := NewGate(&fakeAuthenticator{}, store, discardLogger())

	require.NoError(t, gate.Logout())
	_, err := gate.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}
