package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return issued })
	token, err := svc.GenerateToken(context.Background(), uuid.New(), "ann")
	require.NoError(t, err)

	exp, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour).Unix(), exp.Unix())

	assert.False(t, Expired(token, issued.Add(59*time.Minute)))
	assert.True(t, Expired(token, issued.Add(time.Hour)))
}

func TestTokenExpiry_Errors(t *testing.T) {
	t.Parallel()

	_, err := TokenExpiry("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenExpiry("opaque-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, Expired("opaque-token", time.Now()), "unreadable tokens are left to the server")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ann"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = TokenExpiry(noExp)
	assert.ErrorIs(t, err, ErrNoExpiry)
}
