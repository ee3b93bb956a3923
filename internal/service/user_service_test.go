package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := mocks.NewMockUserStore()
	svc := NewUserService(users, &mocks.MockPasswordVerifier{}, discardLogger())

	user, err := svc.Register(ctx, "ann", "long-password")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "hashed:long-password", user.HashedPassword)

	_, err = svc.Register(ctx, "ann", "another-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := svc.Authenticate(ctx, "ann", "long-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ann", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "long-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	byID, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", byID.Username)
}

func TestUserService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(mocks.NewMockUserStore(), &mocks.MockPasswordVerifier{}, discardLogger())

	_, err := svc.Register(context.Background(), "ann", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), "", "long-password")
	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
}

func TestUserService_StoreFailures(t *testing.T) {
	t.Parallel()

	users := &mocks.MockUserStore{
		CreateFn: func(context.Context, *domain.User) error { return errors.New("connection lost") },
		GetByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("connection lost")
		},
		GetByIDFn: func(context.Context, uuid.UUID) (*domain.User, error) {
			return nil, errors.New("connection lost")
		},
	}
	svc := NewUserService(users, &mocks.MockPasswordVerifier{}, discardLogger())

	var se *ServiceError
	_, err := svc.Register(context.Background(), "ann", "long-password")
	assert.True(t, errors.As(err, &se))
	_, err = svc.Authenticate(context.Background(), "ann", "long-password")
	assert.True(t, errors.As(err, &se))
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.True(t, errors.As(err, &se))
}
