package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/platform/postgres"
	"github.com/phrazzld/smarttask/internal/store"
	"github.com/phrazzld/smarttask/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStores_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()
	today := domain.DateOf(time.Now())

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		tasks := postgres.NewPostgresTaskStore(tx, nil)

		owner, err := domain.NewUser("it-"+uuid.NewString()[:8], "$2a$10$hash")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, owner))
		assert.ErrorIs(t, users.Create(ctx, &domain.User{
			ID: uuid.New(), Username: owner.Username, HashedPassword: "x",
			CreatedAt: owner.CreatedAt, UpdatedAt: owner.UpdatedAt,
		}), store.ErrUsernameExists)

		got, err := users.GetByUsername(ctx, owner.Username)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.ID)

		low := domain.Task{ID: uuid.NewString(), Title: "low", Deadline: today.AddDays(10), Importance: 2, Complexity: 1, Score: 2}
		high := domain.Task{ID: uuid.NewString(), Title: "high", Deadline: today.AddDays(1), Importance: 9, Complexity: 2, Score: 13.5}
		require.NoError(t, tasks.Create(ctx, owner.ID, low))
		require.NoError(t, tasks.Create(ctx, owner.ID, high))

		listed, err := tasks.List(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, high, listed[0])
		assert.Equal(t, low, listed[1])

		assert.ErrorIs(t, tasks.Delete(ctx, uuid.New(), high.ID), store.ErrTaskNotFound)
		require.NoError(t, tasks.Delete(ctx, owner.ID, high.ID))
		assert.ErrorIs(t, tasks.Delete(ctx, owner.ID, high.ID), store.ErrTaskNotFound)
	})
}
