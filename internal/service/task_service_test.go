package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/mocks"
	"github.com/phrazzld/smarttask/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTaskService_Create(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	today := domain.DateOf(fixedNow)

	tests := []struct {
		name      string
		input     domain.TaskInput
		wantScore float64
		wantErr   error
	}{
		{
			name:      "due tomorrow",
			input:     domain.TaskInput{Title: "Presentation", Deadline: today.AddDays(1), Importance: 9, Complexity: 2},
			wantScore: 13.5,
		},
		{
			name:      "due in five days",
			input:     domain.TaskInput{Title: "Pipeline", Deadline: today.AddDays(5), Importance: 10, Complexity: 5},
			wantScore: 3.0,
		},
		{
			name:      "rounded to three places",
			input:     domain.TaskInput{Title: "Thirds", Deadline: today.AddDays(30), Importance: 10, Complexity: 3},
			wantScore: 3.333,
		},
		{
			name:      "zero complexity treated as one",
			input:     domain.TaskInput{Title: "Tiny", Deadline: today.AddDays(30), Importance: 4, Complexity: 0},
			wantScore: 4,
		},
		{
			name:    "past deadline",
			input:   domain.TaskInput{Title: "Late", Deadline: today.AddDays(-1), Importance: 5, Complexity: 1},
			wantErr: domain.ErrPastDeadline,
		},
		{
			name:    "importance out of range",
			input:   domain.TaskInput{Title: "Loud", Deadline: today, Importance: 11, Complexity: 1},
			wantErr: domain.ErrImportanceOutOfRange,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tasks := &mocks.MockTaskStore{}
			svc := newTaskService(tasks, nil, func() time.Time { return fixedNow }, discardLogger())

			got, err := svc.Create(context.Background(), owner, tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Empty(t, tasks.Created, "invalid input is never stored")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantScore, got.Score)
			assert.NotEmpty(t, got.ID)
			require.Len(t, tasks.Created, 1)
			assert.Equal(t, got, tasks.Created[0])
		})
	}
}

func TestTaskService_CreateStoreFailure(t *testing.T) {
	t.Parallel()

	tasks := &mocks.MockTaskStore{
		CreateFn: func(context.Context, uuid.UUID, domain.Task) error { return errors.New("disk full") },
	}
	svc := newTaskService(tasks, nil, func() time.Time { return fixedNow }, discardLogger())

	_, err := svc.Create(context.Background(), uuid.New(), domain.TaskInput{
		Title: "x", Deadline: domain.DateOf(fixedNow), Importance: 1, Complexity: 1,
	})
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "create_task", se.Operation)
}

func TestTaskService_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "deleted"},
		{name: "missing", storeErr: store.ErrTaskNotFound, wantErr: ErrTaskNotFound},
		{name: "database failure", storeErr: errors.New("timeout")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewTaskService(&mocks.MockTaskStore{
				DeleteFn: func(context.Context, uuid.UUID, string) error { return tc.storeErr },
			}, nil, discardLogger())

			err := svc.Delete(context.Background(), uuid.New(), "a")
			switch {
			case tc.storeErr == nil:
				assert.NoError(t, err)
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				var se *ServiceError
				assert.True(t, errors.As(err, &se))
			}
		})
	}
}

func TestTaskService_List(t *testing.T) {
	t.Parallel()

	want := []domain.Task{{ID: "a", Title: "A", Score: 2}}
	svc := NewTaskService(&mocks.MockTaskStore{
		ListFn: func(context.Context, uuid.UUID) ([]domain.Task, error) { return want, nil },
	}, nil, discardLogger())

	got, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.333, RoundScore(10.0/3))
	assert.Equal(t, 0.667, RoundScore(2.0/3))
	assert.Equal(t, 13.5, RoundScore(13.5))
}
