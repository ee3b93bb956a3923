package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/domain/priority"
	"github.com/phrazzld/smarttask/internal/store"
)

// TaskService provides the per-user task operations of the server.
type TaskService interface {
	// List returns the user's tasks, highest score first.
	List(ctx context.Context, owner uuid.UUID) ([]domain.Task, error)

	// Create validates input, scores it and stores it for the user.
	// Validation failures wrap domain.ErrValidation.
	Create(ctx context.Context, owner uuid.UUID, input domain.TaskInput) (domain.Task, error)

	// Delete removes one of the user's tasks. Returns ErrTaskNotFound when
	// the task does not exist or is owned by someone else.
	Delete(ctx context.Context, owner uuid.UUID, id string) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	engine *priority.Engine
	now    func() time.Time
	logger *slog.Logger
}

// NewTaskService creates a TaskService. A nil engine uses the default tiers.
func NewTaskService(tasks store.TaskStore, engine *priority.Engine, logger *slog.Logger) TaskService {
	return newTaskService(tasks, engine, time.Now, logger)
}

func newTaskService(tasks store.TaskStore, engine *priority.Engine, now func() time.Time, logger *slog.Logger) *taskServiceImpl {
	if engine == nil {
		engine = priority.NewDefaultEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		engine: engine,
		now:    now,
		logger: logger.With("component", "task_service"),
	}
}

// RoundScore rounds a score to three decimal places for storage.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context, owner uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, owner)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", owner)
		return nil, NewServiceError("task", "list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(ctx context.Context, owner uuid.UUID, input domain.TaskInput) (domain.Task, error) {
	now := s.now()
	if err := input.Validate(domain.DateOf(now)); err != nil {
		return domain.Task{}, err
	}

	task := input.ToTask(uuid.NewString())
	task.Score = RoundScore(s.engine.Score(task, now))

	if err := s.tasks.Create(ctx, owner, task); err != nil {
		s.logger.Error("failed to save task", "error", err, "user_id", owner)
		return domain.Task{}, NewServiceError("task", "create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", owner,
		"score", task.Score)
	return task, nil
}

// Delete implements TaskService.
func (s *taskServiceImpl) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	err := s.tasks.Delete(ctx, owner, id)
	switch {
	case err == nil:
		s.logger.Info("task deleted", "task_id", id, "user_id", owner)
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrTaskNotFound
	default:
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return NewServiceError("task", "delete_task", "failed to delete task", err)
	}
}
