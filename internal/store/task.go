package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
)

// TaskStore defines the interface for per-user task persistence.
// Every method is scoped to the owning user; tasks of other users are
// invisible and behave as absent.
type TaskStore interface {
	// Create saves a task for the owner. The task ID must already be set.
	Create(ctx context.Context, owner uuid.UUID, task domain.Task) error

	// List returns the owner's tasks sorted by score, highest first.
	List(ctx context.Context, owner uuid.UUID) ([]domain.Task, error)

	// Delete removes one of the owner's tasks.
	// Returns ErrTaskNotFound if the task does not exist or is not owned by owner.
	Delete(ctx context.Context, owner uuid.UUID, id string) error
}
