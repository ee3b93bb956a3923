package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/store"
)

type ownedTask struct {
	owner uuid.UUID
	seq   uint64
	task  domain.Task
}

// Storage holds users and tasks in maps guarded by a single lock.
type Storage struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]domain.User
	byUsername map[string]uuid.UUID
	tasks      map[string]ownedTask
	seq        uint64
}

var (
	_ store.UserStore = (*Storage)(nil)
	_ store.TaskStore = (*TaskStorage)(nil)
)

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{
		users:      make(map[uuid.UUID]domain.User),
		byUsername: make(map[string]uuid.UUID),
		tasks:      make(map[string]ownedTask),
	}
}

// Create implements store.UserStore.
func (s *Storage) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return store.ErrUsernameExists
	}
	s.users[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	return nil
}

// GetByID implements store.UserStore.
func (s *Storage) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// GetByUsername implements store.UserStore.
func (s *Storage) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

// Tasks returns the task view of the storage.
func (s *Storage) Tasks() *TaskStorage {
	return &TaskStorage{s: s}
}

// TaskStorage implements store.TaskStore on top of Storage. Its method
// names overlap with the user store, hence the separate type.
type TaskStorage struct {
	s *Storage
}

// Create implements store.TaskStore.
func (t *TaskStorage) Create(_ context.Context, owner uuid.UUID, task domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.users[owner]; !ok {
		return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, owner)
	}
	if _, exists := t.s.tasks[task.ID]; exists {
		return fmt.Errorf("%w: task %s", store.ErrDuplicate, task.ID)
	}
	t.s.seq++
	t.s.tasks[task.ID] = ownedTask{owner: owner, seq: t.s.seq, task: task}
	return nil
}

// List implements store.TaskStore.
func (t *TaskStorage) List(_ context.Context, owner uuid.UUID) ([]domain.Task, error) {
	t.s.mu.RLock()
	owned := make([]ownedTask, 0)
	for _, ot := range t.s.tasks {
		if ot.owner == owner {
			owned = append(owned, ot)
		}
	}
	t.s.mu.RUnlock()

	// Highest score first; insertion order among equal scores.
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].task.Score != owned[j].task.Score {
			return owned[i].task.Score > owned[j].task.Score
		}
		return owned[i].seq < owned[j].seq
	})

	tasks := make([]domain.Task, len(owned))
	for i, ot := range owned {
		tasks[i] = ot.task
	}
	return tasks, nil
}

// Delete implements store.TaskStore.
func (t *TaskStorage) Delete(_ context.Context, owner uuid.UUID, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	ot, ok := t.s.tasks[id]
	if !ok || ot.owner != owner {
		return store.ErrTaskNotFound
	}
	delete(t.s.tasks, id)
	return nil
}
