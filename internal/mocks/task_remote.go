package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/smarttask/internal/domain"
)

// MockTaskRemote implements tasksync.Remote for testing. Unset functions
// succeed with empty results.
type MockTaskRemote struct {
	ListTasksFn  func(ctx context.Context) ([]domain.Task, error)
	CreateTaskFn func(ctx context.Context, input domain.TaskInput) (domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls []string
	token string
}

// ListTasks implements tasksync.Remote
func (m *MockTaskRemote) ListTasks(ctx context.Context) ([]domain.Task, error) {
	m.record("list")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []domain.Task{}, nil
}

// CreateTask implements tasksync.Remote
func (m *MockTaskRemote) CreateTask(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	m.record("create")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return input.ToTask("remote-1"), nil
}

// DeleteTask implements tasksync.Remote
func (m *MockTaskRemote) DeleteTask(ctx context.Context, id string) error {
	m.record("delete")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// SetToken implements tasksync.Remote
func (m *MockTaskRemote) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// Token returns the last token set.
func (m *MockTaskRemote) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Calls returns the remote methods invoked so far, in order.
func (m *MockTaskRemote) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockTaskRemote) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}
