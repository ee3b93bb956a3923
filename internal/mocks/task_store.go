package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	CreateFn func(ctx context.Context, owner uuid.UUID, task domain.Task) error
	ListFn   func(ctx context.Context, owner uuid.UUID) ([]domain.Task, error)
	DeleteFn func(ctx context.Context, owner uuid.UUID, id string) error

	// Created records every task passed to Create
	Created []domain.Task
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, owner uuid.UUID, task domain.Task) error {
	m.Created = append(m.Created, task)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, owner, task)
	}
	return nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, owner uuid.UUID) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}
	return []domain.Task{}, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, id)
	}
	return nil
}
