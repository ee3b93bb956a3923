// Package taskstore holds the client's in-memory, score-ordered task collection.
package taskstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/phrazzld/smarttask/internal/domain"
)

var (
	// ErrDuplicateID is returned when a task with the same id is already held.
	ErrDuplicateID = errors.New("task id already exists")

	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
)

// Removed captures a task taken out of the store together with the position
// it occupied, so the removal can be undone exactly.
type Removed struct {
	Task       domain.Task
	Index      int
	Generation uint64
}

// Store is an ordered collection of tasks keyed by id.
// Tasks are kept sorted by descending score after every mutation.
type Store struct {
	mu         sync.RWMutex
	tasks      []domain.Task
	generation uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{tasks: make([]domain.Task, 0)}
}

// List returns a copy of the tasks, highest score first.
func (s *Store) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// Generation identifies the current wholesale content of the store.
// It changes only on ReplaceAll, so an operation that started under one
// generation can tell whether its result still applies.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Add inserts a task at its score position.
func (s *Store) Add(task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(task.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, task.ID)
	}

	lo, _ := s.validRange(task.Score)
	s.insertAt(lo, task)
	return nil
}

// Remove takes the task with the given id out of the store.
func (s *Store) Remove(id string) (Removed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Removed{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := Removed{Task: s.tasks[i], Index: i, Generation: s.generation}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// Restore puts a removed task back. The recorded index is used when it still
// satisfies the ordering; otherwise the nearest valid position is taken, so
// tasks added or removed in the meantime are left untouched.
func (s *Store) Restore(removed Removed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(removed.Task.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, removed.Task.ID)
	}

	lo, hi := s.validRange(removed.Task.Score)
	pos := removed.Index
	if pos < lo {
		pos = lo
	}
	if pos > hi {
		pos = hi
	}
	s.insertAt(pos, removed.Task)
	return nil
}

// ReplaceAll swaps the whole content of the store and starts a new generation.
func (s *Store) ReplaceAll(tasks []domain.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	next := make([]domain.Task, len(tasks))
	copy(next, tasks)
	sort.SliceStable(next, func(i, j int) bool { return next[i].Score > next[j].Score })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = next
	s.generation++
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// validRange returns the inclusive range of insertion indexes that keep the
// slice sorted for a task with the given score.
func (s *Store) validRange(score float64) (lo, hi int) {
	lo = sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].Score <= score })
	hi = sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].Score < score })
	return lo, hi
}

func (s *Store) insertAt(i int, task domain.Task) {
	s.tasks = append(s.tasks, domain.Task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = task
}
