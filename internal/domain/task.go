package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Importance bounds.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Task is a prioritised unit of work.
// Score is derived: computed locally by the priority engine or supplied by the server.
type Task struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Deadline   Date    `json:"deadline"`
	Importance int     `json:"importance"`
	Complexity int     `json:"complexity"`
	Score      float64 `json:"score"`
}

// wireTask mirrors Task for decoding. IDs may arrive as JSON numbers and the
// score may arrive under the name "priority".
type wireTask struct {
	ID         json.RawMessage `json:"id"`
	Title      string          `json:"title"`
	Deadline   Date            `json:"deadline"`
	Importance int             `json:"importance"`
	Complexity int             `json:"complexity"`
	Score      *float64        `json:"score"`
	Priority   *float64        `json:"priority"`
}

// UnmarshalJSON decodes a task as returned by any of the supported backends.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}

	*t = Task{
		ID:         id,
		Title:      w.Title,
		Deadline:   w.Deadline,
		Importance: w.Importance,
		Complexity: w.Complexity,
	}
	switch {
	case w.Score != nil:
		t.Score = *w.Score
	case w.Priority != nil:
		t.Score = *w.Priority
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: task id must be a string or number", ErrInvalidFormat)
	}
	return n.String(), nil
}

// Validate checks the invariants a task must hold at rest.
// Past deadlines are allowed here; only creation rejects them.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: task id cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	if t.Score < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNegativeScore)
	}
	return nil
}

// TaskInput is the user-submitted data for a new task.
type TaskInput struct {
	Title      string `json:"title"`
	Deadline   Date   `json:"deadline"`
	Importance int    `json:"importance"`
	Complexity int    `json:"complexity"`
}

// Normalize trims the title and raises a non-positive complexity to 1.
func (in TaskInput) Normalize() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Complexity <= 0 {
		in.Complexity = 1
	}
	return in
}

// Validate checks the input against today's date.
// All failures wrap ErrValidation.
func (in TaskInput) Validate(today Date) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	if in.Importance < MinImportance || in.Importance > MaxImportance {
		return fmt.Errorf("%w: %w", ErrValidation, ErrImportanceOutOfRange)
	}
	if in.Deadline.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingDeadline)
	}
	if in.Deadline.Before(today) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrPastDeadline)
	}
	return nil
}

// ToTask builds an unscored task from the input with the given id.
func (in TaskInput) ToTask(id string) Task {
	n := in.Normalize()
	return Task{
		ID:         id,
		Title:      n.Title,
		Deadline:   n.Deadline,
		Importance: n.Importance,
		Complexity: n.Complexity,
	}
}
