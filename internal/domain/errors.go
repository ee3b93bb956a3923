// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyTitle is returned when a task has no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrImportanceOutOfRange is returned when importance is outside [1,10].
	ErrImportanceOutOfRange = errors.New("importance must be between 1 and 10")

	// ErrMissingDeadline is returned when a task has no deadline.
	ErrMissingDeadline = errors.New("deadline is required")

	// ErrPastDeadline is returned when a new task's deadline is before today.
	ErrPastDeadline = errors.New("deadline cannot be in the past")

	// ErrNegativeScore is returned when a task carries a negative score.
	ErrNegativeScore = errors.New("score cannot be negative")
)
