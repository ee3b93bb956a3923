// Package service contains the task server's use cases. It coordinates the
// domain types, the priority engine and the storage interfaces from
// internal/store, and never depends on a concrete storage implementation.
//
// Services return sentinel errors for expected conditions (unknown task,
// taken username, bad credentials) and wrap everything else, so the API
// layer can map errors to status codes with errors.Is.
package service
