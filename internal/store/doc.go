// Package store defines the persistence interfaces of the task server and
// the errors every implementation returns. Implementations live in
// internal/platform/memory and internal/platform/postgres.
package store
