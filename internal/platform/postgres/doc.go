// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store. Connections go through the pgx
// database/sql driver and the schema is managed by embedded goose migrations.
package postgres
