// Package taskapi is the HTTP client for the task backend.
//
// It speaks the JSON protocol served by cmd/taskd: GET/POST /tasks,
// DELETE /tasks/{id}, POST /login and POST /register. Transport failures
// are reported as ErrUnreachable and non-2xx statuses as *StatusError
// carrying the server's message. A 401 also matches ErrUnauthorized.
package taskapi
