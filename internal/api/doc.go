// Package api serves the task backend over HTTP. It translates requests into
// calls on the user and task services and maps their errors to status codes
// and {"detail": ...} bodies.
package api
