// Package session holds the signed-in user's credential.
//
// A Session is an explicit value passed to whoever needs it; nothing is kept
// in package-level state. Store implementations load and save it, and Gate
// drives the login, register and logout flows against the task backend.
package session
