// Package tasksync keeps the client's task list in step with the backend.
//
// A Controller starts in ModeUnknown. Load moves it to ModeLive when the
// server answers, or to ModeFallback with a local demo set when it does not;
// Retry is the only way back. Deletes are applied optimistically and rolled
// back if the server refuses them. Every completion checks the store
// generation it started from, so a response that arrives after the list was
// replaced is dropped instead of applied to the wrong data.
//
// All failures are *Error values carrying a Kind; use errors.Is with
// ErrValidation, ErrConnectivity, ErrWrite or ErrAuth to branch on them.
package tasksync
