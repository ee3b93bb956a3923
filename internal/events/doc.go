// Package events provides a small in-process publish/subscribe mechanism.
// The sync controller emits an event for every state transition (mode
// changes, task additions and deletions, rollbacks, discarded stale
// responses) so front ends can react without polling.
package events
