// Package memory provides in-process implementations of the store
// interfaces. The task server uses them when no database is configured;
// all data is lost on restart.
package memory
