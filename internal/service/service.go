// Package service defines the backend-agnostic interfaces the front ends use.
package service

import (
	"context"

	"todo/internal/task"
)

// Service defines the task operations available to commands and the TUI.
// Front ends never import the storage backend directly.
// *task.Store implements it.
type Service interface {
	// Snapshot returns the current tasks in insertion order.
	Snapshot() []task.Task

	// Counts returns the (total, completed) pair.
	Counts() task.Counts

	// Find returns the task with the given id.
	Find(id int) (task.Task, bool)

	// Add creates a task. Titles that are empty after trimming are ignored.
	Add(title string) []task.Task

	// Toggle flips a task's completed flag. Unknown ids are ignored.
	Toggle(id int) []task.Task

	// PurgeCompleted removes all completed tasks.
	PurgeCompleted() []task.Task

	// Clear removes all tasks.
	Clear() []task.Task
}

var _ Service = (*task.Store)(nil)

// KV is the opaque string-keyed store the task list is persisted to.
// A KV is opened once at startup and closed on exit.
type KV interface {
	// Get returns the value under key; ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying handle.
	Close() error
}
