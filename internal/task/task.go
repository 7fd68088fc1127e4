// Package task holds the task value type and the in-memory task store.
package task

// Task is a single to-do entry.
// Tasks are immutable values; use WithCompleted to derive a changed copy.
type Task struct {
	id        int
	title     string
	completed bool
}

// New creates a task value. Callers outside this package use it to rebuild
// tasks from persisted state; the store itself assigns ids through Add.
func New(id int, title string, completed bool) Task {
	return Task{id: id, title: title, completed: completed}
}

// ID returns the task identifier.
func (t Task) ID() int { return t.id }

// Title returns the task title.
func (t Task) Title() string { return t.title }

// Completed reports whether the task is done.
func (t Task) Completed() bool { return t.completed }

// WithCompleted returns a copy of t with the completed flag set to c.
func (t Task) WithCompleted(c bool) Task {
	t.completed = c
	return t
}

// Counts is the derived (total, completed) pair shown under the list.
type Counts struct {
	Total     int
	Completed int
}

// Remaining returns the number of open tasks.
func (c Counts) Remaining() int {
	return c.Total - c.Completed
}

// CountOf scans tasks and returns their counts.
func CountOf(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.completed {
			c.Completed++
		}
	}
	return c
}
