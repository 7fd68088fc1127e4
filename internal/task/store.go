package task

import (
	"strings"
	"sync"
)

// Syncer receives the full task sequence after every effective mutation.
// Sync runs while the store is locked and must not call back into it.
type Syncer interface {
	Sync(tasks []Task, nextID int)
}

// SyncFunc adapts a function to the Syncer interface.
type SyncFunc func(tasks []Task, nextID int)

// Sync calls f(tasks, nextID).
func (f SyncFunc) Sync(tasks []Task, nextID int) { f(tasks, nextID) }

// Option configures a Store.
type Option func(*Store)

// WithSyncer sets the syncer notified after each mutation.
func WithSyncer(s Syncer) Option {
	return func(st *Store) { st.syncer = s }
}

// Store is the in-memory authority for the task sequence and id assignment.
// Mutations that change nothing (empty title, unknown id) do not notify the syncer.
type Store struct {
	mu     sync.Mutex
	tasks  []Task
	next   int
	syncer Syncer
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSyncer replaces the syncer. A nil syncer disables notifications.
func (s *Store) SetSyncer(syncer Syncer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncer = syncer
}

// Initialize replaces the sequence with seed and derives the counter from it:
// 1 + max id, or 0 for an empty seed. The syncer is not notified.
func (s *Store) Initialize(seed []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]Task(nil), seed...)
	s.next = 0
	for _, t := range s.tasks {
		if t.id >= s.next {
			s.next = t.id + 1
		}
	}
}

// AdvanceCounter raises the next id to next if next is larger. It never lowers it.
func (s *Store) AdvanceCounter(next int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next > s.next {
		s.next = next
	}
}

// NextID returns the id the next successful Add will assign.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Add appends a task titled with the trimmed title and returns the snapshot.
// A title that is empty after trimming is ignored.
func (s *Store) Add(title string) []Task {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		return s.snapshotLocked()
	}

	s.tasks = append(s.tasks, Task{id: s.next, title: title})
	s.next++
	return s.commitLocked()
}

// Toggle flips the completed flag of the task with the given id by replacing
// it with a copy at the same position. Unknown ids are ignored.
func (s *Store) Toggle(id int) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.snapshotLocked()
	}

	tasks := append([]Task(nil), s.tasks...)
	tasks[i] = tasks[i].WithCompleted(!tasks[i].completed)
	s.tasks = tasks
	return s.commitLocked()
}

// PurgeCompleted removes every completed task, keeping the order of the rest.
func (s *Store) PurgeCompleted() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.completed {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.commitLocked()
}

// Clear removes all tasks. The id counter is kept so ids are never reused.
func (s *Store) Clear() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	return s.commitLocked()
}

// Snapshot returns a copy of the current sequence.
func (s *Store) Snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Find returns the task with the given id.
func (s *Store) Find(id int) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Counts returns the (total, completed) pair of the current sequence.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountOf(s.tasks)
}

func (s *Store) indexLocked(id int) int {
	for i, t := range s.tasks {
		if t.id == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// commitLocked notifies the syncer with a fresh copy and returns another one
// for the caller.
func (s *Store) commitLocked() []Task {
	if s.syncer != nil {
		s.syncer.Sync(s.snapshotLocked(), s.next)
	}
	return s.snapshotLocked()
}
