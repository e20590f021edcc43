package store

import (
	"sync"

	"github.com/nhle/tasksync/internal/model"
)

// Store holds the authoritative in-memory task collection. All mutations
// are synchronous and immediately visible to subsequent reads. A mutex
// guards the collection because the background pollers read snapshots
// while the UI mutates.
type Store struct {
	mu      sync.Mutex
	tasks   []model.Task
	loading bool
	lastErr string
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// ReplaceAll discards the current collection and installs the given one.
// Used after a full fetch. The input slice is copied; entries are
// normalized so no unset priority or category survives.
func (s *Store) ReplaceAll(tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]model.Task, len(tasks))
	for i, t := range tasks {
		s.tasks[i] = t.Normalize()
	}
}

// Insert appends a task to the collection. When the id collides with an
// existing entry, the new entry replaces the old one in place, keeping
// its position. Replace-on-collision is deliberate: a re-confirmed server
// record supersedes whatever the store held for that id.
func (s *Store) Insert(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task = task.Normalize()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// Update merges the patch into the task with the given id and reports
// whether the task was found. Absent ids are a no-op.
func (s *Store) Update(id string, patch model.TaskPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks[i] = patch.Apply(t).Normalize()
			return true
		}
	}
	return false
}

// Replace swaps the stored entry with the given id for the provided task,
// which may carry a different id (a pending entry confirmed by the server
// comes back under its server-assigned id). Reports whether the id was
// found.
func (s *Store) Replace(id string, task model.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks[i] = task.Normalize()
			return true
		}
	}
	return false
}

// Remove deletes the task with the given id and reports whether it was
// present. Absent ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Snapshot returns a copy of the current collection in insertion order.
func (s *Store) Snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// SetLoading toggles the in-flight fetch flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError records the last operation error message. An empty string
// clears it; successful operations call SetError("").
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// Err returns the last recorded error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
