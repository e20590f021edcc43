package model

import "time"

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort weight of a priority (low < medium < high).
// Unknown values rank below low so malformed data sinks to the bottom.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Origin records whether a task entry was confirmed by the server or
// synthesized locally after a failed remote call.
type Origin string

const (
	// OriginServer marks entries that carry a server-assigned id.
	OriginServer Origin = "server"

	// OriginLocal marks optimistic entries awaiting reconciliation.
	OriginLocal Origin = "local"
)

// DefaultCategory is assigned when a task has no category.
const DefaultCategory = "General"

// Task is a user-created unit of work. The boolean Completed field is the
// single source of truth for completion; the remote status string is a
// derived view handled at the repository boundary.
type Task struct {
	// ID is the unique identifier within the store. Server-confirmed
	// entries carry the stringified numeric server id; locally-pending
	// entries carry a generated UUID.
	ID string `json:"id"`

	// Title is the display summary. Non-empty, enforced at the
	// creation boundary.
	Title string `json:"title"`

	// Description is the optional body text.
	Description string `json:"description"`

	// DueDate is the deadline. Nil means no deadline.
	DueDate *time.Time `json:"due_date,omitempty"`

	// Priority is one of low, medium, high.
	Priority Priority `json:"priority"`

	// Category is a free-text label, "General" when unset.
	Category string `json:"category"`

	// Completed indicates whether the task is done.
	Completed bool `json:"completed"`

	// ReminderEnabled controls whether the reminder evaluator
	// considers this task.
	ReminderEnabled bool `json:"reminder_enabled"`

	// Origin distinguishes server-confirmed from locally-pending entries.
	Origin Origin `json:"origin"`

	// CreatedAt is immutable once set.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the entry was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Pending reports whether the task is a locally-synthesized entry that
// has not been confirmed by the server.
func (t Task) Pending() bool {
	return t.Origin == OriginLocal
}

// Overdue reports whether the task is active with a due date strictly
// before now.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// DueToday reports whether the task is active and due on the same local
// calendar day as now.
func (t Task) DueToday(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Local().Date()
	y2, m2, d2 := now.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title           *string
	Description     *string
	DueDate         *time.Time
	ClearDueDate    bool
	Priority        *Priority
	Category        *string
	Completed       *bool
	ReminderEnabled *bool
}

// Apply merges the patch into a copy of t and returns the result.
// ID, Origin, and CreatedAt are never touched by a patch.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.ReminderEnabled != nil {
		t.ReminderEnabled = *p.ReminderEnabled
	}
	return t
}

// Normalize resolves unset priority and category to their defaults so no
// raw zero values leak past the adapter boundary.
func (t Task) Normalize() Task {
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	if t.Origin == "" {
		t.Origin = OriginServer
	}
	return t
}
