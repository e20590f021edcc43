// Package reminder classifies tasks into the 24-hour lookahead window
// used for user-facing reminders.
package reminder

import (
	"math"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

// Window is the lookahead horizon for reminder-worthiness.
const Window = 24 * time.Hour

// Event is a single reminder occurrence for a task inside the window.
type Event struct {
	TaskID string
	Title  string

	// HoursLeft is the time until due, rounded up to whole hours.
	HoursLeft int

	DueAt time.Time
}

// Evaluate returns one event per task that has reminders enabled, is not
// completed, and is due within (0, 24h] of now. A task still inside the
// window on the next tick produces another event; de-duplication across
// ticks is left to the caller.
func Evaluate(tasks []model.Task, now time.Time) []Event {
	var events []Event
	for _, t := range tasks {
		if !t.ReminderEnabled || t.Completed || t.DueDate == nil {
			continue
		}

		until := t.DueDate.Sub(now)
		if until <= 0 || until > Window {
			continue
		}

		events = append(events, Event{
			TaskID:    t.ID,
			Title:     t.Title,
			HoursLeft: int(math.Ceil(until.Hours())),
			DueAt:     *t.DueDate,
		})
	}
	return events
}
