package reminder

import (
	"testing"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func reminderTask(id string, due time.Duration) model.Task {
	at := now.Add(due)
	return model.Task{
		ID:              id,
		Title:           "task " + id,
		DueDate:         &at,
		ReminderEnabled: true,
	}
}

func TestEvaluateWindow(t *testing.T) {
	tests := []struct {
		name      string
		task      model.Task
		wantEvent bool
		wantHours int
	}{
		{
			name:      "inside window",
			task:      reminderTask("1", 5*time.Hour),
			wantEvent: true,
			wantHours: 5,
		},
		{
			name:      "partial hour rounds up",
			task:      reminderTask("2", 90*time.Minute),
			wantEvent: true,
			wantHours: 2,
		},
		{
			name:      "exactly at horizon",
			task:      reminderTask("3", 24*time.Hour),
			wantEvent: true,
			wantHours: 24,
		},
		{
			name:      "beyond horizon",
			task:      reminderTask("4", 25*time.Hour),
			wantEvent: false,
		},
		{
			name:      "already due",
			task:      reminderTask("5", -time.Minute),
			wantEvent: false,
		},
		{
			name:      "due exactly now",
			task:      reminderTask("6", 0),
			wantEvent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Evaluate([]model.Task{tt.task}, now)

			if !tt.wantEvent {
				if len(events) != 0 {
					t.Fatalf("got %d events, want none", len(events))
				}
				return
			}

			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].HoursLeft != tt.wantHours {
				t.Errorf("HoursLeft = %d, want %d", events[0].HoursLeft, tt.wantHours)
			}
			if events[0].TaskID != tt.task.ID {
				t.Errorf("TaskID = %q, want %q", events[0].TaskID, tt.task.ID)
			}
		})
	}
}

func TestEvaluateSkipsIneligible(t *testing.T) {
	disabled := reminderTask("1", 2*time.Hour)
	disabled.ReminderEnabled = false

	completed := reminderTask("2", 2*time.Hour)
	completed.Completed = true

	undated := model.Task{ID: "3", Title: "no due date", ReminderEnabled: true}

	events := Evaluate([]model.Task{disabled, completed, undated}, now)
	if len(events) != 0 {
		t.Errorf("got %d events, want none", len(events))
	}
}

func TestEvaluateMultipleTasks(t *testing.T) {
	tasks := []model.Task{
		reminderTask("soon", time.Hour),
		reminderTask("later", 23*time.Hour),
		reminderTask("far", 48*time.Hour),
	}

	events := Evaluate(tasks, now)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].TaskID != "soon" || events[1].TaskID != "later" {
		t.Errorf("event order = [%s %s], want [soon later]", events[0].TaskID, events[1].TaskID)
	}
}
