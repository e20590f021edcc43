package remote

import (
	"testing"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

func TestPriorityFromRemote(t *testing.T) {
	tests := []struct {
		in   int
		want model.Priority
	}{
		{1, model.PriorityLow},
		{2, model.PriorityMedium},
		{3, model.PriorityHigh},
		{0, model.PriorityMedium},
		{99, model.PriorityMedium},
	}

	for _, tt := range tests {
		if got := PriorityFromRemote(tt.in); got != tt.want {
			t.Errorf("PriorityFromRemote(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityToRemote(t *testing.T) {
	tests := []struct {
		in   model.Priority
		want int
	}{
		{model.PriorityLow, 1},
		{model.PriorityMedium, 2},
		{model.PriorityHigh, 3},
		{model.Priority("bogus"), 2},
	}

	for _, tt := range tests {
		if got := PriorityToRemote(tt.in); got != tt.want {
			t.Errorf("PriorityToRemote(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStatusToCompleted(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"completed", true},
		{"done", true},
		{"pending", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := StatusToCompleted(tt.status); got != tt.want {
			t.Errorf("StatusToCompleted(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCompletedToStatusNeverWritesDone(t *testing.T) {
	if got := CompletedToStatus(true); got != "completed" {
		t.Errorf("CompletedToStatus(true) = %q, want completed", got)
	}
	if got := CompletedToStatus(false); got != "pending" {
		t.Errorf("CompletedToStatus(false) = %q, want pending", got)
	}
}

func TestRecordToTaskDefaults(t *testing.T) {
	r := taskRecord{
		ID:        42,
		Title:     "bare record",
		Status:    "pending",
		CreatedAt: "2026-03-01T10:00:00Z",
	}

	task := recordToTask(r)

	if task.ID != "42" {
		t.Errorf("ID = %q, want 42", task.ID)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}
	if task.Category != model.DefaultCategory {
		t.Errorf("Category = %q, want %q", task.Category, model.DefaultCategory)
	}
	if !task.ReminderEnabled {
		t.Error("ReminderEnabled = false, want default true")
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", task.DueDate)
	}
	if task.Origin != model.OriginServer {
		t.Errorf("Origin = %q, want server", task.Origin)
	}
}

func TestRecordToTaskExplicitFields(t *testing.T) {
	off := false
	r := taskRecord{
		ID:              7,
		Title:           "full record",
		Description:     "details",
		DueDate:         "2026-04-01T09:00:00Z",
		Priority:        3,
		Category:        "Work",
		ReminderEnabled: &off,
		Status:          "done",
		CreatedAt:       "2026-03-01T10:00:00Z",
	}

	task := recordToTask(r)

	if !task.Completed {
		t.Error("Completed = false for status done")
	}
	if task.ReminderEnabled {
		t.Error("ReminderEnabled = true, want explicit false")
	}
	if task.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want high", task.Priority)
	}
	if task.DueDate == nil {
		t.Fatal("DueDate = nil, want parsed value")
	}
	want := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if !task.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, want)
	}
}

func TestDraftToPayloadShape(t *testing.T) {
	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	draft := model.Task{
		Title:           "new task",
		Priority:        model.PriorityHigh,
		Completed:       true,
		ReminderEnabled: true,
		DueDate:         &due,
	}

	payload := draftToPayload(draft)

	if payload["status"] != "completed" {
		t.Errorf("status = %v, want completed", payload["status"])
	}
	if payload["priority"] != 3 {
		t.Errorf("priority = %v, want 3", payload["priority"])
	}
	if payload["due_date"] != "2026-04-01T09:00:00Z" {
		t.Errorf("due_date = %v, want RFC 3339 UTC", payload["due_date"])
	}
	if payload["category"] != model.DefaultCategory {
		t.Errorf("category = %v, want normalized default", payload["category"])
	}
}

func TestPatchToPayloadOnlySetFields(t *testing.T) {
	completed := true
	payload := patchToPayload(model.TaskPatch{Completed: &completed})

	if len(payload) != 1 {
		t.Errorf("payload has %d keys, want just status: %v", len(payload), payload)
	}
	if payload["status"] != "completed" {
		t.Errorf("status = %v, want completed", payload["status"])
	}
}

func TestPatchToPayloadClearDueDate(t *testing.T) {
	payload := patchToPayload(model.TaskPatch{ClearDueDate: true})

	v, present := payload["due_date"]
	if !present {
		t.Fatal("due_date key missing for ClearDueDate")
	}
	if v != nil {
		t.Errorf("due_date = %v, want explicit null", v)
	}
}

func TestParseAPITime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"rfc3339",
			"2026-03-01T10:30:00Z",
			time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			"fractional no zone",
			"2026-03-01T10:30:00.123456",
			time.Date(2026, 3, 1, 10, 30, 0, 123456000, time.UTC),
		},
		{
			"date only",
			"2026-03-01",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{"empty", "", time.Time{}},
		{"garbage", "not-a-time", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAPITime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseAPITime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
