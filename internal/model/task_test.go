package model

import (
	"testing"
	"time"
)

func TestPatchApply(t *testing.T) {
	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	base := Task{
		ID:        "1",
		Title:     "before",
		Priority:  PriorityLow,
		Category:  "Work",
		DueDate:   &due,
		Origin:    OriginServer,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	title := "after"
	high := PriorityHigh
	out := TaskPatch{Title: &title, Priority: &high}.Apply(base)

	if out.Title != "after" || out.Priority != PriorityHigh {
		t.Errorf("patched = %+v, want title/priority updated", out)
	}
	if out.Category != "Work" || out.DueDate == nil {
		t.Error("unset patch fields were modified")
	}
	if out.ID != base.ID || out.Origin != base.Origin || !out.CreatedAt.Equal(base.CreatedAt) {
		t.Error("identity fields changed by patch")
	}
}

func TestPatchApplyClearDueDate(t *testing.T) {
	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	base := Task{ID: "1", DueDate: &due}

	out := TaskPatch{ClearDueDate: true}.Apply(base)
	if out.DueDate != nil {
		t.Errorf("DueDate = %v after clear, want nil", out.DueDate)
	}

	// ClearDueDate wins over a simultaneously set DueDate.
	out = TaskPatch{ClearDueDate: true, DueDate: &due}.Apply(base)
	if out.DueDate != nil {
		t.Error("ClearDueDate did not take precedence over DueDate")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	out := Task{ID: "1", Title: "bare"}.Normalize()

	if out.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want medium", out.Priority)
	}
	if out.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", out.Category, DefaultCategory)
	}
	if out.Origin != OriginServer {
		t.Errorf("Origin = %q, want server", out.Origin)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due active", Task{DueDate: &past}, true},
		{"past due completed", Task{DueDate: &past, Completed: true}, false},
		{"future due", Task{DueDate: &future}, false},
		{"no due date", Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueTodayUsesCalendarDay(t *testing.T) {
	// Local times keep the calendar-day comparison stable across zones.
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	sameDayLater := time.Date(2026, 3, 15, 23, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 3, 16, 1, 0, 0, 0, time.Local)

	if !(Task{DueDate: &sameDayLater}).DueToday(now) {
		t.Error("same calendar day not flagged as due today")
	}
	if (Task{DueDate: &tomorrow}).DueToday(now) {
		t.Error("next day flagged as due today")
	}
	if (Task{DueDate: &sameDayLater, Completed: true}).DueToday(now) {
		t.Error("completed task flagged as due today")
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityMedium.Rank() ||
		PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Error("priority ranks are not strictly ordered")
	}
	if Priority("bogus").Rank() >= PriorityLow.Rank() {
		t.Error("unknown priority should rank below low")
	}
}
