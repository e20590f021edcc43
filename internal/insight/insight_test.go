package insight

import (
	"testing"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

// Local times keep the due-today classification stable across zones.
var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

func task(id string, completed bool, due *time.Time) model.Task {
	return model.Task{
		ID:        id,
		Title:     "task " + id,
		Priority:  model.PriorityMedium,
		Completed: completed,
		DueDate:   due,
		CreatedAt: now.Add(-72 * time.Hour),
	}
}

func at(offset time.Duration) *time.Time {
	t := now.Add(offset)
	return &t
}

func TestComputeEmptySnapshot(t *testing.T) {
	ins := Compute(nil, now)

	if ins.Total != 0 || ins.CompletionRate != 0 {
		t.Errorf("empty snapshot: total=%d rate=%d, want zeros", ins.Total, ins.CompletionRate)
	}
	if ins.AvgCompletionDays != nil {
		t.Errorf("AvgCompletionDays = %v, want nil", *ins.AvgCompletionDays)
	}
}

func TestComputeClassification(t *testing.T) {
	tasks := []model.Task{
		task("overdue", false, at(-26*time.Hour)),
		task("today", false, at(3*time.Hour)),
		task("upcoming", false, at(48*time.Hour)),
		task("undated", false, nil),
		task("done", true, at(-24*time.Hour)),
	}

	ins := Compute(tasks, now)

	if ins.Total != 5 {
		t.Errorf("Total = %d, want 5", ins.Total)
	}
	if ins.Completed != 1 || ins.Active != 4 {
		t.Errorf("Completed=%d Active=%d, want 1/4", ins.Completed, ins.Active)
	}
	if ins.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", ins.Overdue)
	}
	if ins.DueToday != 1 {
		t.Errorf("DueToday = %d, want 1", ins.DueToday)
	}
	if ins.Upcoming != 1 {
		t.Errorf("Upcoming = %d, want 1", ins.Upcoming)
	}
	// 1 of 5 completed rounds to 20.
	if ins.CompletionRate != 20 {
		t.Errorf("CompletionRate = %d, want 20", ins.CompletionRate)
	}
}

func TestComputeCompletionRateRounds(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"all done", 3, 3, 100},
		{"none done", 0, 4, 0},
		{"one third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []model.Task
			for i := 0; i < tt.total; i++ {
				tasks = append(tasks, task(string(rune('a'+i)), i < tt.completed, nil))
			}

			ins := Compute(tasks, now)
			if ins.CompletionRate != tt.want {
				t.Errorf("CompletionRate = %d, want %d", ins.CompletionRate, tt.want)
			}
		})
	}
}

func TestComputeAvgCompletionDays(t *testing.T) {
	created := now.Add(-96 * time.Hour) // 4 days ago

	withDue := model.Task{
		ID: "1", Completed: true,
		CreatedAt: created,
		DueDate:   at(-48 * time.Hour), // 2 days after creation
	}
	withoutDue := model.Task{
		ID: "2", Completed: true,
		CreatedAt: created, // falls back to now: 4 days
	}

	ins := Compute([]model.Task{withDue, withoutDue}, now)

	if ins.AvgCompletionDays == nil {
		t.Fatal("AvgCompletionDays = nil, want value")
	}
	// (2 + 4) / 2 = 3.00
	if got := *ins.AvgCompletionDays; got != 3.00 {
		t.Errorf("AvgCompletionDays = %v, want 3.00", got)
	}
}

func TestComputeAvgClampsNegativeSpans(t *testing.T) {
	created := now.Add(-24 * time.Hour)
	backwards := model.Task{
		ID: "1", Completed: true,
		CreatedAt: created,
		DueDate:   at(-48 * time.Hour), // due before creation
	}

	ins := Compute([]model.Task{backwards}, now)

	if ins.AvgCompletionDays == nil || *ins.AvgCompletionDays != 0 {
		t.Errorf("AvgCompletionDays = %v, want 0", ins.AvgCompletionDays)
	}
}

func TestDistribution(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Priority: model.PriorityHigh},
		{ID: "2", Priority: model.PriorityMedium},
		{ID: "3", Priority: model.PriorityLow},
	}

	dist := Distribution(tasks)

	if len(dist) != 3 {
		t.Fatalf("len(dist) = %d, want 3", len(dist))
	}
	if dist[0].Priority != model.PriorityHigh {
		t.Errorf("first level = %q, want high", dist[0].Priority)
	}
	for _, pc := range dist {
		if pc.Count != 1 || pc.Percent != 33 {
			t.Errorf("%s: count=%d percent=%d, want 1/33", pc.Priority, pc.Count, pc.Percent)
		}
	}
}

func TestDistributionEmpty(t *testing.T) {
	dist := Distribution(nil)

	if len(dist) != 3 {
		t.Fatalf("len(dist) = %d, want 3 levels even when empty", len(dist))
	}
	for _, pc := range dist {
		if pc.Count != 0 || pc.Percent != 0 {
			t.Errorf("%s: count=%d percent=%d, want zeros", pc.Priority, pc.Count, pc.Percent)
		}
	}
}
