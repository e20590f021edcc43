// Package insight derives aggregate dashboard metrics from a task
// snapshot. All functions are pure; they own no state and never mutate
// their input.
package insight

import (
	"math"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

// Compute partitions the snapshot and produces the aggregate metrics.
// "now" is injected so classification is deterministic in tests.
func Compute(tasks []model.Task, now time.Time) model.Insights {
	var ins model.Insights
	ins.Total = len(tasks)

	var allottedDays float64
	for _, t := range tasks {
		if t.Completed {
			ins.Completed++
			due := now
			if t.DueDate != nil {
				due = *t.DueDate
			}
			days := due.Sub(t.CreatedAt).Hours() / 24
			if days < 0 {
				days = 0
			}
			allottedDays += days
			continue
		}

		ins.Active++
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now) {
			ins.Overdue++
		}
		if t.DueToday(now) {
			ins.DueToday++
		} else if t.DueDate.After(now) {
			ins.Upcoming++
		}
	}

	if ins.Total > 0 {
		ins.CompletionRate = int(math.Round(
			100 * float64(ins.Completed) / float64(ins.Total),
		))
	}

	if ins.Completed > 0 {
		avg := math.Round(allottedDays/float64(ins.Completed)*100) / 100
		ins.AvgCompletionDays = &avg
	}

	return ins
}

// Distribution counts tasks per priority level over the whole snapshot,
// completed tasks included, and reports each level's rounded share of
// the total. Levels are ordered high to low.
func Distribution(tasks []model.Task) model.PriorityDistribution {
	counts := map[model.Priority]int{}
	for _, t := range tasks {
		counts[t.Priority]++
	}

	total := len(tasks)
	levels := []model.Priority{
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
	}

	dist := make(model.PriorityDistribution, 0, len(levels))
	for _, p := range levels {
		pc := model.PriorityCount{Priority: p, Count: counts[p]}
		if total > 0 {
			pc.Percent = int(math.Round(
				100 * float64(pc.Count) / float64(total),
			))
		}
		dist = append(dist, pc)
	}
	return dist
}
