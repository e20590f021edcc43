package model

// Insights holds the aggregate metrics shown on the dashboard. It is
// derived from a task snapshot (or returned by the repository summary
// endpoint) and never stored.
type Insights struct {
	// Total is the number of tasks in the snapshot.
	Total int `json:"total_tasks"`

	// Completed is the number of completed tasks.
	Completed int `json:"completed_tasks"`

	// Active is the number of not-yet-completed tasks.
	Active int `json:"pending_tasks"`

	// Overdue counts active tasks whose due date is strictly in the past.
	Overdue int `json:"overdue_tasks"`

	// DueToday counts active tasks due on the current local calendar day.
	DueToday int `json:"tasks_due_today"`

	// Upcoming counts active tasks due strictly after now and not today.
	Upcoming int `json:"upcoming_tasks"`

	// CompletionRate is round(100 * Completed / Total), 0 when Total is 0.
	CompletionRate int `json:"completion_rate"`

	// AvgCompletionDays approximates workload as the mean number of days
	// allotted to completed tasks (createdAt to dueDate, or to now when no
	// due date exists). Nil when no tasks are completed. This is not a
	// measurement of actual completion latency; the model carries no
	// completedAt timestamp.
	AvgCompletionDays *float64 `json:"avg_completion_time"`
}

// PriorityCount is one level of the priority distribution.
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`

	// Percent is the level's share of the cross-priority total, rounded.
	Percent int `json:"percent"`
}

// PriorityDistribution is the per-level task count over all tasks,
// completed ones included, ordered high to low.
type PriorityDistribution []PriorityCount
