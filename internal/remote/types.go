package remote

// taskRecord is the wire shape of a task as the repository returns it.
type taskRecord struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DueDate         string `json:"due_date,omitempty"`
	Priority        int    `json:"priority"`
	Category        string `json:"category"`
	ReminderEnabled *bool  `json:"reminder_enabled,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// notificationRecord is the wire shape of a notification.
type notificationRecord struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// insightsRecord is the wire shape of the summary endpoint response.
type insightsRecord struct {
	TotalTasks        int      `json:"total_tasks"`
	CompletedTasks    int      `json:"completed_tasks"`
	PendingTasks      int      `json:"pending_tasks"`
	OverdueTasks      int      `json:"overdue_tasks"`
	TasksDueToday     int      `json:"tasks_due_today"`
	UpcomingTasks     int      `json:"upcoming_tasks"`
	CompletionRate    float64  `json:"completion_rate"`
	AvgCompletionTime *float64 `json:"avg_completion_time"`
}
