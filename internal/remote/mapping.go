package remote

import (
	"math"
	"strconv"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

// Wire values of the remote completion status. The repository may spell
// a completed task either "completed" or "done"; both are accepted on
// read, and "completed" is always written.
const (
	statusPending   = "pending"
	statusCompleted = "completed"
	statusDone      = "done"
)

// PriorityFromRemote maps the repository's integer priority to the local
// level. Missing or unmapped values resolve to medium.
func PriorityFromRemote(p int) model.Priority {
	switch p {
	case 1:
		return model.PriorityLow
	case 3:
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}

// PriorityToRemote maps a local priority level to the repository's
// integer encoding. Invalid levels encode as medium.
func PriorityToRemote(p model.Priority) int {
	switch p {
	case model.PriorityLow:
		return 1
	case model.PriorityHigh:
		return 3
	default:
		return 2
	}
}

// StatusToCompleted derives the boolean completion state from the wire
// status string.
func StatusToCompleted(status string) bool {
	return status == statusCompleted || status == statusDone
}

// CompletedToStatus derives the canonical wire status string from the
// boolean completion state.
func CompletedToStatus(completed bool) string {
	if completed {
		return statusCompleted
	}
	return statusPending
}

// recordToTask converts a wire record to the local task shape, applying
// the documented defaults: missing category becomes "General", missing
// reminder flag defaults to true, missing due date stays absent.
func recordToTask(r taskRecord) model.Task {
	t := model.Task{
		ID:          strconv.FormatInt(r.ID, 10),
		Title:       r.Title,
		Description: r.Description,
		Priority:    PriorityFromRemote(r.Priority),
		Category:    r.Category,
		Completed:   StatusToCompleted(r.Status),
		Origin:      model.OriginServer,
		CreatedAt:   parseAPITime(r.CreatedAt),
		UpdatedAt:   parseAPITime(r.UpdatedAt),
	}

	if r.DueDate != "" {
		if due := parseAPITime(r.DueDate); !due.IsZero() {
			t.DueDate = &due
		}
	}

	t.ReminderEnabled = true
	if r.ReminderEnabled != nil {
		t.ReminderEnabled = *r.ReminderEnabled
	}

	return t.Normalize()
}

// draftToPayload builds the full create payload from a local task draft.
func draftToPayload(t model.Task) map[string]interface{} {
	t = t.Normalize()

	payload := map[string]interface{}{
		"title":            t.Title,
		"description":      t.Description,
		"priority":         PriorityToRemote(t.Priority),
		"category":         t.Category,
		"reminder_enabled": t.ReminderEnabled,
		"status":           CompletedToStatus(t.Completed),
		"due_date":         nil,
	}
	if t.DueDate != nil {
		payload["due_date"] = t.DueDate.UTC().Format(time.RFC3339)
	}
	return payload
}

// patchToPayload builds a partial update payload carrying only the set
// fields of the patch.
func patchToPayload(p model.TaskPatch) map[string]interface{} {
	payload := map[string]interface{}{}

	if p.Title != nil {
		payload["title"] = *p.Title
	}
	if p.Description != nil {
		payload["description"] = *p.Description
	}
	if p.ClearDueDate {
		payload["due_date"] = nil
	} else if p.DueDate != nil {
		payload["due_date"] = p.DueDate.UTC().Format(time.RFC3339)
	}
	if p.Priority != nil {
		payload["priority"] = PriorityToRemote(*p.Priority)
	}
	if p.Category != nil {
		payload["category"] = *p.Category
	}
	if p.Completed != nil {
		payload["status"] = CompletedToStatus(*p.Completed)
	}
	if p.ReminderEnabled != nil {
		payload["reminder_enabled"] = *p.ReminderEnabled
	}

	return payload
}

// recordToNotification converts a wire notification to the local shape.
func recordToNotification(r notificationRecord) model.Notification {
	return model.Notification{
		ID:        strconv.FormatInt(r.ID, 10),
		TaskID:    strconv.FormatInt(r.TaskID, 10),
		Message:   r.Message,
		Read:      r.IsRead,
		CreatedAt: parseAPITime(r.CreatedAt),
	}
}

// recordToInsights converts the summary wire record to the local shape.
// The wire completion rate is a float percentage; locally it is an
// integer percent.
func recordToInsights(r insightsRecord) model.Insights {
	return model.Insights{
		Total:             r.TotalTasks,
		Completed:         r.CompletedTasks,
		Active:            r.PendingTasks,
		Overdue:           r.OverdueTasks,
		DueToday:          r.TasksDueToday,
		Upcoming:          r.UpcomingTasks,
		CompletionRate:    int(math.Round(r.CompletionRate)),
		AvgCompletionDays: r.AvgCompletionTime,
	}
}

// parseAPITime parses a repository timestamp. The API emits RFC 3339,
// with and without fractional seconds or zone offset.
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
