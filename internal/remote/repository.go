package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nhle/tasksync/internal/model"
)

// API implements Repository against the task service's REST contract.
type API struct {
	client *Client
}

// NewAPI creates a Repository backed by the given HTTP client.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// List retrieves tasks matching the filter.
func (a *API) List(ctx context.Context, f ListFilter) ([]model.Task, error) {
	params := url.Values{}
	if f.Status != nil {
		params.Set("status", *f.Status)
	}
	if f.Priority != nil {
		params.Set("priority", strconv.Itoa(PriorityToRemote(*f.Priority)))
	}
	if f.DueBefore != nil {
		params.Set("due_before", *f.DueBefore)
	}
	if f.DueAfter != nil {
		params.Set("due_after", *f.DueAfter)
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	if f.Order != "" {
		params.Set("order", f.Order)
	}

	path := "/tasks"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var records []taskRecord
	if err := a.client.Get(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	return recordsToTasks(records), nil
}

// Get retrieves a single task by its server id.
func (a *API) Get(ctx context.Context, id string) (model.Task, error) {
	var record taskRecord
	if err := a.client.Get(ctx, "/tasks/"+id, &record); err != nil {
		return model.Task{}, fmt.Errorf("getting task %s: %w", id, err)
	}
	return recordToTask(record), nil
}

// Create stores a new task and returns the server-confirmed record,
// which carries the server-assigned id and creation timestamp.
func (a *API) Create(ctx context.Context, draft model.Task) (model.Task, error) {
	var record taskRecord
	if err := a.client.Post(ctx, "/tasks", draftToPayload(draft), &record); err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return recordToTask(record), nil
}

// Update applies a partial update and returns the server-confirmed task.
func (a *API) Update(
	ctx context.Context,
	id string,
	patch model.TaskPatch,
) (model.Task, error) {
	var record taskRecord
	if err := a.client.Put(ctx, "/tasks/"+id, patchToPayload(patch), &record); err != nil {
		return model.Task{}, fmt.Errorf("updating task %s: %w", id, err)
	}
	return recordToTask(record), nil
}

// Delete removes a task by its server id.
func (a *API) Delete(ctx context.Context, id string) error {
	if err := a.client.Delete(ctx, "/tasks/"+id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// Reminders returns tasks inside the server's reminder window.
func (a *API) Reminders(ctx context.Context) ([]model.Task, error) {
	var records []taskRecord
	if err := a.client.Get(ctx, "/tasks/reminders", &records); err != nil {
		return nil, fmt.Errorf("fetching reminders: %w", err)
	}
	return recordsToTasks(records), nil
}

// Upcoming returns active tasks due in the future.
func (a *API) Upcoming(ctx context.Context) ([]model.Task, error) {
	var records []taskRecord
	if err := a.client.Get(ctx, "/tasks/upcoming-tasks", &records); err != nil {
		return nil, fmt.Errorf("fetching upcoming tasks: %w", err)
	}
	return recordsToTasks(records), nil
}

// Overdue returns active tasks past their due date.
func (a *API) Overdue(ctx context.Context) ([]model.Task, error) {
	var records []taskRecord
	if err := a.client.Get(ctx, "/tasks/overdue-tasks", &records); err != nil {
		return nil, fmt.Errorf("fetching overdue tasks: %w", err)
	}
	return recordsToTasks(records), nil
}

// Notifications returns the user's notifications, newest first.
func (a *API) Notifications(ctx context.Context) ([]model.Notification, error) {
	var records []notificationRecord
	if err := a.client.Get(ctx, "/notifications", &records); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}

	out := make([]model.Notification, 0, len(records))
	for _, r := range records {
		out = append(out, recordToNotification(r))
	}
	return out, nil
}

// MarkNotificationRead flags a single notification as seen.
func (a *API) MarkNotificationRead(ctx context.Context, id string) error {
	err := a.client.Put(ctx, "/notifications/"+id+"/read", nil, nil)
	if err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// InsightsSummary returns the server-computed aggregate metrics.
func (a *API) InsightsSummary(ctx context.Context) (model.Insights, error) {
	var record insightsRecord
	if err := a.client.Get(ctx, "/tasks/summary", &record); err != nil {
		return model.Insights{}, fmt.Errorf("fetching insights summary: %w", err)
	}
	return recordToInsights(record), nil
}

func recordsToTasks(records []taskRecord) []model.Task {
	tasks := make([]model.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, recordToTask(r))
	}
	return tasks
}
