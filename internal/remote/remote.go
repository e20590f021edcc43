// Package remote talks to the external task repository over its REST
// contract and converts between the wire representation and the local
// task model.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nhle/tasksync/internal/model"
)

// AuthError indicates that authentication has failed or expired.
// It is returned when the API answers 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// NotFoundError indicates the request target no longer exists (404).
type NotFoundError struct {
	// Path is the request path that answered 404.
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %s not found", e.Path)
}

// IsNotFound reports whether err (or any error in its chain) is a
// NotFoundError.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// ValidationError carries the repository's structured per-field
// validation failures (422).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err (or any error in its chain) is a
// ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ListFilter maps to the repository's list query parameters.
type ListFilter struct {
	Status    *string
	Priority  *model.Priority
	DueBefore *string
	DueAfter  *string
	Limit     int
	Offset    int
	SortBy    string
	Order     string // "asc" or "desc"
}

// Repository is the contract the remote task API must fulfill. The sync
// layer depends on this interface, never on the HTTP client directly.
type Repository interface {
	// List retrieves tasks matching the filter.
	List(ctx context.Context, f ListFilter) ([]model.Task, error)

	// Get retrieves a single task by its server id.
	Get(ctx context.Context, id string) (model.Task, error)

	// Create stores a new task. The server assigns id and createdAt;
	// the returned task carries both.
	Create(ctx context.Context, draft model.Task) (model.Task, error)

	// Update applies a partial update and returns the server-confirmed
	// task.
	Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)

	// Delete removes a task by its server id.
	Delete(ctx context.Context, id string) error

	// Reminders returns tasks due within the server's reminder window.
	Reminders(ctx context.Context) ([]model.Task, error)

	// Upcoming returns active tasks due in the future.
	Upcoming(ctx context.Context) ([]model.Task, error)

	// Overdue returns active tasks past their due date.
	Overdue(ctx context.Context) ([]model.Task, error)

	// Notifications returns the user's notifications, newest first.
	Notifications(ctx context.Context) ([]model.Notification, error)

	// MarkNotificationRead flags a single notification as seen.
	MarkNotificationRead(ctx context.Context, id string) error

	// InsightsSummary returns the server-computed aggregate metrics.
	// May be unavailable; callers fall back to local computation.
	InsightsSummary(ctx context.Context) (model.Insights, error)
}
