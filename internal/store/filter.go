package store

import (
	"sort"
	"strings"

	"github.com/nhle/tasksync/internal/model"
)

// Filter controls client-side filtering, searching, and sorting of a
// task snapshot for the list view.
type Filter struct {
	Completed *bool
	Priority  *model.Priority
	Category  *string
	Query     *string // matches title + description, case-insensitive
	SortBy    string  // "due_date", "priority", "created_at", "title"
	SortDesc  bool
}

// List returns the tasks matching the filter, sorted as requested.
// With no sort key the store's insertion order is preserved.
func (s *Store) List(f Filter) []model.Task {
	tasks := s.Snapshot()

	out := tasks[:0]
	for _, t := range tasks {
		if !f.matches(t) {
			continue
		}
		out = append(out, t)
	}

	if f.SortBy != "" {
		sortTasks(out, f.SortBy, f.SortDesc)
	}
	return out
}

func (f Filter) matches(t model.Task) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Category != nil && !strings.EqualFold(t.Category, *f.Category) {
		return false
	}
	if f.Query != nil && *f.Query != "" {
		q := strings.ToLower(*f.Query)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// sortTasks orders tasks in place by the given key. Tasks without a due
// date sort after dated ones under the due_date key.
func sortTasks(tasks []model.Task, sortBy string, desc bool) {
	less := func(a, b model.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }

	switch sortBy {
	case "due_date":
		less = func(a, b model.Task) bool {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return a.CreatedAt.Before(b.CreatedAt)
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}
	case "priority":
		less = func(a, b model.Task) bool {
			return a.Priority.Rank() > b.Priority.Rank()
		}
	case "title":
		less = func(a, b model.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "created_at":
		// default
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}
