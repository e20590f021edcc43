package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	// Now supplies the reference time for the overdue flag. Defaults to
	// time.Now when nil.
	Now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	task := ti.Task
	isSelected := index == m.Index()

	var prefix string
	if task.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(priorityLabel(task.Priority))
	catBadge := theme.CategoryStyle.Render(task.Category)

	pendingBadge := ""
	if task.Pending() {
		pendingBadge = theme.PendingBadgeStyle.Render(" PENDING")
	}

	dueDateStr := ""
	if task.DueDate != nil {
		dueDateStr = theme.DueDateStyle.Render(" " + task.DueDate.Local().Format("Jan 02 15:04"))
	}

	overdueStr := ""
	if task.Overdue(now) {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	reminderStr := ""
	if task.ReminderEnabled && !task.Completed && task.DueDate != nil {
		reminderStr = " ⏰"
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s%s",
		prefix, priBadge, catBadge, task.Title,
		reminderStr, dueDateStr, overdueStr, pendingBadge,
	)

	if task.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HI"
	case model.PriorityMedium:
		return "MD"
	case model.PriorityLow:
		return "LO"
	default:
		return "??"
	}
}
