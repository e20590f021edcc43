package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasksync/internal/keys"
	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/store"
	"github.com/nhle/tasksync/internal/theme"
)

// TasksLoadedMsg is sent when the visible task slice has been recomputed
// from the store.
type TasksLoadedMsg struct {
	Tasks []model.Task
}

// ToggleTaskMsg asks the app to flip the completion state of a task.
type ToggleTaskMsg struct {
	TaskID string
}

// EditTaskMsg asks the app to open the edit form for a task.
type EditTaskMsg struct {
	Task model.Task
}

// DeleteTaskMsg asks the app to delete a task.
type DeleteTaskMsg struct {
	TaskID string
}

// ToggleReminderMsg asks the app to flip the reminder flag of a task.
type ToggleReminderMsg struct {
	TaskID string
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"created_at",
	"due_date",
	"priority",
	"title",
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	store       *store.Store
	keys        *keys.KeyMap
	filter      store.Filter
	sortIndex   int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(s *store.Store, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.Filter{
			SortBy: "created_at",
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ToggleTaskMsg{TaskID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.Edit):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditTaskMsg{Task: item.Task}
		}

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteTaskMsg{TaskID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.Reminder):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ToggleReminderMsg{TaskID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterActive):
		m.toggleCompletedFilter(false)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.FilterCompleted):
		m.toggleCompletedFilter(true)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadTasks()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleCompletedFilter toggles the completion filter between the given
// value and off.
func (m *Model) toggleCompletedFilter(completed bool) {
	if m.filter.Completed != nil && *m.filter.Completed == completed {
		m.filter.Completed = nil
		return
	}
	m.filter.Completed = &completed
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Completed != nil ||
		m.filter.Priority != nil ||
		m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}

	return style.Render("No tasks yet.\n\nPress 'n' to create one.")
}

// LoadTasks returns a tea.Cmd that reads the store with the current
// filter.
func (m Model) LoadTasks() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		return TasksLoadedMsg{Tasks: s.List(filter)}
	}
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// SortMode returns the name of the active sort mode.
func (m Model) SortMode() string {
	return m.filter.SortBy
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
