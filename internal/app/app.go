// Package app wires the stores, syncer, poller, and views into the root
// Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasksync/internal/keys"
	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/reminder"
	appsync "github.com/nhle/tasksync/internal/sync"
	"github.com/nhle/tasksync/internal/theme"
	"github.com/nhle/tasksync/internal/ui"
	"github.com/nhle/tasksync/internal/ui/insights"
	"github.com/nhle/tasksync/internal/ui/notifications"
	"github.com/nhle/tasksync/internal/ui/taskform"
	"github.com/nhle/tasksync/internal/ui/tasklist"
)

// ViewState identifies the active view.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewInsights
	ViewNotifications
)

// requestTimeout bounds a single user-initiated remote call.
const requestTimeout = 15 * time.Second

// refreshedMsg reports the outcome of a full fetch-and-replace.
type refreshedMsg struct {
	err error
}

// mutationDoneMsg reports the outcome of a create, update, or delete.
type mutationDoneMsg struct {
	err error
}

// reconciledMsg reports how many pending entries were pushed to the
// server.
type reconciledMsg struct {
	count int
	err   error
}

// Model is the root application model.
type Model struct {
	layout ui.Layout
	keys   *keys.KeyMap
	syncer *appsync.Syncer
	poller *appsync.Poller

	view          ViewState
	taskList      tasklist.Model
	taskForm      taskform.Model
	insightsView  insights.Model
	notifications notifications.Model
	help          help.Model

	unread    int
	toast     string
	authError string
	showHelp  bool
	quitting  bool
}

// New creates the root application model.
func New(syncer *appsync.Syncer, poller *appsync.Poller) Model {
	k := keys.DefaultKeyMap()
	layout := ui.NewLayout(80, 24)

	repo := poller.Repository()

	return Model{
		layout:        layout,
		keys:          k,
		syncer:        syncer,
		poller:        poller,
		view:          ViewList,
		taskList:      tasklist.New(syncer.Store(), k, layout.ContentWidth(), layout.ContentHeight()),
		taskForm:      taskform.New(layout.ContentWidth(), layout.ContentHeight()),
		insightsView:  insights.New(syncer, layout.ContentWidth(), layout.ContentHeight()),
		notifications: notifications.New(repo, k, layout.ContentWidth(), layout.ContentHeight()),
		help:          help.New(),
	}
}

// Init starts the initial fetch and the background polls.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		m.poller.Start(),
	)
}

// Update routes messages to the active view and handles global concerns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.insightsView.SetSize(w, h)
		m.notifications.SetSize(w, h)
		m.help.Width = w
		return m, nil

	case refreshedMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, m.taskList.LoadTasks())
		if msg.err == nil {
			cmds = append(cmds, m.reconcile())
		}
		return m, tea.Batch(cmds...)

	case mutationDoneMsg:
		return m, m.taskList.LoadTasks()

	case reconciledMsg:
		if msg.count > 0 {
			m.toast = fmt.Sprintf("synced %d pending task(s)", msg.count)
			return m, m.taskList.LoadTasks()
		}
		return m, nil

	case appsync.RemindersMsg:
		m.toast = formatReminderToast(msg.Events)
		return m, m.poller.WaitForNextResult()

	case appsync.NotificationsMsg:
		m.unread = msg.Unread
		m.notifications.SetNotifications(msg.Notifications)
		return m, m.poller.WaitForNextResult()

	case appsync.AuthErrorMsg:
		m.authError = msg.Message
		return m, m.poller.WaitForNextResult()

	case tasklist.ToggleTaskMsg:
		return m, m.toggleCompleted(msg.TaskID)

	case tasklist.ToggleReminderMsg:
		return m, m.toggleReminder(msg.TaskID)

	case tasklist.DeleteTaskMsg:
		return m, m.deleteTask(msg.TaskID)

	case tasklist.EditTaskMsg:
		m.view = ViewForm
		return m, m.taskForm.StartEdit(msg.Task)

	case taskform.SubmittedMsg:
		m.view = ViewList
		return m, m.submitTask(msg)

	case taskform.CancelMsg:
		m.view = ViewList
		return m, m.taskList.LoadTasks()

	case notifications.MarkedReadMsg:
		var cmd tea.Cmd
		m.notifications, cmd = m.notifications.Update(msg)
		m.poller.RefreshNotifications()
		return m, cmd

	case insights.LoadedMsg:
		var cmd tea.Cmd
		m.insightsView, cmd = m.insightsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// handleKey processes global keys first, then delegates to the active
// view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form and the search input own the keyboard while active.
	if m.view == ViewForm || (m.view == ViewList && m.taskList.Searching()) {
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.view = ViewForm
		return m, m.taskForm.StartCreate()

	case key.Matches(msg, m.keys.Insights):
		m.view = ViewInsights
		return m, m.insightsView.Load()

	case key.Matches(msg, m.keys.Notifications):
		m.view = ViewNotifications
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.toast = "refreshing..."
		return m, m.refresh()

	case key.Matches(msg, m.keys.Back):
		if m.view != ViewList {
			m.view = ViewList
			return m, m.taskList.LoadTasks()
		}
		m.toast = ""
		return m, nil
	}

	return m.updateActiveView(msg)
}

// updateActiveView forwards a message to whichever view is showing.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.view {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewInsights:
		m.insightsView, cmd = m.insightsView.Update(msg)
	case ViewNotifications:
		m.notifications, cmd = m.notifications.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.layout.RenderHeader("TaskSync", m.headerStatus())

	var content string
	switch m.view {
	case ViewForm:
		content = m.taskForm.View()
	case ViewInsights:
		content = m.insightsView.View()
	case ViewNotifications:
		content = m.notifications.View()
	default:
		content = m.taskList.View()
	}

	return m.layout.RenderWithFrame(header, content, m.statusBar())
}

// headerStatus builds the right-hand header segment.
func (m Model) headerStatus() string {
	status := ""
	if m.syncer.Store().Loading() {
		status = "syncing... "
	}
	if m.unread > 0 {
		status += fmt.Sprintf("● %d unread ", m.unread)
	}
	status += fmt.Sprintf("sort: %s", m.taskList.SortMode())
	return status
}

// statusBar picks what the bottom bar shows, in priority order: auth
// errors, sync errors, reminder toasts, then key hints.
func (m Model) statusBar() string {
	if m.authError != "" {
		return m.layout.RenderStatusBar(
			theme.ErrorStyle.Render("authentication required: " + m.authError),
		)
	}
	if storeErr := m.syncer.Store().Err(); storeErr != "" {
		return m.layout.RenderStatusBar(theme.ErrorStyle.Render(storeErr))
	}
	if m.toast != "" {
		return m.layout.RenderStatusBar(theme.ReminderStyle.Render(m.toast))
	}
	return m.layout.RenderStatusBar(m.help.View(m.keys))
}

// refresh returns a command that performs a full fetch-and-replace.
func (m Model) refresh() tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return refreshedMsg{err: s.Refresh(ctx)}
	}
}

// reconcile returns a command that retries locally-pending creates.
func (m Model) reconcile() tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		count, err := s.ReconcilePending(ctx)
		return reconciledMsg{count: count, err: err}
	}
}

// submitTask returns a command that creates or updates a task from the
// form draft.
func (m Model) submitTask(msg taskform.SubmittedMsg) tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if msg.EditID == "" {
			_, err = s.Create(ctx, msg.Draft)
		} else {
			_, err = s.Update(ctx, msg.EditID, patchFromDraft(msg.Draft))
		}
		return mutationDoneMsg{err: err}
	}
}

func (m Model) toggleCompleted(id string) tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := s.ToggleCompleted(ctx, id)
		return mutationDoneMsg{err: err}
	}
}

func (m Model) toggleReminder(id string) tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := s.ToggleReminder(ctx, id)
		return mutationDoneMsg{err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return mutationDoneMsg{err: s.Delete(ctx, id)}
	}
}

// patchFromDraft converts a full form draft into an update patch. The
// form always submits every field, so every field is set.
func patchFromDraft(draft model.Task) model.TaskPatch {
	patch := model.TaskPatch{
		Title:           &draft.Title,
		Description:     &draft.Description,
		Priority:        &draft.Priority,
		Category:        &draft.Category,
		Completed:       &draft.Completed,
		ReminderEnabled: &draft.ReminderEnabled,
	}
	if draft.DueDate != nil {
		patch.DueDate = draft.DueDate
	} else {
		patch.ClearDueDate = true
	}
	return patch
}

// formatReminderToast summarizes reminder events for the status bar.
func formatReminderToast(events []reminder.Event) string {
	if len(events) == 0 {
		return ""
	}
	if len(events) == 1 {
		e := events[0]
		return fmt.Sprintf("⏰ %q due in %dh", e.Title, e.HoursLeft)
	}
	return fmt.Sprintf("⏰ %d tasks due within 24h", len(events))
}
