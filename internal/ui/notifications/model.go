package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasksync/internal/keys"
	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/remote"
	"github.com/nhle/tasksync/internal/theme"
)

// MarkedReadMsg is sent after a notification has been marked read
// remotely.
type MarkedReadMsg struct {
	NotificationID string
	Err            error
}

// Model renders the notification panel and lets the user mark entries
// as read.
type Model struct {
	repo          remote.Repository
	keys          *keys.KeyMap
	notifications []model.Notification
	cursor        int
	width         int
	height        int
}

// New creates a new notification panel model.
func New(repo remote.Repository, k *keys.KeyMap, width, height int) Model {
	return Model{
		repo:   repo,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetNotifications replaces the displayed notifications. The poller
// delivers these; the panel never fetches on its own.
func (m *Model) SetNotifications(ns []model.Notification) {
	m.notifications = ns
	if m.cursor >= len(ns) {
		m.cursor = 0
	}
}

// Update handles messages for the notification panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.notifications)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Toggle):
			return m, m.markRead()
		}

	case MarkedReadMsg:
		if msg.Err == nil {
			for i, n := range m.notifications {
				if n.ID == msg.NotificationID {
					m.notifications[i].Read = true
				}
			}
		}
	}

	return m, nil
}

// markRead returns a command that marks the selected notification read.
func (m Model) markRead() tea.Cmd {
	if m.cursor >= len(m.notifications) {
		return nil
	}

	n := m.notifications[m.cursor]
	if n.Read {
		return nil
	}

	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := repo.MarkNotificationRead(ctx, n.ID)
		return MarkedReadMsg{NotificationID: n.ID, Err: err}
	}
}

// View renders the notification panel.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Notifications")

	if len(m.notifications) == 0 {
		return theme.PanelStyle.Render(
			title + "\n" + theme.HelpStyle.Render("No notifications."),
		)
	}

	lines := []string{title}
	for i, n := range m.notifications {
		marker := "●"
		style := lipgloss.NewStyle().Foreground(theme.ColorWhite)
		if n.Read {
			marker = "○"
			style = lipgloss.NewStyle().Foreground(theme.ColorGray)
		}

		line := fmt.Sprintf(
			"%s %s %s",
			marker, n.Message,
			theme.DueDateStyle.Render(relativeTime(n.CreatedAt)),
		)

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = style.PaddingLeft(2).Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "",
		theme.HelpStyle.Render("enter: mark read · esc: back"))

	return theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
