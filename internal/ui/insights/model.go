package insights

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasksync/internal/model"
	appsync "github.com/nhle/tasksync/internal/sync"
	"github.com/nhle/tasksync/internal/theme"
)

// LoadedMsg carries a freshly computed insight snapshot.
type LoadedMsg struct {
	Insights     model.Insights
	Distribution model.PriorityDistribution
}

// barWidth is the character width of the completion-rate bar.
const barWidth = 30

// Model renders the insights panel: counts, completion rate, and the
// priority distribution.
type Model struct {
	syncer       *appsync.Syncer
	insights     model.Insights
	distribution model.PriorityDistribution
	loaded       bool
	width        int
	height       int
}

// New creates a new insights panel model.
func New(s *appsync.Syncer, width, height int) Model {
	return Model{
		syncer: s,
		width:  width,
		height: height,
	}
}

// Load returns a command that fetches the insight snapshot. The syncer
// prefers the server summary and falls back to local computation.
func (m Model) Load() tea.Cmd {
	s := m.syncer
	return func() tea.Msg {
		ins, dist := s.Insights(context.Background())
		return LoadedMsg{Insights: ins, Distribution: dist}
	}
}

// Update handles messages for the insights panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.insights = loaded.Insights
		m.distribution = loaded.Distribution
		m.loaded = true
	}
	return m, nil
}

// View renders the insights panel.
func (m Model) View() string {
	if !m.loaded {
		return theme.PanelStyle.Render("Loading insights...")
	}

	ins := m.insights

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Task Insights")

	counts := []string{
		statLine("Total", ins.Total, theme.ColorBlue),
		statLine("Completed", ins.Completed, theme.ColorGreen),
		statLine("Active", ins.Active, theme.ColorYellow),
		statLine("Overdue", ins.Overdue, theme.ColorRed),
		statLine("Due Today", ins.DueToday, theme.ColorOrange),
		statLine("Upcoming", ins.Upcoming, theme.ColorBlue),
	}

	rate := fmt.Sprintf(
		"Completion Rate  %s %d%%",
		renderBar(ins.CompletionRate), ins.CompletionRate,
	)

	avg := "Avg. days allotted: n/a"
	if ins.AvgCompletionDays != nil {
		avg = fmt.Sprintf("Avg. days allotted: %.2f", *ins.AvgCompletionDays)
	}

	var distLines []string
	distLines = append(distLines, lipgloss.NewStyle().
		Bold(true).
		Render("Priority Distribution"))
	for _, pc := range m.distribution {
		label := theme.PriorityStyle(pc.Priority).
			Render(priorityTitle(pc.Priority))
		distLines = append(distLines, fmt.Sprintf(
			"  %s  %d (%d%%)", label, pc.Count, pc.Percent,
		))
	}

	sections := []string{title}
	sections = append(sections, counts...)
	sections = append(sections, "", rate, avg, "")
	sections = append(sections, distLines...)

	return theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// statLine formats one labeled count with a colored value.
func statLine(label string, value int, color lipgloss.AdaptiveColor) string {
	v := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d", value))
	return fmt.Sprintf("%-10s %s", label, v)
}

// priorityTitle returns the display label for a priority level.
func priorityTitle(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// renderBar draws a fixed-width progress bar for a percentage.
func renderBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return lipgloss.NewStyle().Foreground(theme.ColorBlue).Render(bar)
}
