package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/theme"
)

// dueDateLayouts are the accepted due date input formats.
var dueDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
}

// SubmittedMsg is dispatched when the form completes. For edits, EditID
// names the task being changed; for creates it is empty.
type SubmittedMsg struct {
	EditID string
	Draft  model.Task
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	category    string
	dueDate     string
	reminder    bool
	completed   bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			priority: model.PriorityMedium,
			category: model.DefaultCategory,
			reminder: true,
		},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.PriorityMedium
	m.fb.category = model.DefaultCategory
	m.fb.dueDate = ""
	m.fb.reminder = true
	m.fb.completed = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.priority = task.Priority
	m.fb.category = task.Category
	m.fb.reminder = task.ReminderEnabled
	m.fb.completed = task.Completed
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Local().Format("2006-01-02 15:04")
	} else {
		m.fb.dueDate = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("Low", model.PriorityLow),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("High", model.PriorityHigh),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Category").
			Placeholder(model.DefaultCategory).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD [HH:MM] (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewConfirm().
			Title("Reminder").
			Affirmative("On").
			Negative("Off").
			Value(&m.fb.reminder),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewConfirm().
				Title("Completed").
				Affirmative("Yes").
				Negative("No").
				Value(&m.fb.completed),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	draft := model.Task{
		Title:           strings.TrimSpace(m.fb.title),
		Description:     m.fb.description,
		Priority:        m.fb.priority,
		Category:        strings.TrimSpace(m.fb.category),
		ReminderEnabled: m.fb.reminder,
		Completed:       m.fb.completed,
	}

	if m.fb.dueDate != "" {
		if due, err := parseDueDate(m.fb.dueDate); err == nil {
			draft.DueDate = &due
		}
	}

	editID := ""
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg { return SubmittedMsg{EditID: editID, Draft: draft} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := parseDueDate(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD or YYYY-MM-DD HH:MM")
	}
	return nil
}
