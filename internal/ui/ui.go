package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/services"
	"github.com/desertthunder/tsk/internal/tasks"
)

// Model is the TUI application state.
//
// The collection is canonical and changes only when a resolved remote
// operation is applied in Update; everything the screen shows derives from
// it. Network calls run as commands and report back as typed messages, so
// the model never blocks and never reflects an unconfirmed write.
type Model struct {
	ctx context.Context
	api services.TaskAPI

	collection tasks.Collection
	filter     tasks.Filter
	session    tasks.EditSession
	loading    bool
	lastErr    string

	cursor    int
	input     textinput.Model
	editInput textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	width     int
	height    int
}

// NewModel creates a TUI model backed by the given task store client.
func NewModel(ctx context.Context, api services.TaskAPI) *Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.Prompt = "> "
	input.CharLimit = 200

	editInput := textinput.New()
	editInput.Prompt = ""
	editInput.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:       ctx,
		api:       api,
		loading:   true,
		input:     input,
		editInput: editInput,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init kicks off the initial load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTasks())
}

// Update handles incoming messages and applies resolved operations to the
// canonical collection.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = min(msg.Width-6, 50)
		m.editInput.Width = min(msg.Width-10, 50)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.input.Focused():
			return m.handleInputKeys(msg)
		case m.session.Active():
			return m.handleEditKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.collection.Replace(msg.tasks)
		m.lastErr = ""
		m.session.Reconcile(&m.collection)
		if !m.session.Active() {
			m.editInput.Blur()
		}
		m.clampCursor()
		return m, nil

	case taskCreatedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.collection.Append(*msg.task)
		m.input.SetValue("")
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			// The session stays open with its draft so the user can retry
			// or cancel.
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.collection.Update(*msg.task)
		if m.session.Editing(msg.task.ID) {
			m.session.Close()
			m.editInput.Blur()
		}
		return m, nil

	case taskToggledMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.collection.Update(*msg.task)
		m.clampCursor()
		return m, nil

	case taskDeletedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.collection.RemoveByID(msg.id)
		m.session.Reconcile(&m.collection)
		if !m.session.Active() {
			m.editInput.Blur()
		}
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

// View renders the task list, input, counters, and any pending error.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("tsk"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Loading tasks...", m.spinner.View()))
	} else {
		b.WriteString(m.renderList())
	}
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %s", m.lastErr)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.ShortHelpView(m.helpKeys()))
	return b.String()
}

func (m *Model) helpKeys() []key.Binding {
	if m.input.Focused() {
		submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add"))
		return []key.Binding{submit, m.keys.cancel}
	}
	if m.session.Active() {
		return []key.Binding{m.keys.save, m.keys.cancel}
	}
	return m.keys.ShortHelp()
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := tasks.NormalizeTitle(m.input.Value())
		if title == "" {
			return m, nil
		}
		// The draft stays in the input until the store confirms the create.
		m.lastErr = ""
		return m, m.createTask(title)
	case "esc":
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		current, ok := m.collection.Get(m.session.ID())
		if !ok {
			m.session.Close()
			m.editInput.Blur()
			return m, nil
		}
		title, save := m.session.ShouldSave(current)
		if !save {
			m.session.Close()
			m.editInput.Blur()
			return m, nil
		}
		m.lastErr = ""
		return m, m.saveTitle(current.ID, title)
	case "esc":
		m.session.Close()
		m.editInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.session.SetDraft(m.editInput.Value())
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.collection.Visible(m.filter)

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "a":
		m.input.Focus()
		return m, textinput.Blink
	case "enter", "e":
		if t, ok := m.cursorTask(visible); ok {
			m.beginEdit(t)
			return m, textinput.Blink
		}
	case " ", "x":
		if t, ok := m.cursorTask(visible); ok {
			m.lastErr = ""
			return m, m.toggleTask(t.ID, !t.Completed)
		}
	case "d":
		if t, ok := m.cursorTask(visible); ok {
			m.lastErr = ""
			return m, m.deleteTask(t.ID)
		}
	case "tab", "f":
		m.filter = m.filter.Next()
		m.clampCursor()
	case "C":
		return m, m.clearCompleted()
	case "r":
		m.loading = true
		m.lastErr = ""
		return m, tea.Batch(m.spinner.Tick, m.loadTasks())
	}

	return m, nil
}

func (m *Model) cursorTask(visible []models.Task) (models.Task, bool) {
	if len(visible) == 0 || m.cursor < 0 || m.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) beginEdit(t models.Task) {
	m.session.Begin(t)
	m.editInput.SetValue(t.Title)
	m.editInput.CursorEnd()
	m.editInput.Focus()
}

func (m *Model) clampCursor() {
	n := len(m.collection.Visible(m.filter))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// clearCompleted snapshots the completed ids once and dispatches one
// independent delete per id. Control returns immediately; each resolution
// lands as its own taskDeletedMsg in whatever order the store answers.
// A no-op when nothing is completed.
func (m *Model) clearCompleted() tea.Cmd {
	ids := m.collection.CompletedIDs()
	if len(ids) == 0 {
		return nil
	}

	m.lastErr = ""
	cmds := make([]tea.Cmd, len(ids))
	for i, id := range ids {
		cmds[i] = m.deleteTask(id)
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		items, err := m.api.ListTasks(m.ctx)
		return tasksLoadedMsg{tasks: items, err: err}
	}
}

func (m *Model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.api.CreateTask(m.ctx, title)
		return taskCreatedMsg{task: task, err: err}
	}
}

func (m *Model) saveTitle(id int64, title string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.api.UpdateTask(m.ctx, id, models.TitlePatch(title))
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *Model) toggleTask(id int64, completed bool) tea.Cmd {
	return func() tea.Msg {
		task, err := m.api.UpdateTask(m.ctx, id, models.CompletedPatch(completed))
		return taskToggledMsg{task: task, err: err}
	}
}

func (m *Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.api.DeleteTask(m.ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}
