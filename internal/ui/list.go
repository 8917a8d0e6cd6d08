package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/tasks"
)

// checkbox renders the completion marker for a task row.
func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// renderRow renders one task line. The selected row carries a cursor marker;
// the row under edit shows the live draft input instead of the stored title.
func (m *Model) renderRow(t models.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.cursor.Render("> ")
	}

	if m.session.Editing(t.ID) {
		return fmt.Sprintf("%s%s %s", marker, checkbox(t.Completed), m.editInput.View())
	}

	title := t.Title
	if t.Completed {
		title = styles.done.Render(title)
	} else if selected {
		title = styles.cursor.Render(title)
	}
	return fmt.Sprintf("%s%s %s", marker, checkbox(t.Completed), title)
}

// renderList renders the tasks the current filter admits.
func (m *Model) renderList() string {
	visible := m.collection.Visible(m.filter)
	if len(visible) == 0 {
		return styles.help.Render(m.emptyText())
	}

	var b strings.Builder
	for i, t := range visible {
		b.WriteString(m.renderRow(t, i == m.cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) emptyText() string {
	switch m.filter {
	case tasks.FilterActive:
		return "No active tasks."
	case tasks.FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Press a to add one."
	}
}

// statusLine summarizes the filter and the derived counters.
func (m *Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("filter: %s", m.filter),
		fmt.Sprintf("%d active", m.collection.ActiveCount()),
		fmt.Sprintf("%d done", m.collection.CompletedCount()),
	}
	return styles.help.Render(strings.Join(parts, " • "))
}
