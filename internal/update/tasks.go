package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalenobrien15/taskroulette/internal/model"
	"github.com/kalenobrien15/taskroulette/internal/session"
)

// handleTasksKey has two modes: while the quick-add input is focused, keys
// feed the input (enter adds, esc leaves typing mode); once blurred, j/k/d
// navigate and edit the list and "a" returns to typing.
func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quickAddInput.Focused() {
		switch msg.String() {
		case "enter":
			title := m.quickAddInput.Value()
			m.quickAddInput.SetValue("")
			return m.addTask(title)
		case "esc":
			m.quickAddInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.quickAddInput, cmd = m.quickAddInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "a":
		m.quickAddInput.Focus()
	case "j", "down":
		if m.tasksCursor < len(m.Session.Tasks())-1 {
			m.tasksCursor++
		}
	case "k", "up":
		if m.tasksCursor > 0 {
			m.tasksCursor--
		}
	case "d":
		return m.removeTaskAt(m.tasksCursor)
	}
	return m, nil
}

func (m Model) addTask(title string) (tea.Model, tea.Cmd) {
	err := m.Session.AddTask(title)
	switch {
	case err == nil:
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s (%d on the wheel)", title, len(m.Session.Tasks()))}
	case errors.Is(err, model.ErrEmptyTask):
		m.Status = StatusBar{Text: "task title is empty", IsError: true}
	case errors.Is(err, model.ErrDuplicateTask):
		m.Status = StatusBar{Text: "that task is already on the wheel", IsError: true}
	case errors.Is(err, session.ErrInvalidPhase):
		m.Status = StatusBar{Text: "cannot change the wheel mid-spin", IsError: true}
	default:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return m, nil
}

func (m Model) removeTaskAt(index int) (tea.Model, tea.Cmd) {
	removed, err := m.Session.RemoveTask(index)
	switch {
	case err == nil:
		m.Status = StatusBar{Text: "removed: " + removed}
	case errors.Is(err, model.ErrIndexRange):
		m.Status = StatusBar{Text: "no task selected", IsError: true}
	case errors.Is(err, session.ErrInvalidPhase):
		m.Status = StatusBar{Text: "cannot change the wheel mid-spin", IsError: true}
	default:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return m, nil
}
