package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "C":
		m.Session.ClearHistory()
		m.Status = StatusBar{Text: "history cleared, streak reset"}
		return m, nil
	case "j", "down", "k", "up":
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}
	return m, nil
}
