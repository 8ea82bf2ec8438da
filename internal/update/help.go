package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/kalenobrien15/taskroulette/internal/views"
)

// helpKeyMap feeds the bubbles help component the always-visible bindings;
// the per-view lists are rendered separately above it.
type helpKeyMap struct{}

func (helpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "palette")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (m Model) renderHelpView() string {
	bindings := []string{
		"1/2/3   switch view",
		"/       command palette (add, remove, spin, clear)",
		"?       toggle help",
		"q       quit",
	}
	switch m.CurrentView {
	case ViewRoulette:
		bindings = append(bindings,
			"space   spin the wheel",
			"c       complete the revealed task",
			"s       skip the revealed task (costs a credit)",
		)
	case ViewTasks:
		bindings = append(bindings,
			"enter   add the typed task",
			"j/k     move selection",
			"d       remove the selected task",
		)
	case ViewHistory:
		bindings = append(bindings,
			"j/k     scroll",
			"C       clear history",
		)
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindings,
		HelpView:    m.helpModel.View(helpKeyMap{}),
	})
}
