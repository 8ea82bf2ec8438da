package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalenobrien15/taskroulette/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		return m.executePaletteCommand(input)
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		if cmd.Type == commands.TypeSpin {
			m.Status = statusForSpinError(err)
		} else {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, nil
	}
	m.Status = StatusBar{Text: result.Message}
	// A started spin still needs its step loop; only the update layer can
	// schedule commands, so that happens here rather than in the handler.
	if cmd.Type == commands.TypeSpin {
		m.emitter.Reset()
		return m, tea.Batch(m.reelSpinner.Tick, spinStepCmd(m.Session.StepDelay()))
	}
	return m, nil
}

func (m Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Spin: func() (commands.Result, error) {
			if err := m.Session.Spin(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "spinning..."}, nil
		},
		Add: func(args commands.AddArgs) (commands.Result, error) {
			if err := m.Session.AddTask(args.Title); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "added: " + args.Title}, nil
		},
		Remove: func(args commands.RemoveArgs) (commands.Result, error) {
			removed, err := m.Session.RemoveTask(args.Index - 1)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "removed: " + removed}, nil
		},
		Clear: func(args commands.ClearArgs) (commands.Result, error) {
			switch args.Target {
			case commands.ClearHistory:
				m.Session.ClearHistory()
				return commands.Result{Message: "history cleared"}, nil
			case commands.ClearTasks:
				m.Session.ClearAllTasks()
				return commands.Result{Message: "all tasks cleared"}, nil
			default:
				return commands.Result{}, fmt.Errorf("unknown clear target: %s", args.Target)
			}
		},
	}
}
