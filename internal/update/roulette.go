package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalenobrien15/taskroulette/internal/ledger"
	"github.com/kalenobrien15/taskroulette/internal/session"
	"github.com/kalenobrien15/taskroulette/internal/spin"
	"github.com/kalenobrien15/taskroulette/internal/views"
)

func (m Model) handleRouletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		return m.startSpin()
	case "c":
		return m.completeWinner()
	case "s":
		return m.skipWinner()
	}
	return m, nil
}

func (m Model) startSpin() (tea.Model, tea.Cmd) {
	if err := m.Session.Spin(); err != nil {
		m.Status = statusForSpinError(err)
		return m, nil
	}
	m.emitter.Reset()
	m.Status = StatusBar{Text: "spinning..."}
	return m, tea.Batch(m.reelSpinner.Tick, spinStepCmd(m.Session.StepDelay()))
}

func (m Model) onSpinStep() (tea.Model, tea.Cmd) {
	// A step scheduled before a cancel or reveal must not move the reel.
	if m.Session.Phase() != spin.PhaseSpinning {
		return m, nil
	}
	revealed := m.Session.Step()
	if m.emitter.Observe(m.Session.Position()) {
		m.cue.Play()
	}
	if revealed {
		m.Status = StatusBar{Text: "winner: " + m.Session.Winner()}
		return m, nil
	}
	return m, spinStepCmd(m.Session.StepDelay())
}

func (m Model) completeWinner() (tea.Model, tea.Cmd) {
	winner := m.Session.Winner()
	awarded, err := m.Session.Complete()
	if err != nil {
		// Complete outside Revealed is a contract no-op, not a user error.
		return m, nil
	}
	text := fmt.Sprintf("completed: %s | streak %d", winner, m.Session.Streak())
	if awarded > 0 {
		text += fmt.Sprintf(" | +%d credit bonus", awarded)
	}
	m.Status = StatusBar{Text: text}
	return m, nil
}

func (m Model) skipWinner() (tea.Model, tea.Cmd) {
	err := m.Session.Skip()
	switch {
	case err == nil:
		m.emitter.Reset()
		m.Status = StatusBar{Text: "skipped, spinning again..."}
		return m, tea.Batch(m.reelSpinner.Tick, spinStepCmd(m.Session.StepDelay()))
	case errors.Is(err, ledger.ErrInsufficientCredit):
		m.Status = StatusBar{Text: "no credits left to skip; complete the task instead", IsError: true}
	case errors.Is(err, session.ErrTooFewTasks):
		m.Status = StatusBar{Text: "not enough tasks left to spin again", IsError: true}
	}
	return m, nil
}

func statusForSpinError(err error) StatusBar {
	switch {
	case errors.Is(err, session.ErrTooFewTasks):
		return StatusBar{Text: "add at least two tasks before spinning", IsError: true}
	case errors.Is(err, ledger.ErrInsufficientCredit):
		return StatusBar{Text: "not enough credits to spin", IsError: true}
	case errors.Is(err, session.ErrSpinActive), errors.Is(err, session.ErrInvalidPhase):
		return StatusBar{Text: "finish the current spin first", IsError: true}
	default:
		return StatusBar{Text: err.Error(), IsError: true}
	}
}

func spinStepCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg { return SpinStepMsg{} })
}

// renderReelView builds the visible window of slots around the centered one.
func (m Model) renderReelView() string {
	tasks := m.Session.Tasks()
	data := views.ReelPanelData{
		Phase:        string(m.Session.Phase()),
		Winner:       m.Session.Winner(),
		SpinnerView:  m.reelSpinner.View(),
		ProgressView: m.spinProgress.ViewAs(m.Session.Progress()),
		TaskCount:    len(tasks),
		CanSkip:      m.Session.CanSkip(),
		SkipCost:     m.Session.SkipCost(),
	}
	if len(tasks) > 0 {
		data.Slots = reelWindow(tasks, m.Session.CurrentIndex(), m.cfg.ReelWindow)
	}
	return views.RenderReelPanel(data)
}

// reelWindow returns size slots wrapped around center. Size is forced odd so
// the centered slot sits in the middle of the window.
func reelWindow(tasks []string, center, size int) []views.ReelSlot {
	n := len(tasks)
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	if size > n {
		size = n
	}
	half := size / 2
	slots := make([]views.ReelSlot, 0, size)
	for offset := -half; offset <= half; offset++ {
		idx := ((center+offset)%n + n) % n
		slots = append(slots, views.ReelSlot{
			Title:    tasks[idx],
			Centered: offset == 0,
		})
	}
	return slots
}
