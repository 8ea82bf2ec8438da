package update

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalenobrien15/taskroulette/internal/session"
	"github.com/kalenobrien15/taskroulette/internal/spin"
	"github.com/kalenobrien15/taskroulette/internal/storage"
)

type countingCue struct {
	plays *int
}

func (c countingCue) Play() { *c.plays++ }

func newTestModel(t *testing.T, tasks ...string) Model {
	t.Helper()
	sess := session.NewWithSelector(
		storage.NewMemoryStore(),
		session.DefaultConfig(),
		spin.NewSelectorWithSource(rand.NewSource(7)),
	)
	for _, task := range tasks {
		if err := sess.AddTask(task); err != nil {
			t.Fatalf("AddTask(%q): %v", task, err)
		}
	}
	return NewModelWithCue(sess, DefaultRuntimeConfig(), NoopCue{})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

// stepUntilRevealed drains scheduled spin steps until the winner shows.
func stepUntilRevealed(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if m.Session.Phase() == spin.PhaseRevealed {
			return m
		}
		updated, _ := m.Update(SpinStepMsg{})
		m = updated.(Model)
	}
	t.Fatal("spin did not reveal a winner within 1000 steps")
	return m
}

func TestViewSwitching(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	if m.CurrentView != ViewRoulette {
		t.Fatalf("initial view = %s, want %s", m.CurrentView, ViewRoulette)
	}

	m = press(t, m, "2")
	if m.CurrentView != ViewTasks {
		t.Fatalf("view after '2' = %s, want %s", m.CurrentView, ViewTasks)
	}

	// The quick-add input grabs focus in the tasks view, so leaving needs an
	// esc first.
	m = press(t, m, "esc", "3")
	if m.CurrentView != ViewHistory {
		t.Fatalf("view after '3' = %s, want %s", m.CurrentView, ViewHistory)
	}

	m = press(t, m, "1")
	if m.CurrentView != ViewRoulette {
		t.Fatalf("view after '1' = %s, want %s", m.CurrentView, ViewRoulette)
	}
}

func TestSpinRequiresTwoTasks(t *testing.T) {
	m := newTestModel(t, "only")
	m = press(t, m, " ")
	if !m.Status.IsError {
		t.Fatal("expected an error status when spinning with one task")
	}
	if m.Session.Phase() != spin.PhaseIdle {
		t.Fatalf("phase = %s, want Idle", m.Session.Phase())
	}
}

func TestSpinToReveal(t *testing.T) {
	m := newTestModel(t, "alpha", "beta", "gamma")
	m = press(t, m, " ")
	if m.Session.Phase() != spin.PhaseSpinning {
		t.Fatalf("phase after spin = %s, want Spinning", m.Session.Phase())
	}

	m = stepUntilRevealed(t, m)
	winner := m.Session.Winner()
	if winner == "" {
		t.Fatal("no winner captured at reveal")
	}
	if !strings.Contains(m.Status.Text, winner) {
		t.Fatalf("status %q does not announce winner %q", m.Status.Text, winner)
	}
}

func TestStaleStepAfterRevealIsNoop(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, " ")
	m = stepUntilRevealed(t, m)
	winner := m.Session.Winner()

	updated, cmd := m.Update(SpinStepMsg{})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("stale step scheduled another step")
	}
	if m.Session.Winner() != winner {
		t.Fatalf("stale step changed winner from %q to %q", winner, m.Session.Winner())
	}
}

func TestCompleteWinnerFromKeyboard(t *testing.T) {
	m := newTestModel(t, "alpha", "beta", "gamma")
	m = press(t, m, " ")
	m = stepUntilRevealed(t, m)
	winner := m.Session.Winner()

	m = press(t, m, "c")
	if m.Session.Phase() != spin.PhaseIdle {
		t.Fatalf("phase after complete = %s, want Idle", m.Session.Phase())
	}
	history := m.Session.History()
	if len(history) != 1 || history[0] != winner {
		t.Fatalf("history = %v, want [%s]", history, winner)
	}
	for _, task := range m.Session.Tasks() {
		if task == winner {
			t.Fatalf("winner %q still on the wheel", winner)
		}
	}
}

func TestSkipWinnerDebitsAndRespins(t *testing.T) {
	m := newTestModel(t, "alpha", "beta", "gamma")
	m = press(t, m, " ")
	m = stepUntilRevealed(t, m)
	before := m.Session.Credits()

	m = press(t, m, "s")
	if m.Session.Credits() != before-1 {
		t.Fatalf("credits after skip = %d, want %d", m.Session.Credits(), before-1)
	}
	if m.Session.Phase() != spin.PhaseSpinning {
		t.Fatalf("phase after skip = %s, want Spinning", m.Session.Phase())
	}
}

func TestCuePlaysOnSlotBoundaries(t *testing.T) {
	plays := 0
	sess := session.NewWithSelector(
		storage.NewMemoryStore(),
		session.DefaultConfig(),
		spin.NewSelectorWithSource(rand.NewSource(7)),
	)
	for _, task := range []string{"alpha", "beta", "gamma"} {
		if err := sess.AddTask(task); err != nil {
			t.Fatal(err)
		}
	}
	m := NewModelWithCue(sess, DefaultRuntimeConfig(), countingCue{plays: &plays})

	m = press(t, m, " ")
	m = stepUntilRevealed(t, m)
	// Five full loops of three slots cross well over a dozen boundaries.
	if plays < 10 {
		t.Fatalf("cue played %d times over a full spin, want at least 10", plays)
	}
}

func TestQuickAddFromTasksView(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, "2", "x", "enter")
	tasks := m.Session.Tasks()
	if len(tasks) != 3 || tasks[2] != "x" {
		t.Fatalf("tasks after quick add = %v, want [alpha beta x]", tasks)
	}
}

func TestRemoveFromTasksView(t *testing.T) {
	m := newTestModel(t, "alpha", "beta", "gamma")
	// esc leaves typing mode, j moves to the second entry, d removes it.
	m = press(t, m, "2", "esc", "j", "d")
	tasks := m.Session.Tasks()
	if len(tasks) != 2 || tasks[0] != "alpha" || tasks[1] != "gamma" {
		t.Fatalf("tasks after remove = %v, want [alpha gamma]", tasks)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("palette not active after '/'")
	}
	for _, r := range "add write report" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if m.Palette.Active {
		t.Fatal("palette still active after enter")
	}
	tasks := m.Session.Tasks()
	if len(tasks) != 3 || tasks[2] != "write report" {
		t.Fatalf("tasks after palette add = %v", tasks)
	}
}

func TestPaletteSpinCommand(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, "/")
	for _, r := range "spin" {
		m = press(t, m, string(r))
	}
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.Session.Phase() != spin.PhaseSpinning {
		t.Fatalf("phase after /spin = %s, want Spinning", m.Session.Phase())
	}
	if cmd == nil {
		t.Fatal("palette spin did not schedule the step loop")
	}
}

func TestPaletteClearTasksCancelsSpin(t *testing.T) {
	m := newTestModel(t, "alpha", "beta", "gamma")
	m = press(t, m, " ")
	m = press(t, m, "/")
	for _, r := range "clear tasks" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if len(m.Session.Tasks()) != 0 {
		t.Fatalf("tasks = %v, want empty", m.Session.Tasks())
	}
	if m.Session.Phase() != spin.PhaseIdle {
		t.Fatalf("phase = %s, want Idle after clearing mid-spin", m.Session.Phase())
	}

	// The step scheduled before the clear must now be inert.
	updated, cmd := m.Update(SpinStepMsg{})
	m = updated.(Model)
	if cmd != nil || m.Session.Winner() != "" {
		t.Fatal("stale step advanced a cancelled spin")
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, "/")
	for _, r := range "bogus" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if !m.Status.IsError {
		t.Fatalf("status = %+v, want error for unknown command", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, "/", "esc")
	if m.Palette.Active {
		t.Fatal("palette still active after esc")
	}
}

func TestAddRejectedWhileSpinning(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	m = press(t, m, " ")
	m = press(t, m, "/")
	for _, r := range "add late entry" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if !m.Status.IsError {
		t.Fatal("expected error adding a task mid-spin")
	}
	if len(m.Session.Tasks()) != 2 {
		t.Fatalf("task list changed mid-spin: %v", m.Session.Tasks())
	}
}

func TestViewRendersAllScreens(t *testing.T) {
	m := newTestModel(t, "alpha", "beta")
	for _, view := range []View{ViewRoulette, ViewTasks, ViewHistory} {
		m.CurrentView = view
		out := m.View()
		if out == "" {
			t.Fatalf("empty render for view %s", view)
		}
		if !strings.Contains(out, "taskroulette") {
			t.Fatalf("render for %s missing header", view)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	if !m.Quitting {
		t.Fatal("model not quitting after q")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
}
