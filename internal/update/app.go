package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalenobrien15/taskroulette/internal/session"
	"github.com/kalenobrien15/taskroulette/internal/spin"
	"github.com/kalenobrien15/taskroulette/internal/views"
)

type View string

const (
	ViewRoulette View = "Roulette"
	ViewTasks    View = "Tasks"
	ViewHistory  View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Roulette string
	Tasks    string
	History  string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SpinStepMsg advances the reel by one slot. Steps are scheduled one at a
// time with the sequencer's current delay, so the reel decelerates.
type SpinStepMsg struct{}

// Model is the single Bubble Tea model. The session owns all roulette
// state; the model owns presentation concerns and the tick emitter/cue pair.
type Model struct {
	CurrentView View
	Session     *session.Session
	Palette     CommandPaletteState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	cue     Cue
	emitter *spin.Emitter
	cfg     RuntimeConfig

	// Bubble components used for rich TUI controls
	tasksList     list.Model
	historyTable  table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	spinProgress  progress.Model
	reelSpinner   spinner.Model
	helpModel     help.Model
	tasksCursor   int
}

func NewModel(sess *session.Session, cfg RuntimeConfig) Model {
	cue := Cue(TerminalBellCue{})
	if cfg.Mute {
		cue = NoopCue{}
	}
	return NewModelWithCue(sess, cfg, cue)
}

func NewModelWithCue(sess *session.Session, cfg RuntimeConfig, cue Cue) Model {
	m := Model{
		CurrentView: ViewRoulette,
		Session:     sess,
		cfg:         cfg,
		cue:         cue,
		emitter:     spin.NewEmitter(),
		Keys: GlobalKeyMap{
			Roulette: "1",
			Tasks:    "2",
			History:  "3",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.tasksList = list.New([]list.Item{}, list.NewDefaultDelegate(), 48, 12)
	m.tasksList.Title = "Tasks on the wheel"
	m.tasksList.SetShowHelp(false)
	m.tasksList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Completed task", Width: 38},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 128
	m.quickAddInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 128
	m.commandInput.Width = 44

	m.spinProgress = progress.New(progress.WithDefaultGradient())

	m.reelSpinner = spinner.New()
	m.reelSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	if m.Session.Phase() == spin.PhaseRevealed {
		// A pending winner restored from a previous run.
		return func() tea.Msg {
			return SetStatusMsg{Text: "restored pending winner: " + m.Session.Winner()}
		}
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		// While the quick-add input has focus, printable keys belong to the
		// input, not the global bindings.
		if m.CurrentView == ViewTasks && m.quickAddInput.Focused() && typed.String() != "ctrl+c" {
			return m.handleTasksKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		case m.Keys.Roulette:
			m.CurrentView = ViewRoulette
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			m.quickAddInput.Focus()
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewRoulette:
			return m.handleRouletteKey(typed)
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewHistory:
			return m.handleHistoryKey(typed)
		}
	case spinner.TickMsg:
		if m.Session.Phase() == spin.PhaseSpinning {
			var cmd tea.Cmd
			m.reelSpinner, cmd = m.reelSpinner.Update(typed)
			return m, cmd
		}
	case SpinStepMsg:
		return m.onSpinStep()
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewRoulette:
		leftPane = m.renderReelView()
		rightPane = m.renderWalletView() + "\n\n" + m.renderPaletteView() + m.renderHelpIfVisible()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderWalletView() + "\n\n" + m.renderPaletteView() + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderWalletView() + m.renderHelpIfVisible()
	}

	notification := ""
	if err := m.Session.PersistErr(); err != nil {
		notification = "persistence degraded: " + err.Error()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskroulette | view: %s | phase: %s", m.CurrentView, m.Session.Phase()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s roulette | %s tasks | %s history | %s help | %s quit",
			m.Keys.Roulette, m.Keys.Tasks, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewRoulette, ViewTasks, ViewHistory:
		return true
	default:
		return false
	}
}

func (m *Model) syncBubbleData() {
	tasks := m.Session.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for i, task := range tasks {
		items = append(items, listItem{title: task, description: "slot " + strconv.Itoa(i+1)})
	}
	m.tasksList.SetItems(items)
	if len(items) > 0 {
		if m.tasksCursor >= len(items) {
			m.tasksCursor = len(items) - 1
		}
		m.tasksList.Select(m.tasksCursor)
	}

	history := m.Session.History()
	rows := make([]table.Row, 0, len(history))
	for i, task := range history {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), task})
	}
	m.historyTable.SetRows(rows)

	_ = m.spinProgress.SetPercent(m.Session.Progress())
}

func (m Model) renderWalletView() string {
	return views.RenderWalletPanel(views.WalletPanelData{
		Credits:  m.Session.Credits(),
		Streak:   m.Session.Streak(),
		SkipCost: m.Session.SkipCost(),
	})
}

func (m Model) renderTasksView() string {
	return views.RenderTasksPanel(views.TasksPanelData{
		QuickAddView: m.quickAddInput.View(),
		ListView:     m.tasksList.View(),
		Count:        len(m.Session.Tasks()),
	})
}

func (m Model) renderHistoryView() string {
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TableView: m.historyTable.View(),
		Total:     len(m.Session.History()),
		Streak:    m.Session.Streak(),
	})
}

func (m Model) renderPaletteView() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + m.renderHelpView()
}
