// Package session owns the canonical roulette state — task list, completed
// history, credit wallet, streak — and validates every user intent against
// the current phase before delegating to the spin and ledger packages. It is
// the sole writer to the persistent store.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/kalenobrien15/taskroulette/internal/ledger"
	"github.com/kalenobrien15/taskroulette/internal/model"
	"github.com/kalenobrien15/taskroulette/internal/spin"
	"github.com/kalenobrien15/taskroulette/internal/storage"
)

var (
	ErrTooFewTasks  = errors.New("session: need at least two tasks to spin")
	ErrSpinActive   = errors.New("session: a spin is already in progress")
	ErrInvalidPhase = errors.New("session: operation not valid in current phase")
)

// CostPolicy is the single source of truth for what spins and skips cost.
// The shipped policy is free spin, paid skip; the historical alternative
// (spin costs 1) is expressed by setting SpinCost instead of forking logic.
type CostPolicy struct {
	SpinCost int
	SkipCost int
}

func DefaultCostPolicy() CostPolicy {
	return CostPolicy{SpinCost: 0, SkipCost: 1}
}

type Config struct {
	Costs    CostPolicy
	Awards   ledger.AwardConfig
	Schedule spin.Schedule
}

func DefaultConfig() Config {
	return Config{
		Costs:    DefaultCostPolicy(),
		Awards:   ledger.DefaultAwardConfig(),
		Schedule: spin.DefaultSchedule(),
	}
}

// Session is the top-level state machine. All mutation happens on the
// caller's single goroutine (the Bubble Tea update loop); the session itself
// is not safe for concurrent use.
type Session struct {
	cfg      Config
	store    storage.Store
	selector *spin.Selector

	tasks   model.TaskList
	history []string
	wallet  *ledger.Ledger
	streak  int

	seq    *spin.Sequencer
	winner string

	persistErr error
}

func New(store storage.Store, cfg Config) *Session {
	return NewWithSelector(store, cfg, spin.NewSelector())
}

func NewWithSelector(store storage.Store, cfg Config, selector *spin.Selector) *Session {
	s := &Session{
		cfg:      cfg,
		store:    store,
		selector: selector,
	}
	s.load()
	return s
}

// load restores persisted state, falling back to defaults on any missing or
// corrupt value so a broken store degrades rather than crashes.
func (s *Session) load() {
	ctx := context.Background()

	var tasks []string
	if err := storage.GetJSON(ctx, s.store, storage.KeyTasks, &tasks); err == nil {
		s.tasks = model.NewTaskList(tasks)
	}

	var history []string
	if err := storage.GetJSON(ctx, s.store, storage.KeyHistory, &history); err == nil {
		s.history = history
	}

	credits := ledger.StartingBalance
	if err := storage.GetJSON(ctx, s.store, storage.KeyCredits, &credits); err != nil {
		credits = ledger.StartingBalance
	}
	s.wallet = ledger.New(credits)

	var streak int
	if err := storage.GetJSON(ctx, s.store, storage.KeyStreak, &streak); err == nil && streak > 0 {
		s.streak = streak
	}

	// A persisted active task restores the session straight into Revealed,
	// so a winner pending a decision survives a restart.
	var active string
	if err := storage.GetJSON(ctx, s.store, storage.KeyActiveTask, &active); err == nil && active != "" {
		s.winner = active
	}
}

// Phase derives the top-level state: a captured winner means Revealed, an
// active sequencer means Spinning, otherwise Idle.
func (s *Session) Phase() spin.Phase {
	if s.winner != "" {
		return spin.PhaseRevealed
	}
	if s.seq != nil && s.seq.Phase() == spin.PhaseSpinning {
		return spin.PhaseSpinning
	}
	return spin.PhaseIdle
}

func (s *Session) Tasks() []string   { return s.tasks.Items() }
func (s *Session) History() []string { return append([]string(nil), s.history...) }
func (s *Session) Credits() int      { return s.wallet.Balance() }
func (s *Session) Streak() int       { return s.streak }
func (s *Session) Winner() string    { return s.winner }

// SkipCost is what the UI shows on the skip action.
func (s *Session) SkipCost() int { return s.cfg.Costs.SkipCost }

// CanSkip lets the UI disable the skip action proactively instead of
// waiting for the debit to fail. A skip must also fund the re-spin it
// triggers.
func (s *Session) CanSkip() bool {
	return s.wallet.CanAfford(s.cfg.Costs.SkipCost + s.cfg.Costs.SpinCost)
}

// PersistErr reports the most recent storage failure, if any. Persistence is
// best-effort; operations never fail because a write did not stick.
func (s *Session) PersistErr() error { return s.persistErr }

// Position, CurrentIndex and Progress expose the reel state for rendering
// and tick detection. They are zero when no spin is active.
func (s *Session) Position() float64 {
	if s.seq == nil {
		return 0
	}
	return s.seq.Position()
}

func (s *Session) CurrentIndex() int {
	if s.seq == nil {
		return 0
	}
	return s.seq.CurrentIndex()
}

func (s *Session) Progress() float64 {
	if s.seq == nil {
		return 0
	}
	return s.seq.Progress()
}

// Spin starts a new reveal cycle. It requires Idle phase, at least two
// tasks, and affordability under the cost policy.
func (s *Session) Spin() error {
	switch s.Phase() {
	case spin.PhaseSpinning:
		return ErrSpinActive
	case spin.PhaseRevealed:
		return ErrInvalidPhase
	}
	return s.beginSpin()
}

func (s *Session) beginSpin() error {
	if s.tasks.Len() < 2 {
		return ErrTooFewTasks
	}
	if !s.wallet.CanAfford(s.cfg.Costs.SpinCost) {
		return ledger.ErrInsufficientCredit
	}
	chosen, err := s.selector.Choose(s.tasks.Len())
	if err != nil {
		return err
	}
	if err := s.wallet.Debit(s.cfg.Costs.SpinCost); err != nil {
		return err
	}
	if s.cfg.Costs.SpinCost > 0 {
		s.persist(storage.KeyCredits, s.wallet.Balance())
	}
	extra := s.selector.Jitter(s.cfg.Schedule.ExtraLoops)
	s.seq = spin.NewSequencer(s.tasks.Len(), chosen, extra, s.cfg.Schedule)
	return nil
}

// Step advances the reel one slot and reports whether this step revealed the
// winner. A step arriving outside Spinning (a stale scheduled callback) is a
// no-op.
func (s *Session) Step() bool {
	if s.Phase() != spin.PhaseSpinning {
		return false
	}
	if !s.seq.Advance() {
		return false
	}
	// The winner string is captured here, once. Later task-list mutations
	// do not change it.
	s.winner = s.tasks.At(s.seq.ChosenIndex())
	s.persist(storage.KeyActiveTask, s.winner)
	return true
}

// StepDelay is the pause before the next Step under the deceleration
// schedule.
func (s *Session) StepDelay() time.Duration {
	if s.seq == nil {
		return 0
	}
	return s.seq.NextDelay()
}

// Complete consumes the revealed winner: removes it from the task list,
// prepends it to history, bumps the streak, and applies any completion
// bonuses. It returns the credits awarded.
func (s *Session) Complete() (int, error) {
	if s.Phase() != spin.PhaseRevealed {
		return 0, ErrInvalidPhase
	}
	winner := s.winner
	s.tasks.RemoveTitle(winner)
	s.history = append([]string{winner}, s.history...)
	s.streak++

	awarded := ledger.AwardForCompletion(s.cfg.Awards, len(s.history), s.streak)
	if awarded > 0 {
		_ = s.wallet.Credit(awarded)
	}
	s.consumeWinner()

	s.persist(storage.KeyTasks, s.tasks.Items())
	s.persist(storage.KeyHistory, s.history)
	s.persist(storage.KeyStreak, s.streak)
	s.persist(storage.KeyCredits, s.wallet.Balance())
	return awarded, nil
}

// Skip pays a credit to discard the revealed winner without completing it,
// resets the streak, and immediately re-enters Spinning with a fresh pick.
func (s *Session) Skip() error {
	if s.Phase() != spin.PhaseRevealed {
		return ErrInvalidPhase
	}
	// Validate the whole skip before paying: a failed skip must leave the
	// balance, streak, and pending winner untouched. That means the list must
	// still support a re-spin and the wallet must cover both the skip and the
	// re-spin's own cost.
	if s.tasks.Len() < 2 {
		return ErrTooFewTasks
	}
	if !s.wallet.CanAfford(s.cfg.Costs.SkipCost + s.cfg.Costs.SpinCost) {
		return ledger.ErrInsufficientCredit
	}
	if err := s.wallet.Debit(s.cfg.Costs.SkipCost); err != nil {
		return err
	}
	s.streak = 0
	s.consumeWinner()

	s.persist(storage.KeyCredits, s.wallet.Balance())
	s.persist(storage.KeyStreak, s.streak)
	return s.beginSpin()
}

func (s *Session) consumeWinner() {
	s.winner = ""
	s.seq = nil
	if err := s.store.Delete(context.Background(), storage.KeyActiveTask); err != nil {
		s.persistErr = err
	}
}

// AddTask appends a unique task title. Rejected while Spinning: the list
// length is baked into the in-flight target position.
func (s *Session) AddTask(title string) error {
	if s.Phase() == spin.PhaseSpinning {
		return ErrInvalidPhase
	}
	if err := s.tasks.Add(title); err != nil {
		return err
	}
	s.persist(storage.KeyTasks, s.tasks.Items())
	return nil
}

// RemoveTask deletes the task at index. Legal while Revealed; a winner
// already captured keeps its value even if its entry is removed here.
func (s *Session) RemoveTask(index int) (string, error) {
	if s.Phase() == spin.PhaseSpinning {
		return "", ErrInvalidPhase
	}
	removed, err := s.tasks.RemoveAt(index)
	if err != nil {
		return "", err
	}
	s.persist(storage.KeyTasks, s.tasks.Items())
	return removed, nil
}

// ClearHistory wipes the completion history and, with it, the streak.
func (s *Session) ClearHistory() {
	s.history = nil
	s.streak = 0
	s.persist(storage.KeyHistory, s.history)
	s.persist(storage.KeyStreak, s.streak)
}

// ResetCredits restores the wallet to the starting balance.
func (s *Session) ResetCredits() error {
	s.wallet = ledger.New(ledger.StartingBalance)
	s.persist(storage.KeyCredits, s.wallet.Balance())
	return s.persistErr
}

// ClearAllTasks empties the task list. Legal in any phase: an in-flight spin
// is cancelled and a pending winner discarded, so no stale step can mutate
// state afterwards.
func (s *Session) ClearAllTasks() {
	s.tasks.Clear()
	s.consumeWinner()
	s.persist(storage.KeyTasks, s.tasks.Items())
}

func (s *Session) persist(key string, value any) {
	if err := storage.PutJSON(context.Background(), s.store, key, value); err != nil {
		s.persistErr = err
	}
}
