package spin

import "time"

type Phase string

const (
	PhaseIdle     Phase = "Idle"
	PhaseSpinning Phase = "Spinning"
	PhaseRevealed Phase = "Revealed"
)

// Schedule shapes the deceleration of a spin. Delays are banded on the
// fraction of steps completed: fast until FastUntil, medium until
// MediumUntil, then each step adds SlowGrowth up to MaxDelay.
type Schedule struct {
	FastDelay   time.Duration
	MediumDelay time.Duration
	SlowGrowth  time.Duration
	MaxDelay    time.Duration
	FastUntil   float64
	MediumUntil float64
	// MinLoops full traversals of the list are guaranteed before the reel
	// stops, so the motion reads as a spin rather than a snap. Up to
	// ExtraLoops more are added per spin.
	MinLoops   int
	ExtraLoops int
}

func DefaultSchedule() Schedule {
	return Schedule{
		FastDelay:   45 * time.Millisecond,
		MediumDelay: 90 * time.Millisecond,
		SlowGrowth:  30 * time.Millisecond,
		MaxDelay:    260 * time.Millisecond,
		FastUntil:   0.30,
		MediumUntil: 0.60,
		MinLoops:    5,
		ExtraLoops:  2,
	}
}

// Sequencer drives one spin from position 0 to a target that lands exactly
// on the chosen index. Position only ever increases; the Revealed transition
// fires exactly once. A Sequencer is single-use: one spin, then discarded.
type Sequencer struct {
	n        int
	chosen   int
	target   int
	position int
	phase    Phase
	schedule Schedule
}

// NewSequencer starts a spin over n slots ending on chosen, with extra
// additional loops beyond the schedule minimum (pass a Selector.Jitter
// value; clamped to the schedule's ExtraLoops).
func NewSequencer(n, chosen, extra int, sched Schedule) *Sequencer {
	if extra < 0 {
		extra = 0
	}
	if extra > sched.ExtraLoops {
		extra = sched.ExtraLoops
	}
	loops := sched.MinLoops + extra
	if loops < 1 {
		loops = 1
	}
	return &Sequencer{
		n:        n,
		chosen:   chosen,
		target:   loops*n + chosen,
		phase:    PhaseSpinning,
		schedule: sched,
	}
}

func (s *Sequencer) Phase() Phase     { return s.phase }
func (s *Sequencer) ChosenIndex() int { return s.chosen }

// Position is the conceptual reel offset in slots, monotonically increasing.
func (s *Sequencer) Position() float64 { return float64(s.position) }

// CurrentIndex is the slot currently centered on the reel.
func (s *Sequencer) CurrentIndex() int { return s.position % s.n }

// Progress is the completed fraction of the spin, in [0, 1].
func (s *Sequencer) Progress() float64 {
	if s.target == 0 {
		return 1
	}
	return float64(s.position) / float64(s.target)
}

// Advance moves the reel one slot. It returns true exactly once, on the step
// that reaches the target and flips the phase to Revealed; after that it is
// a no-op, so a stale scheduled step cannot move the reel again.
func (s *Sequencer) Advance() bool {
	if s.phase != PhaseSpinning {
		return false
	}
	s.position++
	if s.position >= s.target {
		s.position = s.target
		s.phase = PhaseRevealed
		return true
	}
	return false
}

// NextDelay is the pause before the next step, per the deceleration bands.
func (s *Sequencer) NextDelay() time.Duration {
	frac := s.Progress()
	sched := s.schedule
	switch {
	case frac < sched.FastUntil:
		return sched.FastDelay
	case frac < sched.MediumUntil:
		return sched.MediumDelay
	default:
		slowSteps := s.position - int(sched.MediumUntil*float64(s.target))
		if slowSteps < 0 {
			slowSteps = 0
		}
		delay := sched.MediumDelay + time.Duration(slowSteps)*sched.SlowGrowth
		if delay > sched.MaxDelay {
			return sched.MaxDelay
		}
		return delay
	}
}
