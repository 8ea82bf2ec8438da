// Package spin implements the reel: uniform winner selection, the timed
// reveal sequence, and slot-boundary tick detection. It holds no task or
// credit state; the session feeds it counts and consumes its events.
package spin

import (
	"errors"
	"math/rand"
	"time"
)

var ErrTooFewCandidates = errors.New("spin: need at least two candidates")

// Selector picks a winning index with uniform probability. Each Selector
// owns its own rand source so repeated and concurrent sessions do not share
// seed state.
type Selector struct {
	rng *rand.Rand
}

func NewSelector() *Selector {
	return NewSelectorWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// Choose returns an index in [0, n). Callers must have validated the task
// list already; n < 2 is an input error, not a degenerate pick.
func (s *Selector) Choose(n int) (int, error) {
	if n < 2 {
		return 0, ErrTooFewCandidates
	}
	return s.rng.Intn(n), nil
}

// Jitter returns a value in [0, max] for randomizing the spin length so
// consecutive spins do not read as mechanical.
func (s *Selector) Jitter(max int) int {
	if max <= 0 {
		return 0
	}
	return s.rng.Intn(max + 1)
}
