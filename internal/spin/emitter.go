package spin

import "math"

// Emitter detects slot-boundary crossings in a monotonically increasing
// position stream. Each integer boundary fires at most once, in increasing
// order; slot 0 (the starting slot) never fires. If the position jumps more
// than one slot between observations the crossings coalesce into a single
// cue, which is acceptable during the fast phase of a spin.
type Emitter struct {
	lastSlot int
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// Observe reports whether the position crossed into a new slot since the
// last firing.
func (e *Emitter) Observe(position float64) bool {
	slot := int(math.Floor(position))
	if slot > e.lastSlot {
		e.lastSlot = slot
		return true
	}
	return false
}

// Reset prepares the emitter for a fresh spin starting at position 0.
func (e *Emitter) Reset() {
	e.lastSlot = 0
}
