package update

import (
	"fmt"
	"os"
)

// Cue plays the per-slot audio tick. The terminal bell is the only output
// channel a TUI can rely on, so that is the default implementation.
type Cue interface {
	Play()
}

type TerminalBellCue struct{}

func (TerminalBellCue) Play() {
	fmt.Fprint(os.Stdout, "\a")
}

// NoopCue is the muted cue, also used in tests.
type NoopCue struct{}

func (NoopCue) Play() {}
