package tui

import (
	"time"

	"stickycal/internal/store"
)

// clickDelay is how long a cell press waits for a possible second
// press before it resolves as a single click.
const clickDelay = 250 * time.Millisecond

// --- Messages ---

// clickTimerMsg fires the deferred single-click. The sequence number
// lets the machine drop timers that were superseded by a later press.
type clickTimerMsg struct {
	seq int
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// importDoneMsg carries a successfully parsed import; the model swaps
// the collection in on receipt.
type importDoneMsg struct {
	labels []store.Label
	id     string
}

// --- Helpers ---

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
