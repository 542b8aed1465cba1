package ui

import "time"

// The simulated progress ramp: 60 seconds at 10 Hz. The displayed value
// has no causal relationship to real backend latency; it exists so the
// generate step never shows an indeterminate spinner.
const (
	progressTickInterval = 100 * time.Millisecond
	progressTotalTicks   = 600
)

// ProgressState is the simulated completion percentage. Each tick is a
// pure transition on a value, so the ramp is testable with nothing more
// than a loop.
type ProgressState struct {
	Percent float64
	Running bool
	tick    int
	total   int
}

// NewProgressState starts a fresh ramp.
func NewProgressState() ProgressState {
	return ProgressState{Running: true, total: progressTotalTicks}
}

// Advance moves the ramp forward one tick, clamped at 100. Advancing a
// stopped or exhausted ramp is a no-op, so a stray tick can never push the
// value backward or past the top.
func (p ProgressState) Advance() ProgressState {
	if !p.Running || p.tick >= p.total {
		return p
	}
	p.tick++
	p.Percent = float64(p.tick) / float64(p.total) * 100
	if p.Percent > 100 {
		p.Percent = 100
	}
	return p
}

// Exhausted reports whether the ramp has reached the top on its own
// schedule, meaning no further tick should be scheduled.
func (p ProgressState) Exhausted() bool {
	return p.tick >= p.total
}

// Settle is the single finalization step: whatever the real outcome,
// the value is forced to exactly 100 and the ramp stops running.
func (p ProgressState) Settle() ProgressState {
	p.Percent = 100
	p.Running = false
	return p
}
