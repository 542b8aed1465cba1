package ui

import (
	"strings"
	"time"
)

const (
	narrationTickInterval = 55 * time.Millisecond
	// Ticks to hold after a line completes before the next line starts.
	narrationLinePause = 14
)

// NarrationState reveals a fixed script one character at a time while a
// card renders. Like ProgressState, every tick is a pure transition:
// (state, tick) -> state, so the animation needs no fake timers to test.
type NarrationState struct {
	Line    int
	Char    int
	Waiting bool
	Running bool
	wait    int
}

// NewNarrationState starts the script from line 0, character 0.
func NewNarrationState() NarrationState {
	return NarrationState{Running: true}
}

// Advance reveals the next character, or burns down the inter-line pause
// once the current line is complete. Lines progress strictly in order.
func (n NarrationState) Advance(script []string) NarrationState {
	if !n.Running {
		return n
	}
	if n.Line >= len(script) {
		n.Running = false
		return n
	}

	line := []rune(script[n.Line])
	if n.Char < len(line) {
		n.Char++
		return n
	}

	if !n.Waiting {
		n.Waiting = true
		n.wait = narrationLinePause
		return n
	}
	if n.wait > 0 {
		n.wait--
		if n.wait > 0 {
			return n
		}
	}

	if n.Line+1 >= len(script) {
		n.Running = false
		return n
	}
	n.Line++
	n.Char = 0
	n.Waiting = false
	return n
}

// Stop halts the narration wherever it is. Partially revealed lines are
// fine; a dangling timer is not, so the owner stops scheduling on this.
func (n NarrationState) Stop() NarrationState {
	n.Running = false
	return n
}

// Revealed returns the text revealed so far: complete prior lines plus the
// revealed prefix of the current one.
func (n NarrationState) Revealed(script []string) string {
	var b strings.Builder
	for i := 0; i < n.Line && i < len(script); i++ {
		b.WriteString(script[i])
		b.WriteByte('\n')
	}
	if n.Line < len(script) {
		runes := []rune(script[n.Line])
		c := n.Char
		if c > len(runes) {
			c = len(runes)
		}
		b.WriteString(string(runes[:c]))
	}
	return b.String()
}
