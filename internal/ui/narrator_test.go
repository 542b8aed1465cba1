package ui

import (
	"strings"
	"testing"
)

var testScript = []string{"ab", "cd"}

func TestNarrationRevealsCharacterByCharacter(t *testing.T) {
	n := NewNarrationState()

	n = n.Advance(testScript)
	if got := n.Revealed(testScript); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	n = n.Advance(testScript)
	if got := n.Revealed(testScript); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}

func TestNarrationWaitsBetweenLines(t *testing.T) {
	n := NewNarrationState()
	n = n.Advance(testScript) // a
	n = n.Advance(testScript) // ab

	// The line is complete; the next ticks burn the inter-line pause
	// without starting line two.
	n = n.Advance(testScript)
	if !n.Waiting {
		t.Fatal("expected waiting flag after line completed")
	}
	for i := 0; i < narrationLinePause-1; i++ {
		n = n.Advance(testScript)
		if n.Line != 0 {
			t.Fatalf("line advanced during pause at tick %d", i)
		}
	}

	// The tick that ends the pause moves to line two.
	n = n.Advance(testScript)
	if n.Line != 1 || n.Char != 0 || n.Waiting {
		t.Fatalf("expected start of line 1, got line=%d char=%d waiting=%t", n.Line, n.Char, n.Waiting)
	}
}

func TestNarrationLinesCompleteInOrder(t *testing.T) {
	n := NewNarrationState()
	var sawSecondLineChar bool
	for i := 0; i < 100 && n.Running; i++ {
		n = n.Advance(testScript)
		if n.Line == 1 && n.Char > 0 {
			sawSecondLineChar = true
		}
		if n.Line == 1 && !strings.HasPrefix(n.Revealed(testScript), "ab\n") {
			t.Fatalf("line 1 started before line 0 completed: %q", n.Revealed(testScript))
		}
	}
	if !sawSecondLineChar {
		t.Fatal("script never reached the second line")
	}
	if n.Running {
		t.Error("expected narration to stop after the script ends")
	}
	if got := n.Revealed(testScript); got != "ab\ncd" {
		t.Errorf("expected full script revealed, got %q", got)
	}
}

func TestNarrationStopMidLine(t *testing.T) {
	n := NewNarrationState()
	n = n.Advance(testScript)
	n = n.Stop()

	if n.Running {
		t.Fatal("expected Running=false after Stop")
	}
	// Partial text is fine; further ticks must be no-ops.
	if got := n.Revealed(testScript); got != "a" {
		t.Errorf("expected partial line preserved, got %q", got)
	}
	after := n.Advance(testScript)
	if after != n {
		t.Error("advancing a stopped narration changed it")
	}
}

func TestNarrationRestartBeginsAtTop(t *testing.T) {
	n := NewNarrationState()
	for i := 0; i < 10; i++ {
		n = n.Advance(testScript)
	}
	n = NewNarrationState()
	if n.Line != 0 || n.Char != 0 || !n.Running {
		t.Errorf("expected fresh state, got %+v", n)
	}
	if got := n.Revealed(testScript); got != "" {
		t.Errorf("expected empty reveal after restart, got %q", got)
	}
}
