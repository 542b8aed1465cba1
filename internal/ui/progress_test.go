package ui

import "testing"

func TestProgressAdvanceIsMonotonic(t *testing.T) {
	p := NewProgressState()
	last := p.Percent
	for i := 0; i < progressTotalTicks+50; i++ {
		p = p.Advance()
		if p.Percent < last {
			t.Fatalf("progress decreased at tick %d: %f -> %f", i, last, p.Percent)
		}
		last = p.Percent
	}
	if p.Percent != 100 {
		t.Errorf("expected 100 after full ramp, got %f", p.Percent)
	}
}

func TestProgressClampsAtTop(t *testing.T) {
	p := NewProgressState()
	for i := 0; i < progressTotalTicks; i++ {
		p = p.Advance()
	}
	if !p.Exhausted() {
		t.Fatal("expected ramp to be exhausted after total ticks")
	}

	// Further ticks must be no-ops
	again := p.Advance()
	if again.Percent != 100 {
		t.Errorf("expected clamp at 100, got %f", again.Percent)
	}
}

func TestProgressSettleForcesExactly100(t *testing.T) {
	t.Run("settle early", func(t *testing.T) {
		p := NewProgressState()
		p = p.Advance()
		p = p.Settle()
		if p.Percent != 100 {
			t.Errorf("expected exactly 100 after settle, got %f", p.Percent)
		}
		if p.Running {
			t.Error("expected Running=false after settle")
		}
	})

	t.Run("settle when already at 100", func(t *testing.T) {
		p := NewProgressState()
		for !p.Exhausted() {
			p = p.Advance()
		}
		p = p.Settle()
		if p.Percent != 100 || p.Running {
			t.Errorf("expected settled state, got %f running=%t", p.Percent, p.Running)
		}
	})
}

func TestProgressAdvanceAfterSettleIsNoop(t *testing.T) {
	p := NewProgressState().Settle()
	after := p.Advance()
	if after != p {
		t.Errorf("advancing a settled ramp changed it: %+v -> %+v", p, after)
	}
}
