package modes

import (
	"testing"
	"time"
)

func TestPulseUp(t *testing.T) {
	f := newTestFrame(8, 1)
	p := &pulseUp{}

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{3 * sweepStep, 3},
		{8 * sweepStep, 8},
		{9 * sweepStep, 0}, // wraps after the full sweep
	}
	for _, tt := range tests {
		f.Elapsed = tt.elapsed
		p.render(f)
		if got := f.Seq.OnCount(); got != tt.want {
			t.Errorf("elapsed %v lit %d channels, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestPulseUpDown(t *testing.T) {
	f := newTestFrame(8, 1)
	p := &pulseUpDown{}

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{3 * sweepStep, 3},
		{8 * sweepStep, 8},
		{10 * sweepStep, 6}, // coming back down
		{16 * sweepStep, 0}, // full cycle
	}
	for _, tt := range tests {
		f.Elapsed = tt.elapsed
		p.render(f)
		if got := f.Seq.OnCount(); got != tt.want {
			t.Errorf("elapsed %v lit %d channels, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestFlashAlternates(t *testing.T) {
	f := newTestFrame(8, 1)
	fl := &flash{}

	f.Elapsed = 0
	fl.render(f)
	if f.Seq.OnCount() != 8 {
		t.Error("first half-period is not fully lit")
	}

	f.Elapsed = flashHalf
	fl.render(f)
	if f.Seq.OnCount() != 0 {
		t.Error("second half-period is not dark")
	}

	f.Elapsed = 2 * flashHalf
	fl.render(f)
	if f.Seq.OnCount() != 8 {
		t.Error("third half-period is not fully lit")
	}
}

func TestFlashDecay(t *testing.T) {
	f := newTestFrame(8, 1)
	fd := &flashDecay{}

	f.Elapsed = 0
	fd.render(f)
	if got := f.Seq.OnCount(); got != 8 {
		t.Errorf("period start lit %d channels, want 8", got)
	}

	f.Elapsed = flashHalf
	fd.render(f)
	if got := f.Seq.OnCount(); got != 4 {
		t.Errorf("mid-period lit %d channels, want 4", got)
	}

	f.Elapsed = 2*flashHalf - time.Millisecond
	fd.render(f)
	if got := f.Seq.OnCount(); got != 0 {
		t.Errorf("period end lit %d channels, want 0", got)
	}
}

func TestRandomTickerHoldsBetweenTicks(t *testing.T) {
	f := newTestFrame(8, 5)
	r := &randomTicker{}

	f.Elapsed = 0
	r.render(f)
	first := f.Seq.Pattern()

	// Same tick: the pattern holds.
	f.Elapsed = rollStep / 2
	r.render(f)
	for i, on := range f.Seq.Pattern() {
		if on != first[i] {
			t.Fatal("pattern changed within a tick")
		}
	}
}

func TestRandomTickerRerolls(t *testing.T) {
	f := newTestFrame(8, 5)
	r := &randomTicker{}

	f.Elapsed = 0
	r.render(f)
	first := f.Seq.Pattern()

	// Rerolls are independent coin flips, so compare several ticks and
	// require at least one to differ.
	changed := false
	for tick := 1; tick <= 8 && !changed; tick++ {
		f.Elapsed = time.Duration(tick) * rollStep
		r.render(f)
		for i, on := range f.Seq.Pattern() {
			if on != first[i] {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("eight ticks never changed the pattern")
	}
}

func TestRandomTickerReset(t *testing.T) {
	r := &randomTicker{started: true, lastStep: 9, mask: []bool{true}}
	r.reset()
	if r.started || r.mask != nil {
		t.Error("reset did not clear ticker state")
	}
}
