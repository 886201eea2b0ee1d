package modes

import (
	"math/rand"
	"testing"

	"github.com/dooshek/vibelight/internal/hw"
	"github.com/dooshek/vibelight/internal/sequencer"
)

func newTestFrame(n int, seed int64) *Frame {
	_, pins := hw.MemoryPins(n)
	seq := sequencer.NewWithRand(pins, rand.New(rand.NewSource(seed)))
	seq.Begin()
	return &Frame{Low: 100, High: 900, Seq: seq}
}

func TestPulseTracksSignal(t *testing.T) {
	f := newTestFrame(8, 1)
	p := &pulse{}

	f.Signal = 500
	p.render(f)
	if got := f.Seq.OnCount(); got != 4 {
		t.Errorf("signal 500 lit %d channels, want 4", got)
	}

	f.Signal = 0
	p.render(f)
	if got := f.Seq.OnCount(); got != 0 {
		t.Errorf("signal 0 lit %d channels, want 0", got)
	}
}

func TestPulseDecayFallsSlowly(t *testing.T) {
	f := newTestFrame(8, 1)
	p := &pulseDecay{}

	f.Signal = 900
	p.render(f)
	if got := f.Seq.OnCount(); got != 8 {
		t.Fatalf("peak lit %d channels, want 8", got)
	}

	// The displayed level holds for decayFrames-1 quiet iterations.
	f.Signal = 0
	for i := 0; i < decayFrames-1; i++ {
		p.render(f)
		if got := f.Seq.OnCount(); got != 8 {
			t.Fatalf("quiet frame %d lit %d channels, want 8", i, got)
		}
	}

	p.render(f)
	if got := f.Seq.OnCount(); got != 7 {
		t.Errorf("after decay interval lit %d channels, want 7", got)
	}
}

func TestPulseDecayRisesInstantly(t *testing.T) {
	f := newTestFrame(8, 1)
	p := &pulseDecay{display: 2}

	f.Signal = 900
	p.render(f)
	if got := f.Seq.OnCount(); got != 8 {
		t.Errorf("rise lit %d channels, want 8", got)
	}
}

func TestPulseDecayReset(t *testing.T) {
	p := &pulseDecay{display: 5, counter: 3}
	p.reset()
	if p.display != 0 || p.counter != 0 {
		t.Error("reset did not clear decay state")
	}
}

func TestRandFlashHoldsBetweenPeaks(t *testing.T) {
	f := newTestFrame(8, 7)
	r := &randFlash{}

	// First render seeds a pattern of flashWires channels.
	f.Signal = 0
	r.render(f)
	if got := f.Seq.OnCount(); got != flashWires {
		t.Fatalf("initial pattern lit %d channels, want %d", got, flashWires)
	}
	first := f.Seq.Pattern()

	// Quiet frames hold the pattern.
	for i := 0; i < 5; i++ {
		r.render(f)
	}
	for i, on := range f.Seq.Pattern() {
		if on != first[i] {
			t.Fatal("pattern changed without a peak")
		}
	}

	// A rising crossing of the high threshold rerolls.
	f.Signal = 900
	r.render(f)
	if got := f.Seq.OnCount(); got != flashWires {
		t.Errorf("peak pattern lit %d channels, want %d", got, flashWires)
	}

	// Staying at the peak does not reroll again.
	held := f.Seq.Pattern()
	r.render(f)
	for i, on := range f.Seq.Pattern() {
		if on != held[i] {
			t.Fatal("pattern rerolled while holding at peak")
		}
	}
}

func TestRandFlashSmallArray(t *testing.T) {
	f := newTestFrame(2, 1)
	r := &randFlash{}
	f.Signal = 0
	r.render(f)
	if got := f.Seq.OnCount(); got != 2 {
		t.Errorf("2-channel array lit %d, want 2", got)
	}
}

func TestRandSwapKeepsOneAcrossPeaks(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	f := newTestFrame(8, 3)
	r := &randSwap{rnd: rnd}

	peak := func() {
		f.Signal = 0
		r.render(f)
		f.Signal = 900
		r.render(f)
	}

	peak()
	if got := f.Seq.OnCount(); got != flashWires {
		t.Fatalf("first peak lit %d channels, want %d", got, flashWires)
	}
	first := f.Seq.Pattern()

	peak()
	if got := f.Seq.OnCount(); got != flashWires {
		t.Fatalf("second peak lit %d channels, want %d", got, flashWires)
	}

	shared := 0
	for i, on := range f.Seq.Pattern() {
		if on && first[i] {
			shared++
		}
	}
	if shared < 1 {
		t.Error("no channel survived the swap")
	}
}

func TestRandSwapTinyArray(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	f := newTestFrame(2, 1)
	r := &randSwap{rnd: rnd}

	f.Signal = 900
	r.render(f)
	if got := f.Seq.OnCount(); got != 1 {
		t.Errorf("tiny array lit %d channels, want 1", got)
	}
}

func TestRandSwapZeroChannels(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	f := newTestFrame(0, 1)
	r := &randSwap{rnd: rnd}
	f.Signal = 900
	r.render(f) // must not panic
}
