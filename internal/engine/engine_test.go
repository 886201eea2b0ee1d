package engine

import (
	"testing"
	"time"

	"github.com/dooshek/vibelight/internal/button"
	"github.com/dooshek/vibelight/internal/hw"
	"github.com/dooshek/vibelight/internal/loudness"
	"github.com/dooshek/vibelight/internal/modes"
	"github.com/dooshek/vibelight/internal/sequencer"
)

// fakeSampler plays back scripted signals and records setter calls.
type fakeSampler struct {
	signals []uint16
	i       int
	alg     loudness.Algorithm
	gain    loudness.Gain
	low     [2]uint16
	high    [2]uint16
}

func (f *fakeSampler) Sample() uint16 {
	if len(f.signals) == 0 {
		return 0
	}
	s := f.signals[f.i%len(f.signals)]
	f.i++
	return s
}

func (f *fakeSampler) SetAlgorithm(a loudness.Algorithm) { f.alg = a }
func (f *fakeSampler) Algorithm() loudness.Algorithm     { return f.alg }
func (f *fakeSampler) SetGain(g loudness.Gain)           { f.gain = g }
func (f *fakeSampler) Gain() loudness.Gain               { return f.gain }
func (f *fakeSampler) SetLow(v uint16)                   { f.low[f.alg] = v }
func (f *fakeSampler) SetHigh(v uint16)                  { f.high[f.alg] = v }
func (f *fakeSampler) Low() uint16                       { return f.low[f.alg] }
func (f *fakeSampler) High() uint16                      { return f.high[f.alg] }

type testRig struct {
	eng     *Engine
	seq     *sequencer.Sequencer
	sampler *fakeSampler
	deb     *button.Debouncer
	now     *int64
}

func newTestRig(registry *modes.Registry, signals []uint16) *testRig {
	_, pins := hw.MemoryPins(8)
	seq := sequencer.New(pins)
	seq.Begin()

	sampler := &fakeSampler{signals: signals, gain: loudness.GainHigh}
	sampler.low[loudness.PeakToPeak] = 100
	sampler.high[loudness.PeakToPeak] = 900

	now := new(int64)
	*now = 5000 // past the initial cooldown
	deb := button.NewWithClock(5*time.Millisecond, 1000*time.Millisecond, func() int64 {
		return *now
	})

	return &testRig{
		eng:     New(seq, sampler, deb, registry),
		seq:     seq,
		sampler: sampler,
		deb:     deb,
		now:     now,
	}
}

func levelRegistry() *modes.Registry {
	return modes.NewRegistry(
		modes.Mode{Name: "level", Kind: modes.Reactive, Render: func(f *modes.Frame) {
			f.Seq.LightCount(modes.MapLevel(f.Signal, f.Low, f.High, f.Seq.Count()))
		}},
		modes.Mode{Name: "dark", Kind: modes.Periodic, Render: func(f *modes.Frame) {
			f.Seq.None()
		}},
	)
}

func TestStepReactiveRendersSignal(t *testing.T) {
	rig := newTestRig(levelRegistry(), []uint16{0, 500, 4095})

	base := time.Now()
	for _, want := range []int{0, 4, 8} {
		rig.eng.Step(base)
		if got := rig.seq.OnCount(); got != want {
			t.Errorf("lit %d channels, want %d", got, want)
		}
	}
	if rig.eng.LastSignal() != 4095 {
		t.Errorf("LastSignal() = %d, want 4095", rig.eng.LastSignal())
	}
}

func TestStepThresholdFloorAndCeiling(t *testing.T) {
	rig := newTestRig(levelRegistry(), []uint16{0, 50, 4095})
	rig.sampler.low[loudness.PeakToPeak] = 100
	rig.sampler.high[loudness.PeakToPeak] = 3000

	// Silence and a signal under the low threshold both stay dark; a
	// signal past the high threshold lights every channel.
	base := time.Now()
	for _, want := range []int{0, 0, 8} {
		rig.eng.Step(base)
		if got := rig.seq.OnCount(); got != want {
			t.Errorf("lit %d channels, want %d", got, want)
		}
	}
}

func TestStepPeriodicUsesElapsed(t *testing.T) {
	registry := modes.NewRegistry(
		modes.Mode{Name: "late", Kind: modes.Periodic, Render: func(f *modes.Frame) {
			if f.Elapsed >= time.Second {
				f.Seq.All()
			} else {
				f.Seq.None()
			}
		}},
	)
	rig := newTestRig(registry, nil)

	base := time.Now()
	rig.eng.Step(base)
	if rig.seq.OnCount() != 0 {
		t.Error("elapsed time nonzero on the first step")
	}

	rig.eng.Step(base.Add(2 * time.Second))
	if rig.seq.OnCount() != 8 {
		t.Error("elapsed time did not accumulate")
	}
}

func TestPressAdvancesModeAndPausesLoop(t *testing.T) {
	entered := false
	registry := modes.NewRegistry(
		modes.Mode{Name: "level", Kind: modes.Reactive, Render: func(f *modes.Frame) {
			f.Seq.All()
		}},
		modes.Mode{
			Name: "dark", Kind: modes.Periodic,
			Render:  func(f *modes.Frame) { f.Seq.None() },
			OnEnter: func() { entered = true },
		},
	)
	rig := newTestRig(registry, []uint16{4095})

	base := time.Now()
	rig.eng.Step(base)
	if rig.seq.OnCount() != 8 {
		t.Fatal("reactive mode did not render")
	}

	rig.deb.FallingEdge()
	rig.eng.Step(base)

	if rig.eng.ActiveIndex() != 1 {
		t.Fatalf("ActiveIndex() = %d, want 1", rig.eng.ActiveIndex())
	}
	if !entered {
		t.Error("on-enter hook did not run")
	}
	// The cooldown skips rendering, so the previous pattern stays lit.
	if rig.seq.OnCount() != 8 {
		t.Error("render ran during the post-press cooldown")
	}

	// After the cooldown, the new mode renders.
	*rig.now += 2000
	rig.eng.Step(base)
	if rig.seq.OnCount() != 0 {
		t.Error("new mode did not render after the cooldown")
	}
}

func TestModeCycleWrapsToStart(t *testing.T) {
	rig := newTestRig(levelRegistry(), nil)

	rig.eng.AdvanceMode()
	rig.eng.AdvanceMode()
	if rig.eng.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0 after a full cycle", rig.eng.ActiveIndex())
	}
}

func TestAdvanceModeName(t *testing.T) {
	rig := newTestRig(levelRegistry(), nil)
	if rig.eng.ActiveMode().Name != "level" {
		t.Errorf("initial mode = %q", rig.eng.ActiveMode().Name)
	}
	rig.eng.AdvanceMode()
	if rig.eng.ActiveMode().Name != "dark" {
		t.Errorf("next mode = %q", rig.eng.ActiveMode().Name)
	}
}
