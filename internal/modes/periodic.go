package modes

import "time"

const (
	// sweepStep paces the wire-by-wire sweeps.
	sweepStep = 150 * time.Millisecond
	// flashHalf is one half of the full-array flash period.
	flashHalf = 500 * time.Millisecond
	// rollStep paces the random rerolls.
	rollStep = 250 * time.Millisecond
)

// pulseUp sweeps the lit count upward and starts over.
type pulseUp struct{}

func (p *pulseUp) render(f *Frame) {
	n := f.Seq.Count()
	step := int(f.Elapsed / sweepStep)
	f.Seq.LightCount(step % (n + 1))
}

// pulseUpDown sweeps the lit count up and back down.
type pulseUpDown struct{}

func (p *pulseUpDown) render(f *Frame) {
	n := f.Seq.Count()
	if n == 0 {
		f.Seq.None()
		return
	}
	cycle := 2 * n
	idx := int(f.Elapsed/sweepStep) % cycle
	level := idx
	if idx > n {
		level = cycle - idx
	}
	f.Seq.LightCount(level)
}

// flash alternates the whole array on and off.
type flash struct{}

func (fl *flash) render(f *Frame) {
	if int(f.Elapsed/flashHalf)%2 == 0 {
		f.Seq.All()
	} else {
		f.Seq.None()
	}
}

// flashDecay lights everything at the start of each period and lets
// the count run down linearly until the next one.
type flashDecay struct{}

func (fd *flashDecay) render(f *Frame) {
	n := f.Seq.Count()
	period := 2 * flashHalf
	phase := f.Elapsed % period
	level := n - int(phase*time.Duration(n+1)/period)
	f.Seq.LightCount(level)
}

// randomTicker rerolls an independent random subset on every tick and
// holds it in between.
type randomTicker struct {
	started  bool
	lastStep int64
	mask     []bool
}

func (r *randomTicker) render(f *Frame) {
	step := int64(f.Elapsed / rollStep)
	if !r.started || step != r.lastStep {
		r.started = true
		r.lastStep = step
		f.Seq.RandomSubset()
		if r.mask == nil {
			r.mask = make([]bool, f.Seq.Count())
		}
		f.Seq.CopyPattern(r.mask)
		return
	}
	f.Seq.LightMask(r.mask)
}

func (r *randomTicker) reset() {
	r.started = false
	r.mask = nil
}
