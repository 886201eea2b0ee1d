package modes

import "math/rand"

// pulse lights as many channels as the signal maps to.
type pulse struct{}

func (p *pulse) render(f *Frame) {
	f.Seq.LightCount(MapLevel(f.Signal, f.Low, f.High, f.Seq.Count()))
}

// decayFrames is how many quiet iterations pass before the displayed
// level falls by one channel.
const decayFrames = 4

// pulseDecay follows rises immediately and lets the lit count fall
// slowly, so loud hits linger.
type pulseDecay struct {
	display int
	counter int
}

func (p *pulseDecay) render(f *Frame) {
	level := MapLevel(f.Signal, f.Low, f.High, f.Seq.Count())
	if level > p.display {
		p.display = level
		p.counter = 0
	} else {
		p.counter++
		if p.counter >= decayFrames {
			if p.display > 0 {
				p.display--
			}
			p.counter = 0
		}
	}
	f.Seq.LightCount(p.display)
}

func (p *pulseDecay) reset() {
	p.display = 0
	p.counter = 0
}

// flashWires is how many channels a random flash lights at once.
const flashWires = 3

// randFlash rerolls a small random subset on each rising crossing of
// the high threshold and holds the pattern in between.
type randFlash struct {
	prev    int
	pattern []bool
}

func (r *randFlash) render(f *Frame) {
	n := f.Seq.Count()
	level := MapLevel(f.Signal, f.Low, f.High, n)
	isPeak := level >= n && r.prev < n
	r.prev = level

	if isPeak || r.pattern == nil {
		k := flashWires
		if k > n {
			k = n
		}
		f.Seq.RandomCount(k)
		if r.pattern == nil {
			r.pattern = make([]bool, n)
		}
		f.Seq.CopyPattern(r.pattern)
		return
	}
	f.Seq.LightMask(r.pattern)
}

func (r *randFlash) reset() {
	r.prev = 0
	r.pattern = nil
}

// randSwap keeps one lit wire across peaks and swaps the other two,
// so the pattern drifts instead of jumping.
type randSwap struct {
	rnd    *rand.Rand
	prev   int
	active []int
	mask   []bool
}

func (r *randSwap) render(f *Frame) {
	n := f.Seq.Count()
	if n == 0 {
		f.Seq.None()
		return
	}
	level := MapLevel(f.Signal, f.Low, f.High, n)
	isPeak := level >= n && r.prev < n
	r.prev = level

	if isPeak {
		r.reroll(n)
	}
	if r.mask == nil {
		r.mask = make([]bool, n)
	}
	for i := range r.mask {
		r.mask[i] = false
	}
	for _, idx := range r.active {
		if idx < n {
			r.mask[idx] = true
		}
	}
	f.Seq.LightMask(r.mask)
}

func (r *randSwap) reroll(n int) {
	if n <= flashWires {
		r.active = r.active[:0]
		r.active = append(r.active, r.rnd.Intn(n))
		return
	}
	if len(r.active) == flashWires {
		keep := r.active[r.rnd.Intn(flashWires)]
		r.active = append(r.active[:0], keep)
	} else {
		r.active = r.active[:0]
	}
	for len(r.active) < flashWires {
		candidate := r.rnd.Intn(n)
		if !containsIndex(r.active, candidate) {
			r.active = append(r.active, candidate)
		}
	}
}

func (r *randSwap) reset() {
	r.prev = 0
	r.active = r.active[:0]
}

func containsIndex(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
