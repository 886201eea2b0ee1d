package loudness

import (
	"math"
	"slices"
)

const (
	// autoHistory holds roughly five seconds of windows at the default
	// 15 ms window rate.
	autoHistory    = 330
	autoMinSamples = 10

	// Percentiles of the recent signal history used as the working
	// floor and ceiling.
	autoFloorPct   = 30
	autoCeilingPct = 95
	autoMinSpan    = 16

	// Compressor: the knee sits at 3/8 of the working span; excess
	// above it is divided by up to the ratio as the gain envelope
	// charges over attack frames and discharges over release frames.
	compKnee    = 3.0 / 8.0
	compRatio   = 3.0
	compAttack  = 2.0
	compRelease = 8.0
	compMakeup  = 1.5

	// Noise gate: the ambient tracker rises fast and falls slow; the
	// gate opens when a window clears the ambient level by the
	// headroom factor and stays open for the hold count after.
	gateAttack   = 0.02
	gateRelease  = 0.005
	gateHeadroom = 1.5
	gateHold     = 6
)

// AutoSampler wraps a Sampler with the auto-calibrating pipeline: the
// floor and ceiling are recomputed each window from percentiles of the
// recent signal history, loud windows are squashed through a soft-knee
// compressor, and an adaptive noise gate zeroes windows that do not
// clear the ambient level. Low and High report the working pair so the
// reactive level mapping tracks the room instead of a fixed wizard
// calibration.
type AutoSampler struct {
	Sampler

	history []uint16
	scratch []uint16
	next    int

	floor   uint16
	ceiling uint16

	envelope float64
	ambient  float64
	hold     int
}

func NewAutoSampler(inner Sampler) *AutoSampler {
	return &AutoSampler{
		Sampler: inner,
		history: make([]uint16, 0, autoHistory),
		scratch: make([]uint16, 0, autoHistory),
		ceiling: autoMinSpan,
	}
}

// Sample reads one window from the wrapped sampler and runs it through
// calibration, compression and the gate.
func (a *AutoSampler) Sample() uint16 {
	raw := a.Sampler.Sample()
	a.record(raw)
	return a.gate(raw, a.compress(raw))
}

// SetAlgorithm resets the learned state: p2p and RMS signals live on
// different scales, so history from one is meaningless for the other.
func (a *AutoSampler) SetAlgorithm(alg Algorithm) {
	if alg != a.Sampler.Algorithm() {
		a.reset()
	}
	a.Sampler.SetAlgorithm(alg)
}

// SetGain resets the learned state for the same reason.
func (a *AutoSampler) SetGain(g Gain) {
	if g != a.Sampler.Gain() {
		a.reset()
	}
	a.Sampler.SetGain(g)
}

// Low returns the working floor once enough history has accumulated,
// the wrapped sampler's calibration before that.
func (a *AutoSampler) Low() uint16 {
	if a.calibrated() {
		return a.floor
	}
	return a.Sampler.Low()
}

// High returns the working ceiling once enough history has accumulated.
func (a *AutoSampler) High() uint16 {
	if a.calibrated() {
		return a.ceiling
	}
	return a.Sampler.High()
}

func (a *AutoSampler) calibrated() bool {
	return len(a.history) >= autoMinSamples
}

func (a *AutoSampler) reset() {
	a.history = a.history[:0]
	a.next = 0
	a.floor = 0
	a.ceiling = autoMinSpan
	a.envelope = 0
	a.ambient = 0
	a.hold = 0
}

// record pushes one signal into the ring and recomputes the working
// floor and ceiling from the sorted history.
func (a *AutoSampler) record(s uint16) {
	if len(a.history) < autoHistory {
		a.history = append(a.history, s)
	} else {
		a.history[a.next] = s
		a.next = (a.next + 1) % autoHistory
	}
	if !a.calibrated() {
		return
	}

	a.scratch = append(a.scratch[:0], a.history...)
	slices.Sort(a.scratch)
	a.floor = percentile(a.scratch, autoFloorPct)

	ceiling := uint32(percentile(a.scratch, autoCeilingPct))
	if least := uint32(a.floor) + autoMinSpan; ceiling < least {
		ceiling = least
	}
	if ceiling > math.MaxUint16 {
		ceiling = math.MaxUint16
	}
	a.ceiling = uint16(ceiling)
}

// compress squashes the part of the signal above the knee. The gain
// envelope charges while windows stay above the knee and discharges
// while they stay below, so sustained loud passages are flattened but
// the first transient of a burst passes nearly untouched.
func (a *AutoSampler) compress(raw uint16) uint16 {
	span := float64(a.ceiling) - float64(a.floor)
	if span <= 0 {
		return raw
	}

	x := float64(raw) - float64(a.floor)
	if x < 0 {
		x = 0
	}
	if x > span {
		x = span
	}

	knee := span * compKnee
	if x > knee {
		a.envelope += (1 - a.envelope) / compAttack
	} else {
		a.envelope -= a.envelope / compRelease
	}
	if a.envelope < 0 {
		a.envelope = 0
	}
	if a.envelope > 1 {
		a.envelope = 1
	}

	y := x
	if x > knee {
		y = knee + (x-knee)/(1+(compRatio-1)*a.envelope)
	}
	y *= compMakeup
	if y > span {
		y = span
	}
	return a.floor + uint16(y+0.5)
}

// gate zeroes the processed signal unless the raw window clears the
// tracked ambient level, with a short hold so decaying tails are not
// chopped off.
func (a *AutoSampler) gate(raw, out uint16) uint16 {
	r := float64(raw)
	if r > a.ambient {
		a.ambient += (r - a.ambient) * gateAttack
	} else {
		a.ambient += (r - a.ambient) * gateRelease
	}

	if r > a.ambient*gateHeadroom {
		a.hold = gateHold
		return out
	}
	if a.hold > 0 {
		a.hold--
		return out
	}
	return 0
}

// percentile picks from an ascending-sorted slice by nearest rank.
func percentile(sorted []uint16, pct int) uint16 {
	return sorted[(len(sorted)-1)*pct/100]
}
