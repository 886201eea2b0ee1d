package loudness

import (
	"math"
	"time"

	"github.com/dooshek/vibelight/internal/hw"
)

const (
	// emptyPollLimit bounds the retry loop when the window is zero:
	// collect until at least one sample arrives, else give up and
	// return 0 instead of hanging.
	emptyPollLimit = 64

	// dcAlpha damps the historical low/high trackers that feed the DC
	// baseline for the RMS path.
	dcAlpha = 0.2
)

// meter holds the state shared by both sampler backends: algorithm,
// gain, per-algorithm calibration and the damped DC trackers.
type meter struct {
	profile      Profile
	clock        hw.Clock
	windowMicros int64

	alg  Algorithm
	gain Gain
	cal  calibration

	dcLow  float64
	dcHigh float64
}

func newMeter(profile Profile, clock hw.Clock, window time.Duration) meter {
	return meter{
		profile:      profile,
		clock:        clock,
		windowMicros: window.Microseconds(),
		alg:          PeakToPeak,
		gain:         GainHigh,
		dcLow:        profile.Rest,
		dcHigh:       profile.Rest,
	}
}

// acc accumulates window statistics for both algorithms at once; the
// min/max also feed the DC trackers after the window closes.
type acc struct {
	min      int32
	max      int32
	sumSq    float64
	count    int
	baseline float64
}

func (a *acc) add(v int32) {
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
	d := float64(v) - a.baseline
	a.sumSq += d * d
	a.count++
}

// measure runs one busy-poll window. poll reads the front-end once and
// feeds every recovered sample into the accumulator; read errors and
// empty reads are its business to swallow. measure never returns
// before the window has elapsed and always returns a value.
func (m *meter) measure(poll func(*acc)) uint16 {
	a := acc{
		min:      math.MaxInt32,
		max:      math.MinInt32,
		baseline: (m.dcLow + m.dcHigh) / 2,
	}

	start := m.clock.Micros()
	polls := 0
	for {
		if m.windowMicros > 0 {
			if m.clock.Micros()-start >= m.windowMicros {
				break
			}
		} else if a.count > 0 || polls >= emptyPollLimit {
			break
		}
		polls++
		poll(&a)
	}

	if a.count == 0 {
		return 0
	}

	m.dcLow += (float64(a.min) - m.dcLow) * dcAlpha
	m.dcHigh += (float64(a.max) - m.dcHigh) * dcAlpha

	var raw float64
	switch m.alg {
	case RMS:
		raw = math.Sqrt(a.sumSq / float64(a.count))
	default:
		raw = float64(a.max - a.min)
	}
	return m.profile.scale(raw, m.gain)
}

// SetAlgorithm switches the active algorithm. It takes effect on the
// next Sample call only; an in-flight window is not reset.
func (m *meter) SetAlgorithm(a Algorithm) { m.alg = a }

func (m *meter) Algorithm() Algorithm { return m.alg }

func (m *meter) SetGain(g Gain) { m.gain = g }

func (m *meter) Gain() Gain { return m.gain }

func (m *meter) SetLow(v uint16) { m.cal.low[m.alg] = v }

func (m *meter) SetHigh(v uint16) { m.cal.high[m.alg] = v }

func (m *meter) Low() uint16 { return m.cal.low[m.alg] }

func (m *meter) High() uint16 { return m.cal.high[m.alg] }

// SetThresholds sets the calibration pair for one algorithm without
// touching the other pair or the active algorithm.
func (m *meter) SetThresholds(a Algorithm, low, high uint16) {
	m.cal.set(a, low, high)
}
