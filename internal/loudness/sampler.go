// Package loudness measures ambient sound level. A sampler busy-polls
// its audio front-end for a configured window and reduces the raw
// samples to one bounded unsigned signal magnitude.
package loudness

// Algorithm selects how a window of raw samples becomes a signal.
type Algorithm int

const (
	// PeakToPeak tracks the running min and max across the window;
	// signal = max - min.
	PeakToPeak Algorithm = iota
	// RMS accumulates sum-of-squares across the window after removing
	// a tracked DC baseline; signal = sqrt(sumSquares / count).
	RMS
)

func (a Algorithm) String() string {
	switch a {
	case PeakToPeak:
		return "p2p"
	case RMS:
		return "rms"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a config or command string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "p2p", "p":
		return PeakToPeak, true
	case "rms", "r":
		return RMS, true
	default:
		return PeakToPeak, false
	}
}

// Gain is an enumerated sensitivity level. Higher gain divides the raw
// amplitude by a smaller scale factor.
type Gain int

const (
	GainLow Gain = iota
	GainMedium
	GainHigh
)

func (g Gain) String() string {
	switch g {
	case GainLow:
		return "low"
	case GainMedium:
		return "medium"
	case GainHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseGain maps a config or command string to a Gain.
func ParseGain(s string) (Gain, bool) {
	switch s {
	case "low", "0":
		return GainLow, true
	case "medium", "1":
		return GainMedium, true
	case "high", "2":
		return GainHigh, true
	default:
		return GainHigh, false
	}
}

// Sampler is the capability interface shared by both microphone
// front-ends.
type Sampler interface {
	// Sample busy-polls the front-end for the configured window and
	// returns the signal for it. It never returns early and falls back
	// to 0 when no samples were collected.
	Sample() uint16

	SetAlgorithm(Algorithm)
	Algorithm() Algorithm
	SetGain(Gain)
	Gain() Gain

	// SetLow and SetHigh update the calibration pair of the active
	// algorithm; each algorithm keeps its own pair.
	SetLow(uint16)
	SetHigh(uint16)
	Low() uint16
	High() uint16
}

// calibration keeps one low/high threshold pair per algorithm so that
// switching algorithm does not clobber the other pair.
type calibration struct {
	low  [2]uint16
	high [2]uint16
}

func (c *calibration) set(a Algorithm, low, high uint16) {
	c.low[a] = low
	c.high[a] = high
}
