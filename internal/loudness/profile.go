package loudness

// Profile carries the constants that differ between microphone
// front-ends: the bit shift that recovers the true sample magnitude,
// whether null-slot sentinel frames must be dropped, the per-gain
// scale divisors and the clamp ceiling of the resulting signal.
type Profile struct {
	// BitShift is the right shift applied to each raw frame.
	BitShift uint
	// FilterSentinels drops 0 and -1 frames. Some digital microphones
	// emit these for the unused channel slot or during silence; they
	// corrupt min/max and RMS equally.
	FilterSentinels bool
	// ScaleTable holds the amplitude divisor per Gain, monotonically
	// decreasing as sensitivity increases.
	ScaleTable [3]float64
	// MaxSignal is the inclusive ceiling the scaled signal is clamped
	// to. Clamp, never wrap.
	MaxSignal uint16
	// Rest is the raw resting level of a silent input, used to seed
	// the DC baseline trackers.
	Rest float64
}

// Analog describes the single-ended 12-bit ADC front-end.
var Analog = Profile{
	BitShift:        0,
	FilterSentinels: false,
	ScaleTable:      [3]float64{4.0, 2.0, 1.0},
	MaxSignal:       4095,
	Rest:            2048,
}

// INMP441 describes the I2S microphone with a 12-bit recovery shift.
var INMP441 = Profile{
	BitShift:        12,
	FilterSentinels: false,
	ScaleTable:      [3]float64{300.0, 60.0, 15.0},
	MaxSignal:       65535,
	Rest:            0,
}

// SPH0645 describes the I2S microphone that needs a 14-bit recovery
// shift and sentinel filtering.
var SPH0645 = Profile{
	BitShift:        14,
	FilterSentinels: true,
	ScaleTable:      [3]float64{300.0, 60.0, 15.0},
	MaxSignal:       65535,
	Rest:            0,
}

// I2SProfile returns the profile for a configured microphone part
// name, defaulting to the INMP441.
func I2SProfile(mic string) Profile {
	if mic == "sph0645" {
		return SPH0645
	}
	return INMP441
}

// scale divides the raw amplitude by the gain divisor and clamps the
// result into [0, MaxSignal].
func (p Profile) scale(raw float64, g Gain) uint16 {
	if raw <= 0 {
		return 0
	}
	scaled := raw / p.ScaleTable[g]
	if scaled >= float64(p.MaxSignal) {
		return p.MaxSignal
	}
	return uint16(scaled)
}
