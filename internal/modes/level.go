package modes

// MapLevel maps a signal onto 0..n channels using the active
// calibration pair: at or below low nothing lights, at or above high
// everything does, linear in between. A degenerate pair (high <= low)
// maps everything to 0.
func MapLevel(signal, low, high uint16, n int) int {
	if high <= low || signal <= low {
		return 0
	}
	if signal >= high {
		return n
	}
	return int(uint32(signal-low) * uint32(n) / uint32(high-low))
}
