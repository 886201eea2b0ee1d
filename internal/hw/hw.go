// Package hw declares the hardware boundary the controller renders
// against. Real pin and bus bindings live outside the module; the
// implementations here back the simulator and tests.
package hw

import "errors"

// ErrNoData is returned by front-end reads when nothing is buffered yet.
// Samplers swallow it and retry within the same window.
var ErrNoData = errors.New("no data available")

// DigitalPin is one on/off output channel.
type DigitalPin interface {
	Set(high bool)
}

// ADC reads one raw single-ended sample per call.
type ADC interface {
	ReadRaw() (uint16, error)
}

// BlockReader reads one DMA-style block of signed 32-bit frames per
// call, returning the number of frames written into buf. A zero count
// with a nil error means the transfer buffer has not filled yet.
type BlockReader interface {
	ReadBlock(buf []int32) (int, error)
}

// MemoryPin records its state; used by the simulator and tests.
type MemoryPin struct {
	high bool
}

func (p *MemoryPin) Set(high bool) { p.high = high }

func (p *MemoryPin) High() bool { return p.high }

// MemoryPins returns n fresh memory pins and the same pins typed as
// DigitalPin for constructing a sequencer.
func MemoryPins(n int) ([]*MemoryPin, []DigitalPin) {
	mem := make([]*MemoryPin, n)
	pins := make([]DigitalPin, n)
	for i := range mem {
		mem[i] = &MemoryPin{}
		pins[i] = mem[i]
	}
	return mem, pins
}
