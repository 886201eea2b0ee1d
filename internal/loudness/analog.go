package loudness

import (
	"time"

	"github.com/dooshek/vibelight/internal/hw"
)

// AnalogSampler reads one scalar per poll from a single-ended ADC.
type AnalogSampler struct {
	meter
	adc hw.ADC
}

func NewAnalogSampler(adc hw.ADC, clock hw.Clock, window time.Duration) *AnalogSampler {
	return &AnalogSampler{
		meter: newMeter(Analog, clock, window),
		adc:   adc,
	}
}

func (s *AnalogSampler) Sample() uint16 {
	return s.measure(s.poll)
}

func (s *AnalogSampler) poll(a *acc) {
	raw, err := s.adc.ReadRaw()
	if err != nil {
		// Retried on the next poll within the same window.
		return
	}
	a.add(int32(raw))
}
