package loudness

import (
	"time"

	"github.com/dooshek/vibelight/internal/hw"
)

// i2sBlockFrames is the fixed transfer buffer size, matching the
// largest DMA block the bus delivers per read.
const i2sBlockFrames = 512

// I2SSampler reads blocks of signed 32-bit frames from a buffered
// digital microphone bus. Each frame is right-shifted by the profile's
// bit count to recover the true sample magnitude, and sentinel
// null-slot frames are dropped when the part requires it.
type I2SSampler struct {
	meter
	src hw.BlockReader
	buf [i2sBlockFrames]int32
}

func NewI2SSampler(src hw.BlockReader, clock hw.Clock, window time.Duration, profile Profile) *I2SSampler {
	return &I2SSampler{
		meter: newMeter(profile, clock, window),
		src:   src,
	}
}

func (s *I2SSampler) Sample() uint16 {
	return s.measure(s.poll)
}

func (s *I2SSampler) poll(a *acc) {
	n, err := s.src.ReadBlock(s.buf[:])
	if err != nil || n == 0 {
		// Empty or failed transfer; retried within the same window.
		return
	}
	for _, frame := range s.buf[:n] {
		if s.profile.FilterSentinels && (frame == 0 || frame == -1) {
			continue
		}
		a.add(frame >> s.profile.BitShift)
	}
}
