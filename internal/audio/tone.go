package audio

import (
	"math"
	"sync"

	"github.com/dooshek/vibelight/internal/hw"
)

// Tone is a synthetic sine source for running without a microphone.
// Its amplitude is adjustable at runtime, which makes it the signal
// generator behind the simulator's level keys.
type Tone struct {
	mu        sync.Mutex
	amplitude float64
	phase     float64
	step      float64
}

func NewTone(freqHz float64, sampleRate int) *Tone {
	return &Tone{
		amplitude: 0.5,
		step:      2 * math.Pi * freqHz / float64(sampleRate),
	}
}

// SetAmplitude sets the output amplitude, clamped to [0, 1].
func (t *Tone) SetAmplitude(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	t.mu.Lock()
	t.amplitude = a
	t.mu.Unlock()
}

func (t *Tone) Amplitude() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.amplitude
}

// next advances the oscillator one sample. Caller holds the lock.
func (t *Tone) next() float64 {
	v := t.amplitude * math.Sin(t.phase)
	t.phase += t.step
	if t.phase > 2*math.Pi {
		t.phase -= 2 * math.Pi
	}
	return v
}

// ReadRaw implements the analog front-end: centered 12-bit readings.
func (t *Tone) ReadRaw() (uint16, error) {
	t.mu.Lock()
	v := t.next()
	t.mu.Unlock()
	return uint16(v*2047 + 2048), nil
}

// BlockReader adapts the oscillator to the digital front-end with the
// given profile shift.
func (t *Tone) BlockReader(shift uint) hw.BlockReader {
	return toneBlock{t: t, shift: shift}
}

type toneBlock struct {
	t     *Tone
	shift uint
}

func (b toneBlock) ReadBlock(dst []int32) (int, error) {
	b.t.mu.Lock()
	defer b.t.mu.Unlock()
	for i := range dst {
		dst[i] = int32(b.t.next()*32767) << b.shift
	}
	return len(dst), nil
}
