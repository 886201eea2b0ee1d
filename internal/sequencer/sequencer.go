// Package sequencer renders wire-activation patterns onto an ordered
// array of output channels. Every render call fully overwrites the
// recorded pattern; there are no partial updates.
package sequencer

import (
	"math/rand"
	"time"

	"github.com/dooshek/vibelight/internal/hw"
)

type Sequencer struct {
	pins    []hw.DigitalPin
	pattern []bool
	indices []int
	rnd     *rand.Rand
}

// New creates a sequencer over the given channels, in display order.
func New(pins []hw.DigitalPin) *Sequencer {
	return NewWithRand(pins, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a sequencer with a caller-controlled random
// source for the random render primitives.
func NewWithRand(pins []hw.DigitalPin, rnd *rand.Rand) *Sequencer {
	indices := make([]int, len(pins))
	for i := range indices {
		indices[i] = i
	}
	return &Sequencer{
		pins:    pins,
		pattern: make([]bool, len(pins)),
		indices: indices,
		rnd:     rnd,
	}
}

// Begin drives every channel to a defined off state. Must be called
// before any render call is trusted.
func (s *Sequencer) Begin() {
	s.None()
}

// Count returns the number of channels.
func (s *Sequencer) Count() int {
	return len(s.pins)
}

func (s *Sequencer) set(i int, on bool) {
	s.pins[i].Set(on)
	s.pattern[i] = on
}

// LightCount turns on the n lowest-indexed channels and the rest off.
// n is clamped to the channel count.
func (s *Sequencer) LightCount(n int) {
	for i := range s.pins {
		s.set(i, i < n)
	}
}

// LightAt turns on exactly the channel at index; an out-of-range index
// turns everything off.
func (s *Sequencer) LightAt(index int) {
	for i := range s.pins {
		s.set(i, i == index)
	}
}

// LightRunUpTo turns on the channels in the trailing half-open window
// (pos-window, pos], clipped to channel bounds. Used for comet sweeps.
func (s *Sequencer) LightRunUpTo(window, pos int) {
	for i := range s.pins {
		s.set(i, i > pos-window && i <= pos)
	}
}

// LightMask applies the caller-supplied pattern verbatim. Channels
// beyond the mask length are turned off.
func (s *Sequencer) LightMask(mask []bool) {
	for i := range s.pins {
		s.set(i, i < len(mask) && mask[i])
	}
}

// All turns every channel on.
func (s *Sequencer) All() {
	for i := range s.pins {
		s.set(i, true)
	}
}

// None turns every channel off.
func (s *Sequencer) None() {
	for i := range s.pins {
		s.set(i, false)
	}
}

// RandomSubset turns each channel on or off independently with
// probability 0.5.
func (s *Sequencer) RandomSubset() {
	for i := range s.pins {
		s.set(i, s.rnd.Intn(2) == 1)
	}
}

// RandomCount turns on exactly k channels chosen uniformly, via a
// partial Fisher-Yates shuffle so repeated calls do not favor low
// indices. k is clamped to [0, Count].
func (s *Sequencer) RandomCount(k int) {
	n := len(s.pins)
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + s.rnd.Intn(n-i)
		s.indices[i], s.indices[j] = s.indices[j], s.indices[i]
	}
	for i := range s.pins {
		s.set(i, false)
	}
	for i := 0; i < k; i++ {
		s.set(s.indices[i], true)
	}
}

// CopyPattern copies the current pattern into dst without allocating.
func (s *Sequencer) CopyPattern(dst []bool) {
	copy(dst, s.pattern)
}

// Pattern returns a copy of the current pattern.
func (s *Sequencer) Pattern() []bool {
	out := make([]bool, len(s.pattern))
	copy(out, s.pattern)
	return out
}

// IsOn reports whether the channel at index is on; false when the
// index is out of range.
func (s *Sequencer) IsOn(index int) bool {
	if index < 0 || index >= len(s.pattern) {
		return false
	}
	return s.pattern[index]
}

// OnCount returns the number of channels currently on.
func (s *Sequencer) OnCount() int {
	count := 0
	for _, on := range s.pattern {
		if on {
			count++
		}
	}
	return count
}

// StartupSweep plays the cosmetic boot sequence: an ascending sweep, a
// descending sweep, then ten fast full blinks. Pass step 0 to run it
// without delays.
func (s *Sequencer) StartupSweep(step time.Duration) {
	for i := 0; i <= len(s.pins); i++ {
		s.LightCount(i)
		sleep(step)
	}
	for i := len(s.pins); i >= 0; i-- {
		s.LightCount(i)
		sleep(step)
	}
	for i := 0; i < 10; i++ {
		s.None()
		sleep(step / 2)
		s.All()
		sleep(step / 2)
	}
	s.None()
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
