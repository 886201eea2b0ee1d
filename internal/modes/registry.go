// Package modes holds the fixed table of render behaviors and the
// dispatch metadata the engine needs to drive them.
package modes

import (
	"time"

	"github.com/dooshek/vibelight/internal/sequencer"
)

// Kind classifies what input a render behavior consumes.
type Kind int

const (
	// Reactive renders consume the latest loudness signal.
	Reactive Kind = iota
	// Periodic renders consume elapsed time only.
	Periodic
)

func (k Kind) String() string {
	if k == Periodic {
		return "periodic"
	}
	return "reactive"
}

// Frame is the per-iteration input handed to a render function.
// Signal, Low and High are meaningful for reactive modes; Elapsed for
// periodic ones.
type Frame struct {
	Signal  uint16
	Low     uint16
	High    uint16
	Elapsed time.Duration
	Seq     *sequencer.Sequencer
}

// Mode is one immutable registry entry. OnEnter, when set, resets the
// behavior's private state; the engine calls it on every switch into
// the mode.
type Mode struct {
	Name    string
	Kind    Kind
	Render  func(*Frame)
	OnEnter func()
}

// Registry is a fixed sequence of modes. It holds no notion of an
// active entry; the orchestrating loop owns that index.
type Registry struct {
	modes []Mode
}

func NewRegistry(modes ...Mode) *Registry {
	return &Registry{modes: modes}
}

func (r *Registry) Len() int {
	return len(r.modes)
}

// At returns the mode at index, or false when the index is out of
// range.
func (r *Registry) At(index int) (Mode, bool) {
	if index < 0 || index >= len(r.modes) {
		return Mode{}, false
	}
	return r.modes[index], true
}

// IsReactive reports whether the mode at index consumes the loudness
// signal; out-of-range indices report false.
func (r *Registry) IsReactive(index int) bool {
	m, ok := r.At(index)
	return ok && m.Kind == Reactive
}

// Next returns the index that follows the given one, wrapping at the
// registry size.
func (r *Registry) Next(index int) int {
	if len(r.modes) == 0 {
		return 0
	}
	return (index + 1) % len(r.modes)
}

// Names returns the mode labels in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.modes))
	for i, m := range r.modes {
		names[i] = m.Name
	}
	return names
}
