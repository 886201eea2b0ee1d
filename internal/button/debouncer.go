// Package button turns raw edge interrupts into debounced single-shot
// press events.
package button

import (
	"sync/atomic"
	"time"
)

// Debouncer is a two-state edge filter. FallingEdge and RisingEdge run
// in interrupt context; ConsumePressed and ShouldSkipLoop run on the
// main loop. The pressed flag and the two timestamps are the only
// state shared across that boundary, so everything is a word-sized
// atomic and the edge handlers never block or allocate.
type Debouncer struct {
	debounceMs int64
	pauseMs    int64
	now        func() int64 // milliseconds

	pressed   atomic.Bool
	lastPress atomic.Int64
	lastEdge  atomic.Int64
}

// New creates a debouncer. debounce is the minimum spacing between
// accepted edges; pause is the post-press loop cooldown.
func New(debounce, pause time.Duration) *Debouncer {
	start := time.Now()
	return NewWithClock(debounce, pause, func() int64 {
		return time.Since(start).Milliseconds()
	})
}

// NewWithClock creates a debouncer with a caller-controlled
// millisecond clock.
func NewWithClock(debounce, pause time.Duration, now func() int64) *Debouncer {
	d := &Debouncer{
		debounceMs: debounce.Milliseconds(),
		pauseMs:    pause.Milliseconds(),
		now:        now,
	}
	// Start outside the pause window.
	d.lastPress.Store(-d.pauseMs - 1)
	d.lastEdge.Store(-d.debounceMs - 1)
	return d
}

// FallingEdge handles a falling edge interrupt. The edge is accepted
// as a press only when the debounce interval has elapsed since the
// last edge of either polarity; extra bounces inside the interval only
// refresh the edge timestamp.
func (d *Debouncer) FallingEdge() {
	now := d.now()
	if now-d.lastEdge.Load() > d.debounceMs {
		d.pressed.Store(true)
		d.lastPress.Store(now)
	}
	d.lastEdge.Store(now)
}

// RisingEdge handles a rising edge interrupt. It only re-arms the next
// falling edge test; it never produces a press.
func (d *Debouncer) RisingEdge() {
	d.lastEdge.Store(d.now())
}

// ConsumePressed reports and clears the pending press. It returns true
// at most once per accepted press; the caller is the single consumer.
func (d *Debouncer) ConsumePressed() bool {
	return d.pressed.Swap(false)
}

// ShouldSkipLoop reports whether the post-press cooldown is still
// running. The orchestrating loop is expected to skip non-input work
// while true; this is a hint, not an interrupt-level guarantee.
func (d *Debouncer) ShouldSkipLoop() bool {
	return d.now()-d.lastPress.Load() <= d.pauseMs
}

// LastPressMillis returns the clock time of the last accepted press.
func (d *Debouncer) LastPressMillis() int64 {
	return d.lastPress.Load()
}
