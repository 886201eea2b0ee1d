// Package engine owns the main control loop: it consumes debounced
// button presses, advances the active mode, samples loudness for
// reactive modes and dispatches to the active render behavior.
package engine

import (
	"context"
	"time"

	"github.com/dooshek/vibelight/internal/button"
	"github.com/dooshek/vibelight/internal/command"
	"github.com/dooshek/vibelight/internal/logger"
	"github.com/dooshek/vibelight/internal/loudness"
	"github.com/dooshek/vibelight/internal/modes"
	"github.com/dooshek/vibelight/internal/sequencer"
)

// loopIdle paces the loop between iterations. Reactive modes already
// block for the whole sample window; this only keeps periodic modes
// from spinning.
const loopIdle = 2 * time.Millisecond

// inboundQueue bounds the backlog of not-yet-dispatched command lines.
const inboundQueue = 16

type Engine struct {
	seq      *sequencer.Sequencer
	sampler  loudness.Sampler
	deb      *button.Debouncer
	registry *modes.Registry
	router   *command.Router

	// inbound carries command lines from transport goroutines onto
	// the loop goroutine. All engine and sampler state is owned by
	// that one goroutine; transports only enqueue.
	inbound chan string

	active     int
	start      time.Time
	lastSignal uint16
	frame      modes.Frame
}

func New(seq *sequencer.Sequencer, sampler loudness.Sampler, deb *button.Debouncer, registry *modes.Registry) *Engine {
	return &Engine{
		seq:      seq,
		sampler:  sampler,
		deb:      deb,
		registry: registry,
		inbound:  make(chan string, inboundQueue),
	}
}

// ActiveIndex returns the index of the active mode. The engine, not
// the registry, owns this state.
func (e *Engine) ActiveIndex() int {
	return e.active
}

// ActiveMode returns the active mode descriptor.
func (e *Engine) ActiveMode() modes.Mode {
	m, _ := e.registry.At(e.active)
	return m
}

// LastSignal returns the signal of the most recent reactive sample.
func (e *Engine) LastSignal() uint16 {
	return e.lastSignal
}

// Sampler exposes the sampler for boundary-layer setters.
func (e *Engine) Sampler() loudness.Sampler {
	return e.sampler
}

// Sequencer exposes the channel array for visualization.
func (e *Engine) Sequencer() *sequencer.Sequencer {
	return e.seq
}

// QueueLine hands one inbound command line to the loop goroutine. It
// never blocks: when the queue is full the line is dropped, which is
// what the serial link of the original hardware did under backpressure.
func (e *Engine) QueueLine(line string) bool {
	select {
	case e.inbound <- line:
		return true
	default:
		logger.Warnf("Inbound queue full, dropping %q", line)
		return false
	}
}

// drainInbound dispatches every queued command line on the loop
// goroutine.
func (e *Engine) drainInbound() {
	for {
		select {
		case line := <-e.inbound:
			if e.router != nil {
				e.router.Dispatch(line)
			}
		default:
			return
		}
	}
}

// Step runs one loop iteration at the given time.
func (e *Engine) Step(now time.Time) {
	if e.start.IsZero() {
		e.start = now
	}

	e.drainInbound()

	if e.deb.ConsumePressed() {
		e.AdvanceMode()
	}

	// Post-press cooldown: skip non-input work.
	if e.deb.ShouldSkipLoop() {
		return
	}

	mode, ok := e.registry.At(e.active)
	if !ok {
		return
	}

	e.frame.Seq = e.seq
	if mode.Kind == modes.Reactive {
		e.lastSignal = e.sampler.Sample()
		e.frame.Signal = e.lastSignal
		e.frame.Low = e.sampler.Low()
		e.frame.High = e.sampler.High()
	} else {
		e.frame.Elapsed = now.Sub(e.start)
	}
	mode.Render(&e.frame)
}

// AdvanceMode moves to the next registry entry, wrapping at the end,
// and resets the new mode's private state through its on-enter hook.
func (e *Engine) AdvanceMode() {
	e.active = e.registry.Next(e.active)
	mode, ok := e.registry.At(e.active)
	if !ok {
		return
	}
	if mode.OnEnter != nil {
		mode.OnEnter()
	}
	logger.Infof("Mode switched to %s (%s)", mode.Name, mode.Kind)
	if e.router != nil {
		e.router.SendString("M", mode.Name)
	}
}

// Run drives Step until the context is cancelled, then blanks the
// channel array.
func (e *Engine) Run(ctx context.Context) {
	logger.Infof("Engine running: %d modes, %d channels", e.registry.Len(), e.seq.Count())
	for {
		select {
		case <-ctx.Done():
			e.seq.None()
			return
		default:
		}
		e.Step(time.Now())
		time.Sleep(loopIdle)
	}
}
