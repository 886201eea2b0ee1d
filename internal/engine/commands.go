package engine

import (
	"strconv"

	"github.com/dooshek/vibelight/internal/command"
	"github.com/dooshek/vibelight/internal/logger"
	"github.com/dooshek/vibelight/internal/loudness"
)

// AttachRouter wires the remote-control commands onto the router and
// keeps it for status pushes. Single-letter prefixes, remainder of the
// line is the parameter.
func (e *Engine) AttachRouter(r *command.Router) {
	e.router = r

	r.Register("M", func(string) {
		e.AdvanceMode()
	})

	r.Register("A", func(param string) {
		alg, ok := loudness.ParseAlgorithm(param)
		if !ok {
			logger.Warnf("Unknown algorithm %q", param)
			return
		}
		e.sampler.SetAlgorithm(alg)
		r.SendString("A", alg.String())
	})

	r.Register("G", func(param string) {
		gain, ok := loudness.ParseGain(param)
		if !ok {
			logger.Warnf("Unknown gain %q", param)
			return
		}
		e.sampler.SetGain(gain)
		r.SendValue("G", int(gain))
	})

	r.Register("L", func(param string) {
		if v, ok := parseLevel(param); ok {
			e.sampler.SetLow(v)
			r.SendValue("L", int(v))
		}
	})

	r.Register("H", func(param string) {
		if v, ok := parseLevel(param); ok {
			e.sampler.SetHigh(v)
			r.SendValue("H", int(v))
		}
	})

	r.Register("S", func(string) {
		r.SendValue("S", int(e.lastSignal))
	})

	r.Register("?", func(string) {
		e.SendStatus()
	})
}

// SendStatus pushes the full controller state as one frame per field.
func (e *Engine) SendStatus() {
	if e.router == nil {
		return
	}
	e.router.SendString("M", e.ActiveMode().Name)
	e.router.SendString("A", e.sampler.Algorithm().String())
	e.router.SendValue("G", int(e.sampler.Gain()))
	e.router.SendValue("L", int(e.sampler.Low()))
	e.router.SendValue("H", int(e.sampler.High()))
	e.router.SendValue("S", int(e.lastSignal))
}

func parseLevel(param string) (uint16, bool) {
	v, err := strconv.Atoi(param)
	if err != nil || v < 0 || v > 65535 {
		logger.Warnf("Bad threshold value %q", param)
		return 0, false
	}
	return uint16(v), true
}
