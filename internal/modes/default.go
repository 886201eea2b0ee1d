package modes

import "math/rand"

// DefaultRegistry returns the mode table of the original build: four
// reactive behaviors followed by five periodic ones. Per-mode state
// resets on entry through the OnEnter hooks.
func DefaultRegistry(rnd *rand.Rand) *Registry {
	pd := &pulseDecay{}
	rf := &randFlash{}
	rs := &randSwap{rnd: rnd}
	rt := &randomTicker{}

	return NewRegistry(
		Mode{Name: "rPulse", Kind: Reactive, Render: (&pulse{}).render},
		Mode{Name: "rPulseDecay", Kind: Reactive, Render: pd.render, OnEnter: pd.reset},
		Mode{Name: "rRand", Kind: Reactive, Render: rf.render, OnEnter: rf.reset},
		Mode{Name: "rRandSwap", Kind: Reactive, Render: rs.render, OnEnter: rs.reset},
		Mode{Name: "fPulseUp", Kind: Periodic, Render: (&pulseUp{}).render},
		Mode{Name: "fPulseUpDown", Kind: Periodic, Render: (&pulseUpDown{}).render},
		Mode{Name: "fFlash", Kind: Periodic, Render: (&flash{}).render},
		Mode{Name: "fFlashDecay", Kind: Periodic, Render: (&flashDecay{}).render},
		Mode{Name: "fRandom", Kind: Periodic, Render: rt.render, OnEnter: rt.reset},
	)
}
