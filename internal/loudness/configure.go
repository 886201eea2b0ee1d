package loudness

import "github.com/dooshek/vibelight/internal/types"

// Apply loads both calibration pairs, the algorithm and the gain from
// configuration onto a sampler.
func Apply(s Sampler, cfg types.SamplerConfig) {
	s.SetAlgorithm(PeakToPeak)
	s.SetLow(cfg.PeakToPeak.Low)
	s.SetHigh(cfg.PeakToPeak.High)

	s.SetAlgorithm(RMS)
	s.SetLow(cfg.RMS.Low)
	s.SetHigh(cfg.RMS.High)

	alg, _ := ParseAlgorithm(cfg.Algorithm)
	s.SetAlgorithm(alg)

	gain, _ := ParseGain(cfg.Gain)
	s.SetGain(gain)
}
