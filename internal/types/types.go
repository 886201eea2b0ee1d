package types

// Config is the full on-disk configuration for vibelight
type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Button    ButtonConfig    `yaml:"button"`
	Transport TransportConfig `yaml:"transport"`
}

// DeviceConfig describes the EL channel array
type DeviceConfig struct {
	ChannelPins  []int `yaml:"channel_pins"`            // output pin per channel, in display order
	StartupSweep *bool `yaml:"startup_sweep,omitempty"` // play the cosmetic sweep on boot; nil means unset
}

// SweepEnabled resolves the startup sweep setting; an unset field keeps
// the hardware-build default of playing the sweep.
func (d DeviceConfig) SweepEnabled() bool {
	if d.StartupSweep == nil {
		return true
	}
	return *d.StartupSweep
}

// SamplerConfig describes the audio front-end
type SamplerConfig struct {
	Backend    string          `yaml:"backend"`        // "analog" or "i2s"
	WindowMs   int             `yaml:"window_ms"`      // busy-poll window per sample call
	Algorithm  string          `yaml:"algorithm"`      // "p2p" or "rms"
	Gain       string          `yaml:"gain"`           // "low", "medium" or "high"
	Auto       *bool           `yaml:"auto,omitempty"` // auto-calibrating pipeline; nil means unset
	PeakToPeak ThresholdConfig `yaml:"peak_to_peak"`
	RMS        ThresholdConfig `yaml:"rms"`
	I2S        I2SConfig       `yaml:"i2s"`
}

// AutoEnabled resolves the auto-calibration setting; unset keeps the
// manually calibrated threshold pairs.
func (s SamplerConfig) AutoEnabled() bool {
	return s.Auto != nil && *s.Auto
}

// ThresholdConfig is one low/high calibration pair
type ThresholdConfig struct {
	Low  uint16 `yaml:"low"`
	High uint16 `yaml:"high"`
}

// I2SConfig selects the digital microphone part and its transfer rate
type I2SConfig struct {
	Mic        string `yaml:"mic"` // "inmp441" or "sph0645"
	SampleRate int    `yaml:"sample_rate"`
}

// ButtonConfig describes the mode button input
type ButtonConfig struct {
	Pin        int `yaml:"pin"`
	DebounceMs int `yaml:"debounce_ms"`
	PauseMs    int `yaml:"pause_ms"` // loop cooldown after an accepted press
}

// TransportConfig describes the command transport boundary
type TransportConfig struct {
	Listen     string `yaml:"listen"` // websocket listen address, empty disables it
	DeviceName string `yaml:"device_name"`
}
