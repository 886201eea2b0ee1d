package config

import (
	"fmt"

	"github.com/dooshek/vibelight/internal/fileops"
	"github.com/dooshek/vibelight/internal/logger"
	"github.com/dooshek/vibelight/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	configFilename = "vibelight.yaml"
)

// Default returns the configuration matching the original hardware build:
// eight EL channels, a 15 ms sample window and the analog front-end at
// high gain.
func Default() *types.Config {
	return &types.Config{
		Device: types.DeviceConfig{
			ChannelPins:  []int{2, 4, 5, 12, 13, 14, 15, 16},
			StartupSweep: boolPtr(true),
		},
		Sampler: types.SamplerConfig{
			Backend:    "analog",
			WindowMs:   15,
			Algorithm:  "p2p",
			Gain:       "high",
			PeakToPeak: types.ThresholdConfig{Low: 100, High: 900},
			RMS:        types.ThresholdConfig{Low: 30, High: 300},
			I2S: types.I2SConfig{
				Mic:        "inmp441",
				SampleRate: 44100,
			},
		},
		Button: types.ButtonConfig{
			Pin:        0,
			DebounceMs: 5,
			PauseMs:    1000,
		},
		Transport: types.TransportConfig{
			Listen:     "",
			DeviceName: "vibelight",
		},
	}
}

func LoadConfig() (*types.Config, error) {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file operations: %w", err)
	}

	if err := fileOps.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := fileOps.LoadConfig(configFilename)
	if err != nil {
		if err == fileops.ErrConfigNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config types.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func SaveConfig(config *types.Config) error {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return fmt.Errorf("failed to initialize file operations: %w", err)
	}

	// Try to load existing config first
	existingConfig, err := LoadConfig()
	if err != nil {
		// Just log the error but continue with new config
		logger.Warnf("Failed to load existing config: %v", err)
	} else if existingConfig != nil {
		mergeConfigs(existingConfig, config)
		config = existingConfig
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileOps.SaveConfig(configFilename, data); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// mergeConfigs merges sourceConfig into targetConfig, preserving existing
// values in targetConfig that are not explicitly set in sourceConfig
func mergeConfigs(targetConfig, sourceConfig *types.Config) {
	if len(sourceConfig.Device.ChannelPins) > 0 {
		targetConfig.Device.ChannelPins = sourceConfig.Device.ChannelPins
	}
	if sourceConfig.Device.StartupSweep != nil {
		targetConfig.Device.StartupSweep = sourceConfig.Device.StartupSweep
	}

	if sourceConfig.Sampler.Backend != "" {
		targetConfig.Sampler.Backend = sourceConfig.Sampler.Backend
	}
	if sourceConfig.Sampler.WindowMs != 0 {
		targetConfig.Sampler.WindowMs = sourceConfig.Sampler.WindowMs
	}
	if sourceConfig.Sampler.Algorithm != "" {
		targetConfig.Sampler.Algorithm = sourceConfig.Sampler.Algorithm
	}
	if sourceConfig.Sampler.Gain != "" {
		targetConfig.Sampler.Gain = sourceConfig.Sampler.Gain
	}
	if sourceConfig.Sampler.Auto != nil {
		targetConfig.Sampler.Auto = sourceConfig.Sampler.Auto
	}
	if sourceConfig.Sampler.PeakToPeak.High != 0 {
		targetConfig.Sampler.PeakToPeak = sourceConfig.Sampler.PeakToPeak
	}
	if sourceConfig.Sampler.RMS.High != 0 {
		targetConfig.Sampler.RMS = sourceConfig.Sampler.RMS
	}
	if sourceConfig.Sampler.I2S.Mic != "" {
		targetConfig.Sampler.I2S.Mic = sourceConfig.Sampler.I2S.Mic
	}
	if sourceConfig.Sampler.I2S.SampleRate != 0 {
		targetConfig.Sampler.I2S.SampleRate = sourceConfig.Sampler.I2S.SampleRate
	}

	if sourceConfig.Button.DebounceMs != 0 {
		targetConfig.Button.DebounceMs = sourceConfig.Button.DebounceMs
	}
	if sourceConfig.Button.PauseMs != 0 {
		targetConfig.Button.PauseMs = sourceConfig.Button.PauseMs
	}

	if sourceConfig.Transport.Listen != "" {
		targetConfig.Transport.Listen = sourceConfig.Transport.Listen
	}
	if sourceConfig.Transport.DeviceName != "" {
		targetConfig.Transport.DeviceName = sourceConfig.Transport.DeviceName
	}
}

func boolPtr(v bool) *bool {
	return &v
}
