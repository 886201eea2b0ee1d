package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dooshek/vibelight/internal/logger"
	"github.com/dooshek/vibelight/internal/types"
	"github.com/fatih/color"
)

const (
	wizardMeasureCount = 40
	wizardFloorMargin  = 1.3 // low threshold sits above the measured ambient
	wizardPeakFraction = 0.8 // high threshold sits below the measured peak
)

// RunWizard walks the user through threshold calibration. The sample
// function is the live front-end; each call blocks for one window.
func RunWizard(sample func() uint16) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Println("\n🎚  Welcome to the vibelight calibration wizard!")
	fmt.Println("\nThis wizard measures your room and microphone to pick the")
	fmt.Println("low/high thresholds used by the reactive modes.")

	reader := bufio.NewReader(os.Stdin)

	cyan.Println("\nStep 1: keep the room quiet, then press Enter...")
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	ambient := measureAverage(sample)
	yellow.Printf("Ambient level: %d\n", ambient)

	cyan.Println("\nStep 2: play music at the loudest level you expect, then press Enter...")
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	peak := measurePeak(sample)
	yellow.Printf("Peak level: %d\n", peak)

	if peak <= ambient {
		err := fmt.Errorf("peak level %d is not above ambient level %d", peak, ambient)
		logger.Error("Calibration failed", err)
		return err
	}

	low := uint16(float64(ambient) * wizardFloorMargin)
	high := uint16(float64(peak) * wizardPeakFraction)
	if high <= low {
		high = low + 1
	}

	fmt.Print("\nApply to which algorithm? [p2p/rms] (default p2p): ")
	algo, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	algo = strings.ToLower(strings.TrimSpace(algo))

	cfg := &types.Config{}
	switch algo {
	case "rms":
		cfg.Sampler.Algorithm = "rms"
		cfg.Sampler.RMS = types.ThresholdConfig{Low: low, High: high}
	default:
		cfg.Sampler.Algorithm = "p2p"
		cfg.Sampler.PeakToPeak = types.ThresholdConfig{Low: low, High: high}
	}

	if err := SaveConfig(cfg); err != nil {
		logger.Error("Failed to save configuration", err)
		return err
	}

	green.Printf("\n✅ Saved thresholds low=%d high=%d\n", low, high)
	return nil
}

func measureAverage(sample func() uint16) uint16 {
	var sum uint64
	for i := 0; i < wizardMeasureCount; i++ {
		sum += uint64(sample())
		time.Sleep(25 * time.Millisecond)
	}
	return uint16(sum / wizardMeasureCount)
}

func measurePeak(sample func() uint16) uint16 {
	var peak uint16
	for i := 0; i < wizardMeasureCount; i++ {
		if s := sample(); s > peak {
			peak = s
		}
		time.Sleep(25 * time.Millisecond)
	}
	return peak
}
