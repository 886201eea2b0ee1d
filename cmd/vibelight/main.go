package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dooshek/vibelight/internal/audio"
	"github.com/dooshek/vibelight/internal/button"
	"github.com/dooshek/vibelight/internal/command"
	"github.com/dooshek/vibelight/internal/config"
	"github.com/dooshek/vibelight/internal/engine"
	"github.com/dooshek/vibelight/internal/fileops"
	"github.com/dooshek/vibelight/internal/hw"
	"github.com/dooshek/vibelight/internal/logger"
	"github.com/dooshek/vibelight/internal/loudness"
	"github.com/dooshek/vibelight/internal/modes"
	"github.com/dooshek/vibelight/internal/sequencer"
	"github.com/dooshek/vibelight/internal/sim"
	"github.com/dooshek/vibelight/internal/state"
	"github.com/dooshek/vibelight/internal/transport"
	"github.com/dooshek/vibelight/internal/types"
)

const (
	startupSweepStep = 150 * time.Millisecond
	simToneFreq      = 440.0
)

func init() {
	// Set custom usage message to show -- prefix
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(out, "  --%s", f.Name)
			name, usage := flag.UnquoteUsage(f)
			if len(name) > 0 {
				fmt.Fprintf(out, " %s", name)
			}
			fmt.Fprintf(out, "\n    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %q)", f.DefValue)
			}
			fmt.Fprintf(out, "\n")
		})
	}
}

func main() {
	runWizard := flag.Bool("wizard", false, "Run the threshold calibration wizard")
	logLevel := flag.String("log-level", "info", "Set log level (debug|info|warn|error)")
	logFilename := flag.String("log-filename", "", "Log to file instead of stdout")

	// Check for the sim subcommand before parsing global flags
	if len(os.Args) > 1 && os.Args[1] == "sim" {
		simCmd := flag.NewFlagSet("sim", flag.ExitOnError)

		simLogLevel := simCmd.String("log-level", "warn", "Set log level (debug|info|warn|error)")
		simLogFilename := simCmd.String("log-filename", "", "Log to file instead of stdout")
		toneFreq := simCmd.Float64("tone-freq", simToneFreq, "Synthetic tone frequency in Hz")

		if err := simCmd.Parse(os.Args[2:]); err != nil {
			fmt.Printf("Error parsing sim flags: %v\n", err)
			os.Exit(1)
		}

		logger.SetLevel(*simLogLevel)
		if *simLogFilename != "" {
			if err := logger.SetOutputFile(*simLogFilename); err != nil {
				fmt.Printf("Error setting log file: %v\n", err)
				os.Exit(1)
			}
			defer logger.CloseLogFile()
		}

		if err := runSim(*toneFreq); err != nil {
			logger.Error("Simulator failed", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	flag.Parse()

	logger.SetLevel(*logLevel)
	if *logFilename != "" {
		if err := logger.SetOutputFile(*logFilename); err != nil {
			fmt.Printf("Error setting log file: %v\n", err)
			os.Exit(1)
		}
		defer logger.CloseLogFile()
	}

	cfg := loadOrDefault()
	state.Init(cfg)

	capture, err := audio.NewCapture(cfg.Sampler.I2S.SampleRate)
	if err != nil {
		logger.Error("Failed to open audio capture", err)
		os.Exit(1)
	}
	defer capture.Close()

	sampler := newSampler(cfg, capture.ADC(), capture.BlockReader)
	loudness.Apply(sampler, cfg.Sampler)

	if *runWizard {
		if err := config.RunWizard(sampler.Sample); err != nil {
			logger.Error("Error running wizard", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		logger.Error("Failed to initialize file operations", err)
		os.Exit(1)
	}
	if err := fileOps.EnsureDirectories(); err != nil {
		logger.Error("Failed to create necessary directories", err)
		os.Exit(1)
	}

	// Check if another instance is running
	if err := fileOps.CheckPID(); err != nil {
		if errors.Is(err, fileops.ErrProcessAlreadyRunning) {
			logger.Error("Another instance of vibelight is already running", err)
			os.Exit(1)
		}
	}
	if err := fileOps.SavePID(); err != nil {
		logger.Error("Failed to save PID file", err)
		os.Exit(1)
	}

	_, pins := hw.MemoryPins(state.Get().ChannelCount())
	seq := sequencer.New(pins)
	seq.Begin()
	if cfg.Device.SweepEnabled() {
		seq.StartupSweep(startupSweepStep)
	}

	deb := newDebouncer(cfg)
	registry := modes.DefaultRegistry(rand.New(rand.NewSource(time.Now().UnixNano())))
	eng := engine.New(seq, sampler, deb, registry)

	var sender command.Sender = transport.NewLineWriter(os.Stdout)
	var ws *transport.WSServer
	if cfg.Transport.Listen != "" {
		// Inbound lines go through the engine's queue so that the
		// command handlers run on the loop goroutine.
		ws = transport.NewWSServer(eng.QueueLine)
		sender = transport.Multi(sender, ws)
	}

	eng.AttachRouter(command.NewRouter(sender))

	if ws != nil {
		go func() {
			if err := ws.ListenAndServe(cfg.Transport.Listen); err != nil {
				logger.Error("Websocket server failed", err)
			}
		}()
		defer ws.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Infof("Received signal %v, shutting down...", sig)
		cancel()
	}()

	logger.Infof("%s running: %d channels, %s backend", state.Get().DeviceName(),
		state.Get().ChannelCount(), cfg.Sampler.Backend)
	eng.Run(ctx)

	if err := fileOps.CleanupPID(); err != nil {
		logger.Error("Failed to cleanup PID file", err)
	}
}

// runSim drives the engine against the terminal front panel and the
// synthetic tone source instead of real hardware.
func runSim(toneFreq float64) error {
	cfg := loadOrDefault()
	state.Init(cfg)

	tone := audio.NewTone(toneFreq, cfg.Sampler.I2S.SampleRate)
	sampler := newSampler(cfg, tone, tone.BlockReader)
	loudness.Apply(sampler, cfg.Sampler)

	_, pins := hw.MemoryPins(state.Get().ChannelCount())
	seq := sequencer.New(pins)
	seq.Begin()

	deb := newDebouncer(cfg)
	registry := modes.DefaultRegistry(rand.New(rand.NewSource(time.Now().UnixNano())))
	eng := engine.New(seq, sampler, deb, registry)

	return sim.Run(eng, deb, tone)
}

func loadOrDefault() *types.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Error loading config", err)
		os.Exit(1)
	}
	if cfg == nil {
		logger.Info("No configuration found, using defaults. Run `vibelight --wizard` to calibrate.")
		cfg = config.Default()
	}
	return cfg
}

func newDebouncer(cfg *types.Config) *button.Debouncer {
	return button.New(
		time.Duration(cfg.Button.DebounceMs)*time.Millisecond,
		time.Duration(cfg.Button.PauseMs)*time.Millisecond,
	)
}

// newSampler builds the configured front-end. The analog backend reads
// scalars from the ADC adapter; the i2s backend reads frame blocks
// widened by the microphone profile's bit shift.
func newSampler(cfg *types.Config, adc hw.ADC, blocks func(shift uint) hw.BlockReader) loudness.Sampler {
	clock := hw.NewSystemClock()
	window := time.Duration(cfg.Sampler.WindowMs) * time.Millisecond
	var sampler loudness.Sampler
	if cfg.Sampler.Backend == "i2s" {
		profile := loudness.I2SProfile(cfg.Sampler.I2S.Mic)
		sampler = loudness.NewI2SSampler(blocks(profile.BitShift), clock, window, profile)
	} else {
		sampler = loudness.NewAnalogSampler(adc, clock, window)
	}
	if cfg.Sampler.AutoEnabled() {
		sampler = loudness.NewAutoSampler(sampler)
	}
	return sampler
}
