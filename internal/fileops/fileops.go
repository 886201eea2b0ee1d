package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dooshek/vibelight/internal/logger"
)

// ErrConfigNotFound is returned when a configuration file does not exist
var ErrConfigNotFound = errors.New("configuration file not found")

// ErrProcessAlreadyRunning is returned when the vibelight process is already running
var ErrProcessAlreadyRunning = errors.New("vibelight process is already running")

// FileOps interface defines operations for managing files in the vibelight config directory
type FileOps interface {
	// GetConfigDir returns the full path to the vibelight config directory
	GetConfigDir() string

	// SaveConfig saves data to a file in the config directory
	SaveConfig(filename string, data []byte) error

	// LoadConfig loads data from a file in the config directory
	LoadConfig(filename string) ([]byte, error)

	// EnsureDirectories creates necessary directories if they don't exist
	EnsureDirectories() error

	// SavePID saves the current process ID to a file
	SavePID() error

	// CheckPID checks if another instance is running
	// Returns ErrProcessAlreadyRunning if another instance is running
	CheckPID() error

	// CleanupPID removes the PID file
	CleanupPID() error
}

// DefaultFileOps implements FileOps interface
type DefaultFileOps struct {
	configDir string
}

// NewDefaultFileOps creates a new DefaultFileOps instance
func NewDefaultFileOps() (*DefaultFileOps, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &DefaultFileOps{
		configDir: filepath.Join(homeDir, ".config", "vibelight"),
	}, nil
}

func (f *DefaultFileOps) GetConfigDir() string {
	return f.configDir
}

func (f *DefaultFileOps) SaveConfig(filename string, data []byte) error {
	path := filepath.Join(f.configDir, filename)
	return os.WriteFile(path, data, 0o644)
}

func (f *DefaultFileOps) LoadConfig(filename string) ([]byte, error) {
	path := filepath.Join(f.configDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}
	return os.ReadFile(path)
}

func (f *DefaultFileOps) EnsureDirectories() error {
	if err := os.MkdirAll(f.configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (f *DefaultFileOps) pidPath() string {
	return filepath.Join(f.configDir, "vibelight.pid")
}

func (f *DefaultFileOps) SavePID() error {
	pid := os.Getpid()
	return os.WriteFile(f.pidPath(), []byte(strconv.Itoa(pid)), 0o644)
}

func (f *DefaultFileOps) CheckPID() error {
	data, err := os.ReadFile(f.pidPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		// Stale or corrupt PID file, remove it
		logger.Warnf("Removing corrupt PID file: %v", err)
		return f.CleanupPID()
	}

	// Signal 0 only checks whether the process exists
	process, err := os.FindProcess(pid)
	if err == nil {
		if err := process.Signal(syscall.Signal(0)); err == nil {
			return ErrProcessAlreadyRunning
		}
	}

	// Process is gone, remove the stale file
	return f.CleanupPID()
}

func (f *DefaultFileOps) CleanupPID() error {
	err := os.Remove(f.pidPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}
