package state

import (
	"sync"

	"github.com/dooshek/vibelight/internal/types"
)

var (
	once     sync.Once
	instance *AppState
)

type AppState struct {
	Config *types.Config
}

func Init(cfg *types.Config) {
	once.Do(func() {
		instance = &AppState{
			Config: cfg,
		}
	})
}

func Get() *AppState {
	if instance == nil {
		panic("AppState not initialized")
	}
	return instance
}

func (s *AppState) ChannelCount() int {
	return len(s.Config.Device.ChannelPins)
}

func (s *AppState) DeviceName() string {
	if s.Config.Transport.DeviceName == "" {
		return "vibelight"
	}
	return s.Config.Transport.DeviceName
}
