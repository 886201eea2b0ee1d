// Package audio provides the desktop microphone front-end. It captures
// mono PCM through miniaudio and adapts the stream onto the hardware
// sampling interfaces consumed by the loudness meters.
package audio

import (
	"fmt"

	"github.com/dooshek/vibelight/internal/hw"
	"github.com/dooshek/vibelight/internal/logger"
	"github.com/gen2brain/malgo"
)

const (
	captureChannels = 1
	// captureQueue bounds the sample backlog between the capture
	// callback and the sampler's busy-poll loop.
	captureQueue = 8192
)

// Capture owns the miniaudio context and device and fans captured
// samples into a bounded queue. The capture callback never blocks:
// when the queue is full, samples are dropped.
type Capture struct {
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	samples chan int16
}

func NewCapture(sampleRate int) (*Capture, error) {
	c := &Capture{samples: make(chan int16, captureQueue)}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}
	c.ctx = ctx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = captureChannels
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: c.onData,
	})
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("failed to initialize capture device: %w", err)
	}
	c.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("failed to start capture device: %w", err)
	}

	logger.Debugf("Capture started: %d Hz mono", sampleRate)
	return c, nil
}

func (c *Capture) onData(_, input []byte, _ uint32) {
	for i := 0; i+1 < len(input); i += 2 {
		s := int16(input[i]) | int16(input[i+1])<<8
		select {
		case c.samples <- s:
		default:
			// queue full, drop
		}
	}
}

// Close stops the device and releases the miniaudio context.
func (c *Capture) Close() {
	if c.device != nil {
		c.device.Uninit()
	}
	if c.ctx != nil {
		c.ctx.Uninit()
		c.ctx.Free()
	}
}

// ADC adapts the capture stream to the analog front-end contract:
// one centered 12-bit reading per call.
func (c *Capture) ADC() hw.ADC {
	return micADC{samples: c.samples}
}

// BlockReader adapts the capture stream to the digital front-end
// contract. Samples are widened by shift so the meter's profile shift
// recovers the original 16-bit magnitude.
func (c *Capture) BlockReader(shift uint) hw.BlockReader {
	return micBlock{samples: c.samples, shift: shift}
}

type micADC struct {
	samples <-chan int16
}

func (m micADC) ReadRaw() (uint16, error) {
	select {
	case s := <-m.samples:
		return uint16(int32(s)>>4 + 2048), nil
	default:
		return 0, hw.ErrNoData
	}
}

type micBlock struct {
	samples <-chan int16
	shift   uint
}

func (m micBlock) ReadBlock(dst []int32) (int, error) {
	n := 0
	for n < len(dst) {
		select {
		case s := <-m.samples:
			dst[n] = int32(s) << m.shift
			n++
		default:
			if n == 0 {
				return 0, hw.ErrNoData
			}
			return n, nil
		}
	}
	return n, nil
}
