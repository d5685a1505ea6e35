package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/lenavoss/converse-core/core/audio"
)

// captureDevice wraps a malgo capture device. The data callback runs on the
// audio thread, so the sink is swapped under its own lock rather than the
// device lock.
type captureDevice struct {
	mu     sync.Mutex
	device *malgo.Device

	sinkMu sync.Mutex
	sink   func(audio []byte)
}

func (c *captureDevice) init(audioContext *malgo.AllocatedContext, encodingInfo audio.EncodingInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	format := malgo.FormatS16
	if encodingInfo.Format.ByteSize() == 1 {
		format = malgo.FormatU8
	}
	channels := uint32(1)
	bytesPerFrame := malgo.SampleSizeInBytes(format) * int(channels)

	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.SampleRate = uint32(encodingInfo.SampleRate)
	config.Capture.Format = format
	config.Capture.Channels = channels
	config.Alsa.NoMMap = 1
	config.PerformanceProfile = malgo.LowLatency
	config.PeriodSizeInFrames = 480
	config.Periods = 3

	device, err := malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame
			if n == 0 || len(input) < n {
				return
			}

			c.sinkMu.Lock()
			sink := c.sink
			c.sinkMu.Unlock()
			if sink != nil {
				sink(input[:n])
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	c.device = device
	return nil
}

func (c *captureDevice) start(onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("capture device not initialized")
	}

	c.setSink(onAudio)
	if c.device.IsStarted() {
		return nil
	}

	if err := c.device.Start(); err != nil {
		c.setSink(nil)
		return fmt.Errorf("failed to start capture device: %w", err)
	}

	return nil
}

func (c *captureDevice) stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("capture device not initialized")
	}

	c.setSink(nil)
	if !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}

	return nil
}

func (c *captureDevice) uninit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	c.setSink(nil)
}

func (c *captureDevice) setSink(sink func(audio []byte)) {
	c.sinkMu.Lock()
	c.sink = sink
	c.sinkMu.Unlock()
}
