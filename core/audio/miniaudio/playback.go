package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/lenavoss/converse-core/core/audio"
)

// playbackDevice wraps a malgo playback device fed from a pending-audio
// queue. The data callback drains the queue on the audio thread; writers
// append to it from the synthesis stream.
type playbackDevice struct {
	mu     sync.Mutex
	device *malgo.Device

	queueMu sync.Mutex
	queue   []byte
}

func (p *playbackDevice) init(audioContext *malgo.AllocatedContext, encodingInfo audio.EncodingInfo) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	format := malgo.FormatS16
	if encodingInfo.Format.ByteSize() == 1 {
		format = malgo.FormatU8
	}
	channels := uint32(1)
	sampleRate := uint32(encodingInfo.SampleRate)
	bytesPerFrame := malgo.SampleSizeInBytes(format) * int(channels)

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.SampleRate = sampleRate
	config.Playback.Format = format
	config.Playback.Channels = channels
	config.Alsa.NoMMap = 1
	config.PeriodSizeInFrames = sampleRate / 10
	config.Periods = 4

	device, err := malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(output, _ []byte, frameCount uint32) {
			p.fill(output, int(frameCount)*bytesPerFrame)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	p.device = device
	return nil
}

func (p *playbackDevice) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return fmt.Errorf("playback device not initialized")
	}
	if p.device.IsStarted() {
		return nil
	}

	if err := p.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (p *playbackDevice) stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return fmt.Errorf("playback device not initialized")
	}

	if err := p.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	p.clear()
	return nil
}

func (p *playbackDevice) uninit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device != nil {
		p.device.Uninit()
		p.device = nil
	}
	p.clear()
}

func (p *playbackDevice) enqueue(audio []byte) error {
	p.mu.Lock()
	started := p.device != nil && p.device.IsStarted()
	p.mu.Unlock()
	if !started {
		return fmt.Errorf("playback device not started")
	}

	p.queueMu.Lock()
	p.queue = append(p.queue, audio...)
	p.queueMu.Unlock()
	return nil
}

func (p *playbackDevice) clear() {
	p.queueMu.Lock()
	p.queue = nil
	p.queueMu.Unlock()
}

// buffered reports how much audio is still waiting to be played, letting
// callers detect playback draining.
func (p *playbackDevice) buffered() int {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	return len(p.queue)
}

// fill copies up to need bytes of queued audio into the device buffer.
// Underruns leave the remainder of the buffer silent.
func (p *playbackDevice) fill(output []byte, need int) {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()

	if len(p.queue) == 0 {
		return
	}

	n := min(need, len(p.queue))
	copy(output, p.queue[:n])
	p.queue = p.queue[n:]
}
