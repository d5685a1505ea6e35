package coordination

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"github.com/lenavoss/converse-core/core/audio"
	"github.com/lenavoss/converse-core/core/events"
)

type audioInput struct {
	// base stores the configured input client used for streaming audio.
	base audioInputBase
	// fineCaptureControl is set when the input client supports explicit capture controls.
	fineCaptureControl AudioInputFine

	// connected reports whether a concrete input client is currently configured.
	connected atomic.Bool
	// isCapturing reports whether the input client is currently capturing audio.
	isCapturing atomic.Bool
	// shouldCapture reports whether the user has requested capture.
	shouldCapture atomic.Bool

	// onInputAudio is called when input audio is received
	onInputAudio func(audio []byte)

	emitEvent eventEmitter
}

func newAudioInput(client audioInputBase, onInputAudio func(audio []byte)) *audioInput {
	if onInputAudio == nil {
		onInputAudio = func(audio []byte) {}
	}

	audioInput := audioInput{onInputAudio: onInputAudio, emitEvent: noopEventEmitter}
	audioInput.Set(client)
	return &audioInput
}

func (a *audioInput) Set(client audioInputBase) {
	if a == nil {
		return
	}

	a.base = client
	a.fineCaptureControl = nil
	a.connected.Store(false)
	a.isCapturing.Store(false)

	if client == nil {
		return
	}

	a.connected.Store(true)
	if fine, ok := client.(AudioInputFine); ok {
		a.fineCaptureControl = fine
	}
}

func (a *audioInput) SetEventEmitter(emitEvent eventEmitter) {
	if a != nil && emitEvent != nil {
		a.emitEvent = emitEvent
	}
}

func (a *audioInput) IsConfigured() bool            { return a != nil && a.connected.Load() }
func (a *audioInput) SupportsCaptureControls() bool { return a != nil && a.fineCaptureControl != nil }
func (a *audioInput) IsCapturing() bool             { return a != nil && a.isCapturing.Load() }

// RequestCapture starts microphone capture without blocking the caller. The
// listening signal is reported once capture is actually running; a request
// while capture is already running is a no-op.
func (a *audioInput) RequestCapture(ctx context.Context) {
	if !a.IsConfigured() {
		return
	}

	a.shouldCapture.Store(true)
	if !a.isCapturing.CompareAndSwap(false, true) {
		return
	}

	if a.SupportsCaptureControls() {
		go func() {
			if err := a.fineCaptureControl.StartCapture(ctx, a.onAudio); err != nil {
				a.isCapturing.Store(false)
				log.Printf("Failed to start audio input: %v", err)
				return
			}
			a.emitEvent(events.NewRecognitionStarted())
		}()
		return
	}

	go func() {
		a.emitEvent(events.NewRecognitionStarted())
		if err := a.base.Stream(ctx, a.onAudio); err != nil {
			log.Printf("Failed to start audio input: %v", err)
		}
		a.isCapturing.Store(false)
		a.emitEvent(events.NewRecognitionStopped())
	}()
}

// ReleaseCapture stops microphone capture. Releasing when capture is already
// stopped is a safe no-op.
func (a *audioInput) ReleaseCapture(context.Context) {
	if a == nil {
		return
	}

	a.shouldCapture.Store(false)
	if !a.SupportsCaptureControls() {
		return
	}
	if !a.isCapturing.CompareAndSwap(true, false) {
		return
	}

	go func() {
		if err := a.fineCaptureControl.StopCapture(); err != nil {
			log.Printf("Failed to stop audio input: %v", err)
		}
		a.emitEvent(events.NewRecognitionStopped())
	}()
}

func (a *audioInput) Close() error {
	var errs error
	if a.base != nil && a.IsConfigured() {
		if a.fineCaptureControl != nil && a.IsCapturing() {
			if err := a.fineCaptureControl.StopCapture(); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		a.base.Close()
	}
	a.isCapturing.Store(false)

	return errs
}

func (a *audioInput) EncodingInfo() audio.EncodingInfo {
	if a == nil || a.base == nil {
		return audio.GetDefaultEncodingInfo()
	}

	return a.base.EncodingInfo()
}

func (a *audioInput) onAudio(audio []byte) {
	if !a.shouldCapture.Load() {
		return
	}

	a.onInputAudio(audio)
}
