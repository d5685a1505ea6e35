package coordination

import (
	"reflect"

	"github.com/lenavoss/converse-core/core/audio"
)

// audioOutput normalizes the configured playback client behind one facade so
// speech-synthesis audio can be routed without type assertions on the hot
// path. Forwarding is best-effort: playback is a side effect, never fatal.
type audioOutput struct {
	// client stores the configured playback client.
	client AudioOutput
}

func newAudioOutput(client AudioOutput) *audioOutput {
	audioOutput := audioOutput{}
	audioOutput.Set(client)
	return &audioOutput
}

// Set replaces the configured playback client. Nil and typed-nil clients are
// treated as unconfigured.
func (a *audioOutput) Set(client AudioOutput) {
	if a == nil {
		return
	}

	if isNilAudioOutput(client) {
		a.client = nil
		return
	}
	a.client = client
}

func (a *audioOutput) isConfigured() bool {
	return a != nil && a.client != nil
}

// SendAudio forwards a synthesized chunk to the playback client. Chunks are
// dropped when no client is configured.
func (a *audioOutput) SendAudio(audio []byte) {
	if !a.isConfigured() {
		return
	}

	if err := a.client.SendAudio(audio); err != nil {
		logger.Warn("failed to forward audio to playback client", "error", err)
	}
}

// Clear flushes audio that was queued but not yet played, so a stop request
// silences the device instead of letting the queue drain.
func (a *audioOutput) Clear() {
	if !a.isConfigured() {
		return
	}

	a.client.ClearBuffer()
}

// EncodingInfo returns the playback encoding metadata, falling back to the
// project default when no client is configured.
func (a *audioOutput) EncodingInfo() audio.EncodingInfo {
	if !a.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}

	return a.client.EncodingInfo()
}

// isNilAudioOutput detects nil and typed-nil interface values so Set does not
// store unusable interface wrappers as configured clients.
func isNilAudioOutput(client AudioOutput) bool {
	if client == nil {
		return true
	}

	v := reflect.ValueOf(client)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
