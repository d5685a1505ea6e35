package coordination

import (
	"context"

	"github.com/lenavoss/converse-core/core/audio"
	"github.com/lenavoss/converse-core/core/speechtotext"
	"github.com/lenavoss/converse-core/core/texttospeech"
)

type CoordinatorOption func(*Coordinator)

// SpeechToText is the contract of the voice-recognition engine collaborator.
// It owns the listening signal; the coordinator only requests transitions
// and observes the effect through the events the engine delivers.
type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

func WithSpeechToTextClient(client SpeechToText) CoordinatorOption {
	return func(c *Coordinator) {
		c.speechToText.set(client)
	}
}

// SpeechSynthesis is the contract of the speech-synthesis engine
// collaborator. It owns the speaking signal. Stop is non-blocking and
// idempotent; stopping an already-stopped engine is a safe no-op.
type SpeechSynthesis interface {
	Speak(ctx context.Context, text string, opts ...texttospeech.SpeechOption) error
	Stop(ctx context.Context) error
}

func WithSpeechSynthesisClient(client SpeechSynthesis) CoordinatorOption {
	return func(c *Coordinator) {
		c.speechSynthesis.set(client)
	}
}

// AudioInput is the contract of the microphone capture client feeding the
// recognition engine.
type AudioInput interface {
	audioInputBase
}

// AudioInputFine is implemented by capture clients that support explicit
// start/stop controls in addition to continuous streaming.
type AudioInputFine interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

func WithAudioInput(client AudioInput) CoordinatorOption {
	return func(c *Coordinator) { c.audioInput.Set(client) }
}

// AudioOutput is the contract of the playback client synthesized speech is
// routed to.
type AudioOutput interface {
	SendAudio(audio []byte) error
	ClearBuffer()
	EncodingInfo() audio.EncodingInfo
}

func WithAudioOutput(client AudioOutput) CoordinatorOption {
	return func(c *Coordinator) { c.audioOutput.Set(client) }
}

// WithMessageLog attaches the host-owned message log the coordinator reads.
// The coordinator never appends to it.
func WithMessageLog(log *MessageLog) CoordinatorOption {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSpeechEnabled sets the initial read-aloud preference. The preference
// is distinct from the moment-to-moment speaking signal.
func WithSpeechEnabled(enabled bool) CoordinatorOption {
	return func(c *Coordinator) { c.speechEnabled = enabled }
}

type audioInputBase interface {
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	EncodingInfo() audio.EncodingInfo
	Close()
}

type CoordinateOptions struct {
	onSendMessage            func(text string)
	onStartListening         func()
	onStopListening          func()
	onSpeakMessage           func(text string)
	onToggleSpeech           func(enabled bool)
	onTranscription          func(transcript string)
	onInterimTranscription   func(transcript string)
	onListeningStateChanged  func(isListening bool)
	onProcessingStateChanged func(isProcessing bool)
	onSpeakingStateChanged   func(isSpeaking bool)
	onPermissionsChanged     func(permissions Permissions)
	onInputAudio             func(audio []byte)
}

type CoordinateOption func(*CoordinateOptions)

// WithSendMessageCallback registers the new-user-turn notification. It is
// invoked exactly once per accepted submission, always with non-empty
// trimmed text.
func WithSendMessageCallback(callback func(text string)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onSendMessage = callback
	}
}

// WithListeningControlCallbacks registers the start/stop listening requests
// forwarded to the recognition engine. The engine may accept or ignore them;
// the listening signal reports what it actually did.
func WithListeningControlCallbacks(onStart func(), onStop func()) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onStartListening = onStart
		o.onStopListening = onStop
	}
}

// WithSpeakMessageCallback registers the speak request. An empty-string
// payload is the reserved stop signal, not a request to speak empty text.
func WithSpeakMessageCallback(callback func(text string)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onSpeakMessage = callback
	}
}

// WithToggleSpeechCallback registers the read-aloud preference change
// notification.
func WithToggleSpeechCallback(callback func(enabled bool)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onToggleSpeech = callback
	}
}

// WithTranscriptionCallback registers a callback for final transcriptions
// produced by the configured speech-to-text client.
func WithTranscriptionCallback(callback func(transcript string)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onTranscription = callback
	}
}

// WithInterimTranscriptionCallback registers a callback for interim
// transcriptions produced by the configured speech-to-text client. The
// transcript is display-only; no coordinator state derives from it.
func WithInterimTranscriptionCallback(callback func(transcript string)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onInterimTranscription = callback
	}
}

func WithListeningStateChangedCallback(callback func(isListening bool)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onListeningStateChanged = callback
	}
}

func WithProcessingStateChangedCallback(callback func(isProcessing bool)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onProcessingStateChanged = callback
	}
}

func WithSpeakingStateChangedCallback(callback func(isSpeaking bool)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onSpeakingStateChanged = callback
	}
}

// WithPermissionsChangedCallback registers a callback for the recomputed
// allowed-action set after every processed step.
func WithPermissionsChangedCallback(callback func(permissions Permissions)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onPermissionsChanged = callback
	}
}

// WithInputAudioCallback registers a callback for raw input audio chunks.
//
// The provided slice is passed through as-is (no defensive copy). The
// callback runs inline on the input-audio path and should not block.
func WithInputAudioCallback(callback func(audio []byte)) CoordinateOption {
	return func(o *CoordinateOptions) {
		o.onInputAudio = callback
	}
}
