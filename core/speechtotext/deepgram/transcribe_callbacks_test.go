package deepgram

import (
	"sync/atomic"
	"testing"

	"github.com/lenavoss/converse-core/core/speechtotext"
)

func TestNewCallbackConfigDefaultsToNoopCallbacks(t *testing.T) {
	callbacks, wsConfig := newCallbackConfig(speechtotext.TranscriptionOptions{})

	callbacks.interimTranscriptionCallback("interim")
	callbacks.transcriptionCallback("full")
	callbacks.startSpeechCallback()
	callbacks.endSpeechCallback()

	if wsConfig.shouldDetectSpeechStart {
		t.Fatalf("expected speech-start detection disabled when callback is unset")
	}
	if wsConfig.shouldEnhanceSpeechEndingDetection {
		t.Fatalf("expected speech-end enhancement disabled when callbacks are unset")
	}
	if wsConfig.shouldRequestInterimResults {
		t.Fatalf("expected interim-results disabled when callbacks are unset")
	}
}

func TestNewCallbackConfigKeepsConfiguredCallbacksAndFlags(t *testing.T) {
	interimCalls := atomic.Int32{}
	transcriptionCalls := atomic.Int32{}
	startCalls := atomic.Int32{}
	endCalls := atomic.Int32{}

	callbacks, wsConfig := newCallbackConfig(speechtotext.TranscriptionOptions{
		InterimTranscriptionCallback: func(string) { interimCalls.Add(1) },
		TranscriptionCallback:        func(string) { transcriptionCalls.Add(1) },
		SpeechStartedCallback:        func() { startCalls.Add(1) },
		SpeechEndedCallback:          func() { endCalls.Add(1) },
	})

	callbacks.interimTranscriptionCallback("hello")
	callbacks.transcriptionCallback("hello world")
	callbacks.startSpeechCallback()
	callbacks.endSpeechCallback()

	if !wsConfig.shouldDetectSpeechStart {
		t.Fatalf("expected speech-start detection enabled")
	}
	if !wsConfig.shouldEnhanceSpeechEndingDetection {
		t.Fatalf("expected speech-end enhancement enabled")
	}
	if !wsConfig.shouldRequestInterimResults {
		t.Fatalf("expected interim-results enabled")
	}

	if got := interimCalls.Load(); got != 1 {
		t.Fatalf("expected interim callback once, got %d", got)
	}
	if got := transcriptionCalls.Load(); got != 1 {
		t.Fatalf("expected transcription callback once, got %d", got)
	}
	if got := startCalls.Load(); got != 1 {
		t.Fatalf("expected speech-start callback once, got %d", got)
	}
	if got := endCalls.Load(); got != 1 {
		t.Fatalf("expected speech-end callback once, got %d", got)
	}
}

func TestOnSpeechEndedFlushesAccumulatedTranscript(t *testing.T) {
	client := NewTranscriptionClient()
	client.accumulatedTranscript = " hello world"
	client.unendedSegment = true

	var finalTranscript string
	endCalls := atomic.Int32{}
	callbacks, _ := newCallbackConfig(speechtotext.TranscriptionOptions{
		TranscriptionCallback: func(transcript string) { finalTranscript = transcript },
		SpeechEndedCallback:   func() { endCalls.Add(1) },
	})

	client.onSpeechEnded(callbacks)

	if finalTranscript != "hello world" {
		t.Fatalf("expected trimmed transcript %q, got %q", "hello world", finalTranscript)
	}
	if client.accumulatedTranscript != "" {
		t.Fatalf("expected accumulated transcript cleared, got %q", client.accumulatedTranscript)
	}
	if client.unendedSegment {
		t.Fatalf("expected unended segment flag cleared")
	}
	if got := endCalls.Load(); got != 1 {
		t.Fatalf("expected speech-end callback once, got %d", got)
	}
}
