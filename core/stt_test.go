package coordination

import (
	"context"
	"testing"

	"github.com/lenavoss/converse-core/core/audio"
	"github.com/lenavoss/converse-core/core/events"
	"github.com/lenavoss/converse-core/core/speechtotext"
)

func TestSpeechToTextStartEmitsEvents(t *testing.T) {
	sttClient := &speechToTextClientStub{
		transcribe: func(opts speechtotext.TranscriptionOptions) {
			if opts.SpeechStartedCallback == nil {
				t.Fatalf("expected speech-start callback to be configured")
			}
			if opts.SpeechEndedCallback == nil {
				t.Fatalf("expected speech-end callback to be configured")
			}
			if opts.InterimTranscriptionCallback == nil {
				t.Fatalf("expected interim callback to be configured")
			}
			if opts.TranscriptionCallback == nil {
				t.Fatalf("expected transcription callback to be configured")
			}

			opts.SpeechStartedCallback()
			opts.InterimTranscriptionCallback("hel")
			opts.TranscriptionCallback("hello")
			opts.SpeechEndedCallback()
		},
	}

	facade := speechToText{}
	facade.set(sttClient)

	states := []bool{}
	interim := []string{}
	transcriptions := []string{}

	emit := func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.UserSpeechStarted:
			states = append(states, true)
		case events.UserSpeechEnded:
			states = append(states, false)
		case events.UserTranscriptInterimUpdated:
			interim = append(interim, typedEvent.Transcript)
		case events.UserTranscriptFinal:
			transcriptions = append(transcriptions, typedEvent.Transcript)
		}
	}

	if err := facade.start(context.Background(), emit, audio.GetDefaultEncodingInfo()); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	if len(states) != 2 || !states[0] || states[1] {
		t.Fatalf("expected speaking states [true false], got %v", states)
	}
	if len(interim) != 1 || interim[0] != "hel" {
		t.Fatalf("expected interim callbacks [\"hel\"], got %v", interim)
	}
	if len(transcriptions) != 1 || transcriptions[0] != "hello" {
		t.Fatalf("expected transcription callback [\"hello\"], got %v", transcriptions)
	}
}

func TestSpeechToTextStartWithoutClientIsNoop(t *testing.T) {
	facade := speechToText{}

	if err := facade.start(context.Background(), nil, audio.GetDefaultEncodingInfo()); err != nil {
		t.Fatalf("expected unconfigured start to be a no-op, got %v", err)
	}
	if err := facade.SendAudio([]byte{0x01}); err != nil {
		t.Fatalf("expected unconfigured send to be a no-op, got %v", err)
	}
}

func TestSpeechToTextStopStreamUsesOptionalCapability(t *testing.T) {
	sttClient := &speechToTextClientStub{}
	facade := speechToText{}
	facade.set(sttClient)

	// The base contract has no StopStream; the facade probes for it.
	facade.StopStream()
	if sttClient.stopStreamCalls != 0 {
		t.Fatalf("expected no stop-stream calls on base client, got %d", sttClient.stopStreamCalls)
	}

	stoppable := &stoppableSpeechToTextStub{}
	facade.set(stoppable)
	facade.StopStream()
	if stoppable.stopStreamCalls != 1 {
		t.Fatalf("expected one stop-stream call, got %d", stoppable.stopStreamCalls)
	}
}

type speechToTextClientStub struct {
	transcribe      func(opts speechtotext.TranscriptionOptions)
	stopStreamCalls int
}

func (stub *speechToTextClientStub) Transcribe(_ context.Context, opts ...speechtotext.TranscriptionOption) error {
	transcriptionOptions := speechtotext.TranscriptionOptions{}
	for _, opt := range opts {
		opt(&transcriptionOptions)
	}

	if stub.transcribe != nil {
		stub.transcribe(transcriptionOptions)
	}

	return nil
}

func (stub *speechToTextClientStub) SendAudio([]byte) error {
	return nil
}

type stoppableSpeechToTextStub struct {
	speechToTextClientStub
	stopStreamCalls int
}

func (stub *stoppableSpeechToTextStub) StopStream() error {
	stub.stopStreamCalls++
	return nil
}
