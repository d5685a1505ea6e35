package coordination

import (
	"context"
	"fmt"

	"github.com/lenavoss/converse-core/core/audio"
	"github.com/lenavoss/converse-core/core/events"
	"github.com/lenavoss/converse-core/core/speechtotext"
)

type speechToText struct {
	// client stores the configured speech-to-text implementation.
	client SpeechToText

	emitEvent eventEmitter
}

func (s *speechToText) set(client SpeechToText) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToText) start(ctx context.Context, emitEvent eventEmitter, encodingInfo audio.EncodingInfo) error {
	if !s.isConfigured() {
		return nil
	}

	if emitEvent != nil {
		s.emitEvent = emitEvent
	}

	sttOptions := []speechtotext.TranscriptionOption{
		speechtotext.WithSpeechStartedCallback(s.invokeSpeechStarted),
		speechtotext.WithSpeechEndedCallback(s.invokeSpeechEnded),
		speechtotext.WithInterimTranscriptionCallback(s.invokeInterimTranscription),
		speechtotext.WithTranscriptionCallback(s.invokeTranscription),
		speechtotext.WithEncodingInfo(encodingInfo),
	}

	if err := s.client.Transcribe(ctx, sttOptions...); err != nil {
		return fmt.Errorf("failed to start transcribing: %w", err)
	}

	return nil
}

func (s *speechToText) SendAudio(audio []byte) error {
	if !s.isConfigured() {
		return nil
	}

	return s.client.SendAudio(audio)
}

// StopStream asks the engine to finish the in-flight utterance. Safe to call
// when nothing is streaming.
func (s *speechToText) StopStream() {
	if !s.isConfigured() {
		return
	}

	if client, ok := s.client.(interface{ StopStream() error }); ok {
		if err := client.StopStream(); err != nil {
			logger.Warn("failed to stop transcription stream", "error", err)
		}
	}
}

func (s *speechToText) Close(ctx context.Context) error {
	if !s.isConfigured() {
		return nil
	}

	switch c := s.client.(type) {
	case interface{ Close(context.Context) error }:
		if err := c.Close(ctx); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close(context.Context) }:
		c.Close(ctx)
	case interface{ Close() error }:
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}

	return nil
}

func (s *speechToText) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechToText) emit(event events.Event) {
	if s != nil && s.emitEvent != nil {
		s.emitEvent(event)
	}
}

func (s *speechToText) invokeSpeechStarted() {
	s.emit(events.NewUserSpeechStarted())
}

func (s *speechToText) invokeSpeechEnded() {
	s.emit(events.NewUserSpeechEnded())
}

func (s *speechToText) invokeInterimTranscription(transcript string) {
	s.emit(events.NewUserTranscriptInterimUpdated(transcript))
}

func (s *speechToText) invokeTranscription(transcript string) {
	s.emit(events.NewUserTranscriptFinal(transcript))
}
