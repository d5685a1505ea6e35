package coordination

import (
	"context"

	"github.com/lenavoss/converse-core/core/events"
	"github.com/lenavoss/converse-core/core/texttospeech"
)

type speechSynthesis struct {
	// client stores the configured speech-synthesis implementation.
	client SpeechSynthesis

	// output, when configured, receives the synthesized audio stream.
	output *audioOutput

	emitEvent eventEmitter
}

func (s *speechSynthesis) set(client SpeechSynthesis) {
	if s != nil {
		s.client = client
	}
}

func (s *speechSynthesis) setEventEmitter(emitEvent eventEmitter) {
	if s != nil && emitEvent != nil {
		s.emitEvent = emitEvent
	}
}

// RequestSpeak forwards a speak request to the engine without blocking the
// caller. The engine reports the resulting playback through the speaking
// signal; a request issued while another utterance plays supersedes it.
func (s *speechSynthesis) RequestSpeak(ctx context.Context, text string) {
	if !s.isConfigured() || text == "" {
		return
	}

	go func() {
		speakOptions := []texttospeech.SpeechOption{
			texttospeech.WithSpeechStartedCallback(func() { s.emit(events.NewPlaybackStarted()) }),
			texttospeech.WithSpeechEndedCallback(func() { s.emit(events.NewPlaybackEnded()) }),
		}
		if s.output.isConfigured() {
			speakOptions = append(speakOptions,
				texttospeech.WithEncodingInfo(s.output.EncodingInfo()),
				texttospeech.WithSpeechAudioCallback(s.output.SendAudio),
			)
		}

		if err := s.client.Speak(ctx, text, speakOptions...); err != nil {
			logger.Warn("failed to request speech synthesis", "error", err)
		}
	}()
}

// RequestStop forwards a stop request without blocking the caller. Stopping
// an engine that is not speaking is a safe no-op.
func (s *speechSynthesis) RequestStop(ctx context.Context) {
	if !s.isConfigured() {
		return
	}

	go func() {
		if err := s.client.Stop(ctx); err != nil {
			logger.Warn("failed to request speech stop", "error", err)
		}
		s.output.Clear()
	}()
}

// Stop halts the engine synchronously, used on shutdown.
func (s *speechSynthesis) Stop(ctx context.Context) error {
	if !s.isConfigured() {
		return nil
	}

	s.output.Clear()
	return s.client.Stop(ctx)
}

func (s *speechSynthesis) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechSynthesis) emit(event events.Event) {
	if s != nil && s.emitEvent != nil {
		s.emitEvent(event)
	}
}
