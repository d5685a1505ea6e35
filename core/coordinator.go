package coordination

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lenavoss/converse-core/core/events"
)

// Coordinator arbitrates a single user's alternation between typing,
// speaking, waiting for a response, and having responses read aloud. It owns
// the draft buffer and the speech-selection slot; the three interaction
// signals are owned by external engines and only mirrored here, and the
// message log is owned by the host application.
//
// All signal updates and user actions are processed as discrete,
// non-overlapping steps serialized by a single mutex. The coordinator never
// blocks on an engine: it issues a request and returns, observing the effect
// through later events.
type Coordinator struct {
	IsListening  bool
	IsProcessing bool
	IsSpeaking   bool

	// mu serializes reduction steps so no two reconciliations interleave.
	mu sync.Mutex

	draft         draftBuffer
	target        speechTarget
	log           *MessageLog
	speechEnabled bool

	// speechToText is the STT facade used to handle optional client wiring.
	speechToText speechToText
	// speechSynthesis is the TTS facade used to handle optional client wiring.
	speechSynthesis speechSynthesis
	// audioInput is the input facade used to normalize capture behavior.
	audioInput audioInput
	// audioOutput is the playback facade synthesized speech is routed to.
	audioOutput audioOutput

	coordinateOptions CoordinateOptions
	notify            eventEmitter

	closeOnce   sync.Once
	baseContext context.Context
}

func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		log:           &MessageLog{},
		speechEnabled: true,
		notify:        noopEventEmitter,
		baseContext:   context.Background(),
	}

	c.speechSynthesis.output = &c.audioOutput
	c.audioInput = *newAudioInput(nil, func(audio []byte) {
		if c.coordinateOptions.onInputAudio != nil {
			c.coordinateOptions.onInputAudio(audio)
		}

		c.speechToText.SendAudio(audio)
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Coordinate wires the host callbacks and starts the configured engines.
//
// ctx is the base context for engine requests, allowing for cancellation.
//
// Contract: call Coordinate at most once per coordinator instance. Repeated
// or concurrent calls are unsupported and may race while callbacks are being
// reconfigured.
func (c *Coordinator) Coordinate(ctx context.Context, opts ...CoordinateOption) {
	c.coordinateOptions = CoordinateOptions{}
	for _, opt := range opts {
		opt(&c.coordinateOptions)
	}

	c.baseContext = ctx
	c.notify = newCallbackEventEmitter(c.coordinateOptions)

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	if err := c.speechToText.start(ctx, c.Handle, c.audioInput.EncodingInfo()); err != nil {
		recordedErr := fmt.Errorf("failed to initialize speech-to-text: %w", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
	}
	c.speechSynthesis.setEventEmitter(c.Handle)
	c.audioInput.SetEventEmitter(c.Handle)
}

func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		if err := c.audioInput.Close(); err != nil {
			recordedErr := fmt.Errorf("failed to close audio input: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.speechToText.Close(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close speech-to-text client: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		if err := c.speechSynthesis.Stop(c.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to stop speech synthesis: %w", err)
			span := trace.SpanFromContext(c.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}
	})
}

// Signals returns the current snapshot of the mirrored interaction signals.
func (c *Coordinator) Signals() Signals {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.signalsLocked()
}

// Permissions returns the allowed-action set for the current signals and
// draft.
func (c *Coordinator) Permissions() Permissions {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Arbitrate(c.signalsLocked(), c.draft.String())
}

// Draft returns the in-progress text the user is composing.
func (c *Coordinator) Draft() string {
	return c.draft.String()
}

// SetDraft replaces the draft. The edit is withheld while listening or
// processing, when the buffer's meaning is ambiguous.
func (c *Coordinator) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if Arbitrate(c.signalsLocked(), text).InputDisabled {
		return
	}
	c.draft.Set(text)
}

// SpeechTarget returns the message id currently selected for playback, or
// false when nothing is selected.
func (c *Coordinator) SpeechTarget() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target.ID()
}

// SpeechEnabled reports the read-aloud preference.
func (c *Coordinator) SpeechEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speechEnabled
}

// Log returns the host-owned message log the coordinator reads.
func (c *Coordinator) Log() *MessageLog {
	return c.log
}

// AppendMessage appends a turn to the log and processes the append as a
// coordination step, so hosts observing the event stream see it alongside
// signal updates. Appending directly through Log is equally valid.
func (c *Coordinator) AppendMessage(message Message) Message {
	stored := c.log.Append(message)
	c.Handle(events.NewMessageAppended(stored.ID))
	return stored
}

func (c *Coordinator) signalsLocked() Signals {
	return Signals{
		Listening:  c.IsListening,
		Processing: c.IsProcessing,
		Speaking:   c.IsSpeaking,
	}
}
