package events

const (
	// KindRecognitionStarted identifies the recognition engine entering listening.
	KindRecognitionStarted Kind = "recognition.started"
	// KindRecognitionStopped identifies the recognition engine leaving listening.
	KindRecognitionStopped Kind = "recognition.stopped"
	// KindResponseStarted identifies the response pipeline entering processing.
	KindResponseStarted Kind = "response.started"
	// KindResponseCompleted identifies the response pipeline leaving processing.
	KindResponseCompleted Kind = "response.completed"
	// KindPlaybackStarted identifies the synthesis engine starting playback.
	KindPlaybackStarted Kind = "playback.started"
	// KindPlaybackEnded identifies the synthesis engine ending playback, for
	// any reason: natural completion, external stop, or engine error.
	KindPlaybackEnded Kind = "playback.ended"
)

// RecognitionStarted marks the listening signal turning true.
type RecognitionStarted struct{ Base }

// NewRecognitionStarted creates a recognition started event.
func NewRecognitionStarted() RecognitionStarted {
	return RecognitionStarted{Base: NewBase(KindRecognitionStarted)}
}

// RecognitionStopped marks the listening signal turning false.
type RecognitionStopped struct{ Base }

// NewRecognitionStopped creates a recognition stopped event.
func NewRecognitionStopped() RecognitionStopped {
	return RecognitionStopped{Base: NewBase(KindRecognitionStopped)}
}

// ResponseStarted marks the processing signal turning true.
type ResponseStarted struct{ Base }

// NewResponseStarted creates a response started event.
func NewResponseStarted() ResponseStarted {
	return ResponseStarted{Base: NewBase(KindResponseStarted)}
}

// ResponseCompleted marks the processing signal turning false.
type ResponseCompleted struct{ Base }

// NewResponseCompleted creates a response completed event.
func NewResponseCompleted() ResponseCompleted {
	return ResponseCompleted{Base: NewBase(KindResponseCompleted)}
}

// PlaybackStarted marks the speaking signal turning true.
type PlaybackStarted struct{ Base }

// NewPlaybackStarted creates a playback started event.
func NewPlaybackStarted() PlaybackStarted {
	return PlaybackStarted{Base: NewBase(KindPlaybackStarted)}
}

// PlaybackEnded marks the speaking signal turning false.
type PlaybackEnded struct{ Base }

// NewPlaybackEnded creates a playback ended event.
func NewPlaybackEnded() PlaybackEnded {
	return PlaybackEnded{Base: NewBase(KindPlaybackEnded)}
}
