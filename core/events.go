package coordination

import (
	"github.com/lenavoss/converse-core/core/events"
)

// Handle processes a single coordination event as one discrete step: the
// signal mirror is updated, the speech target is reconciled, and the derived
// permission set is recomputed before the step returns. Events arriving
// concurrently are serialized, never interleaved.
func (c *Coordinator) Handle(event events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch t := event.(type) {
	case events.RecognitionStarted:
		c.setListeningLocked(true)
	case events.RecognitionStopped:
		c.setListeningLocked(false)
	case events.ResponseStarted:
		c.setProcessingLocked(true)
	case events.ResponseCompleted:
		c.setProcessingLocked(false)
	case events.PlaybackStarted:
		c.setSpeakingLocked(true)
	case events.PlaybackEnded:
		c.setSpeakingLocked(false)
	case events.UserAudioFrame:
		// Hosts may push audio straight through the event contract instead
		// of configuring an input client.
		c.speechToText.SendAudio(t.Audio)
	}

	c.notify(event)
	c.notifyPermissionsLocked()
}

// SetListening mirrors a listening update reported by the recognition
// engine.
func (c *Coordinator) SetListening(isListening bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setListeningLocked(isListening)
	c.notifyPermissionsLocked()
}

// SetProcessing mirrors a processing update reported by the response
// pipeline.
func (c *Coordinator) SetProcessing(isProcessing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setProcessingLocked(isProcessing)
	c.notifyPermissionsLocked()
}

// SetSpeaking mirrors a speaking update reported by the synthesis engine.
// Every update runs the speech-target reconciliation, so an externally
// triggered stop can never leave a stale selection behind.
func (c *Coordinator) SetSpeaking(isSpeaking bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSpeakingLocked(isSpeaking)
	c.notifyPermissionsLocked()
}

func (c *Coordinator) setListeningLocked(isListening bool) {
	changed := c.IsListening != isListening
	c.IsListening = isListening
	if changed && c.coordinateOptions.onListeningStateChanged != nil {
		c.coordinateOptions.onListeningStateChanged(isListening)
	}
}

func (c *Coordinator) setProcessingLocked(isProcessing bool) {
	changed := c.IsProcessing != isProcessing
	c.IsProcessing = isProcessing
	if changed && c.coordinateOptions.onProcessingStateChanged != nil {
		c.coordinateOptions.onProcessingStateChanged(isProcessing)
	}
}

func (c *Coordinator) setSpeakingLocked(isSpeaking bool) {
	changed := c.IsSpeaking != isSpeaking
	c.IsSpeaking = isSpeaking

	if !isSpeaking {
		// Reconcile within the same step regardless of what caused the
		// stop, so no following action observes a stale target.
		c.target.Clear()
	}

	if changed && c.coordinateOptions.onSpeakingStateChanged != nil {
		c.coordinateOptions.onSpeakingStateChanged(isSpeaking)
	}
}

func (c *Coordinator) notifyPermissionsLocked() {
	if c.coordinateOptions.onPermissionsChanged != nil {
		c.coordinateOptions.onPermissionsChanged(Arbitrate(c.signalsLocked(), c.draft.String()))
	}
}
