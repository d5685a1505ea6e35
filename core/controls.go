package coordination

// Submit validates and forwards the composed draft as a new user turn.
//
// The trimmed draft is refused silently when it is empty or when the current
// permission set disallows typed submission; the UI should already have
// disabled the action, but this check is the last line of defense against a
// stale permission snapshot. On acceptance exactly one send-message
// notification carrying the trimmed text is emitted and the draft is cleared
// unconditionally afterward. The pipeline never waits on the host's
// downstream handling.
func (c *Coordinator) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !Arbitrate(c.signalsLocked(), c.draft.String()).CanSubmitText {
		return
	}

	text := c.draft.Trimmed()
	if text == "" {
		return
	}

	if c.coordinateOptions.onSendMessage != nil {
		c.coordinateOptions.onSendMessage(text)
	}
	c.draft.Clear()
	c.notifyPermissionsLocked()
}

// ToggleListening requests the recognition engine to flip the listening
// state. Stop is always allowed while listening; start is withheld while
// processing. Either request is non-blocking and idempotent: the engine
// reports what it actually did through the listening signal.
//
// Transcript text produced while listening is display-only; committing
// dictated text to the draft is a host decision.
func (c *Coordinator) ToggleListening() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.IsListening {
		if c.coordinateOptions.onStopListening != nil {
			c.coordinateOptions.onStopListening()
		}
		c.audioInput.ReleaseCapture(c.baseContext)
		c.speechToText.StopStream()
		return
	}

	if !Arbitrate(c.signalsLocked(), c.draft.String()).CanStartListening {
		return
	}

	if c.coordinateOptions.onStartListening != nil {
		c.coordinateOptions.onStartListening()
	}
	c.audioInput.RequestCapture(c.baseContext)
}

// ToggleSpeech flips speech playback for the given message.
//
// If the message is the current speech target the selection is cleared and a
// stop request (the reserved empty payload) is emitted. Otherwise the slot
// retargets to the message and a speak request carrying its text is emitted;
// selecting a new message while another is speaking is a switch, not a
// queue, and the synthesis engine stops the previous utterance itself.
// A request referencing a message no longer in the log is withheld.
func (c *Coordinator) ToggleSpeech(messageID string, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target.Is(messageID) {
		c.target.Clear()
		if c.coordinateOptions.onSpeakMessage != nil {
			c.coordinateOptions.onSpeakMessage("")
		}
		c.speechSynthesis.RequestStop(c.baseContext)
		return
	}

	if !c.speechEnabled {
		return
	}
	if c.log != nil && c.log.Len() > 0 && !c.log.Contains(messageID) {
		return
	}

	c.target.Select(messageID)
	if c.coordinateOptions.onSpeakMessage != nil {
		c.coordinateOptions.onSpeakMessage(text)
	}
	c.speechSynthesis.RequestSpeak(c.baseContext, text)
}

// ToggleSpeechEnabled flips the read-aloud preference and notifies the host.
// Disabling it while a message is selected also stops the active playback.
func (c *Coordinator) ToggleSpeechEnabled() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.speechEnabled = !c.speechEnabled
	if c.coordinateOptions.onToggleSpeech != nil {
		c.coordinateOptions.onToggleSpeech(c.speechEnabled)
	}

	if !c.speechEnabled && c.target.Clear() {
		if c.coordinateOptions.onSpeakMessage != nil {
			c.coordinateOptions.onSpeakMessage("")
		}
		c.speechSynthesis.RequestStop(c.baseContext)
	}
}
