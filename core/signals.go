package coordination

import "strings"

// Signals is an immutable snapshot of the three externally-owned interaction
// booleans. Each is mutated only by the engine that owns it: listening by the
// voice-recognition engine, processing by the response pipeline, speaking by
// the speech-synthesis engine.
type Signals struct {
	Listening  bool
	Processing bool
	Speaking   bool
}

// Permissions is the allowed-action set derived from a Signals snapshot and
// the current draft. It carries no state of its own and is recomputed on
// every signal change.
type Permissions struct {
	// CanSubmitText allows typed submission. Speaking does not block it.
	CanSubmitText bool
	// CanStartListening allows a start-listening request. Starting while
	// speaking is allowed; ducking playback is the synthesis engine's call.
	CanStartListening bool
	// CanToggleListening allows the listening toggle: stop is always
	// allowed while listening, start only when CanStartListening.
	CanToggleListening bool
	// InputDisabled blocks draft edits while the buffer's meaning is
	// ambiguous. During live dictation the interim transcript is surfaced
	// as placeholder text instead of editable content.
	InputDisabled bool
	// SendDisabled blocks the send action for an empty trimmed draft or
	// while listening or processing.
	SendDisabled bool
}

// Arbitrate reduces a signal snapshot and the current draft into the
// permission set. Pure, no side effects.
func Arbitrate(signals Signals, draft string) Permissions {
	canStartListening := !signals.Processing

	canToggleListening := canStartListening
	if signals.Listening {
		canToggleListening = true
	}

	return Permissions{
		CanSubmitText:      !signals.Listening && !signals.Processing,
		CanStartListening:  canStartListening,
		CanToggleListening: canToggleListening,
		InputDisabled:      signals.Listening || signals.Processing,
		SendDisabled:       strings.TrimSpace(draft) == "" || signals.Listening || signals.Processing,
	}
}
