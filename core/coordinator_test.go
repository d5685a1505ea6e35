package coordination

import (
	"context"
	"testing"

	"github.com/lenavoss/converse-core/core/events"
)

func newTestCoordinator(t *testing.T, opts ...CoordinateOption) *Coordinator {
	t.Helper()

	coordinator := NewCoordinator()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	coordinator.Coordinate(ctx, opts...)
	return coordinator
}

func TestSubmitTrimsAndClearsDraft(t *testing.T) {
	sent := []string{}
	coordinator := newTestCoordinator(t,
		WithSendMessageCallback(func(text string) { sent = append(sent, text) }),
	)

	coordinator.SetDraft("  hello  ")
	coordinator.Submit()

	if len(sent) != 1 {
		t.Fatalf("expected exactly one send notification, got %d", len(sent))
	}
	if sent[0] != "hello" {
		t.Fatalf("expected trimmed payload %q, got %q", "hello", sent[0])
	}
	if got := coordinator.Draft(); got != "" {
		t.Fatalf("expected draft cleared after submission, got %q", got)
	}
}

func TestSubmitRefusesBlankDraft(t *testing.T) {
	sent := 0
	coordinator := newTestCoordinator(t,
		WithSendMessageCallback(func(string) { sent++ }),
	)

	coordinator.Submit()
	coordinator.SetDraft("   \n ")
	coordinator.Submit()

	if sent != 0 {
		t.Fatalf("expected no send notification for blank drafts, got %d", sent)
	}
}

func TestSubmitRefusedWhileListening(t *testing.T) {
	sent := 0
	coordinator := newTestCoordinator(t,
		WithSendMessageCallback(func(string) { sent++ }),
	)

	coordinator.SetDraft("draft")
	coordinator.SetListening(true)
	coordinator.Submit()

	if sent != 0 {
		t.Fatalf("expected submission refused while listening, got %d notifications", sent)
	}
	if got := coordinator.Draft(); got != "draft" {
		t.Fatalf("expected draft unchanged after refused submission, got %q", got)
	}
}

func TestSubmitAllowedWhileSpeaking(t *testing.T) {
	sent := 0
	coordinator := newTestCoordinator(t,
		WithSendMessageCallback(func(string) { sent++ }),
	)

	coordinator.SetDraft("hello")
	coordinator.SetSpeaking(true)
	coordinator.Submit()

	if sent != 1 {
		t.Fatalf("expected submission allowed while speaking, got %d notifications", sent)
	}
}

func TestSetDraftWithheldWhileInputDisabled(t *testing.T) {
	coordinator := newTestCoordinator(t)

	coordinator.SetDraft("kept")
	coordinator.SetProcessing(true)
	coordinator.SetDraft("dropped")

	if got := coordinator.Draft(); got != "kept" {
		t.Fatalf("expected draft edit withheld while processing, got %q", got)
	}
}

func TestToggleListeningEmitsStartRequest(t *testing.T) {
	starts, stops := 0, 0
	coordinator := newTestCoordinator(t,
		WithListeningControlCallbacks(func() { starts++ }, func() { stops++ }),
	)

	coordinator.ToggleListening()

	if starts != 1 || stops != 0 {
		t.Fatalf("expected one start request and no stop requests, got %d/%d", starts, stops)
	}
}

func TestToggleListeningStartBlockedWhileProcessing(t *testing.T) {
	starts := 0
	coordinator := newTestCoordinator(t,
		WithListeningControlCallbacks(func() { starts++ }, nil),
	)

	coordinator.SetProcessing(true)
	coordinator.ToggleListening()

	if starts != 0 {
		t.Fatalf("expected no start-listening request while processing, got %d", starts)
	}
}

func TestToggleListeningStopsWhileListening(t *testing.T) {
	stops := 0
	coordinator := newTestCoordinator(t,
		WithListeningControlCallbacks(nil, func() { stops++ }),
	)

	coordinator.SetListening(true)
	coordinator.ToggleListening()

	if stops != 1 {
		t.Fatalf("expected one stop-listening request, got %d", stops)
	}
}

func TestToggleSpeechSelectsAndEmitsSpeakRequest(t *testing.T) {
	spoken := []string{}
	coordinator := newTestCoordinator(t,
		WithSpeakMessageCallback(func(text string) { spoken = append(spoken, text) }),
	)

	coordinator.ToggleSpeech("m1", "Hi")

	if len(spoken) != 1 || spoken[0] != "Hi" {
		t.Fatalf("expected one speak request with %q, got %v", "Hi", spoken)
	}
	if target, ok := coordinator.SpeechTarget(); !ok || target != "m1" {
		t.Fatalf("expected speech target %q, got %q (%t)", "m1", target, ok)
	}
}

func TestToggleSpeechOnCurrentTargetEmitsStop(t *testing.T) {
	spoken := []string{}
	coordinator := newTestCoordinator(t,
		WithSpeakMessageCallback(func(text string) { spoken = append(spoken, text) }),
	)

	coordinator.ToggleSpeech("m1", "Hi")
	coordinator.SetSpeaking(true)
	coordinator.ToggleSpeech("m1", "Hi")

	if len(spoken) != 2 {
		t.Fatalf("expected two speak requests, got %d", len(spoken))
	}
	if spoken[1] != "" {
		t.Fatalf("expected reserved empty stop payload, got %q", spoken[1])
	}
	if _, ok := coordinator.SpeechTarget(); ok {
		t.Fatalf("expected speech target cleared after toggle-off")
	}
}

func TestToggleSpeechSupersedesDifferentTarget(t *testing.T) {
	spoken := []string{}
	coordinator := newTestCoordinator(t,
		WithSpeakMessageCallback(func(text string) { spoken = append(spoken, text) }),
	)

	coordinator.ToggleSpeech("m1", "first")
	coordinator.SetSpeaking(true)
	coordinator.ToggleSpeech("m2", "second")

	if len(spoken) != 2 || spoken[1] != "second" {
		t.Fatalf("expected switch to emit speak request %q, got %v", "second", spoken)
	}
	if target, _ := coordinator.SpeechTarget(); target != "m2" {
		t.Fatalf("expected speech target %q after switch, got %q", "m2", target)
	}
}

func TestSpeakingFalseClearsTargetWithoutToggle(t *testing.T) {
	coordinator := newTestCoordinator(t)

	coordinator.ToggleSpeech("m1", "Hi")
	coordinator.SetSpeaking(true)
	coordinator.SetSpeaking(false)

	if _, ok := coordinator.SpeechTarget(); ok {
		t.Fatalf("expected externally ended playback to clear the speech target")
	}
}

func TestPlaybackEndedEventClearsTarget(t *testing.T) {
	coordinator := newTestCoordinator(t)

	coordinator.ToggleSpeech("m1", "Hi")
	coordinator.Handle(events.NewPlaybackStarted())
	coordinator.Handle(events.NewPlaybackEnded())

	if _, ok := coordinator.SpeechTarget(); ok {
		t.Fatalf("expected playback ended event to clear the speech target")
	}
	if coordinator.Signals().Speaking {
		t.Fatalf("expected speaking mirror false after playback ended")
	}
}

func TestToggleSpeechWithheldForUnknownMessage(t *testing.T) {
	spoken := 0
	coordinator := newTestCoordinator(t,
		WithSpeakMessageCallback(func(string) { spoken++ }),
	)

	coordinator.Log().Append(NewAssistantMessage("known"))
	coordinator.ToggleSpeech("missing", "gone")

	if spoken != 0 {
		t.Fatalf("expected stale speak request withheld, got %d requests", spoken)
	}
	if _, ok := coordinator.SpeechTarget(); ok {
		t.Fatalf("expected no speech target for unknown message")
	}
}

func TestStopRequestsAreIdempotent(t *testing.T) {
	spoken, stops := []string{}, 0
	coordinator := newTestCoordinator(t,
		WithSpeakMessageCallback(func(text string) { spoken = append(spoken, text) }),
		WithListeningControlCallbacks(nil, func() { stops++ }),
	)

	// Nothing selected, nothing listening: toggles must not emit stops.
	coordinator.SetListening(false)
	coordinator.ToggleSpeech("m1", "Hi")
	coordinator.SetSpeaking(false)
	coordinator.SetSpeaking(false)

	if stops != 0 {
		t.Fatalf("expected no stop-listening requests, got %d", stops)
	}
	for _, payload := range spoken {
		if payload == "" {
			t.Fatalf("expected no stop payloads from idle reconciliation, got %v", spoken)
		}
	}
}

func TestSpeechTargetInvariantHoldsAfterOperationSequence(t *testing.T) {
	coordinator := newTestCoordinator(t)

	coordinator.ToggleSpeech("m1", "one")
	coordinator.Handle(events.NewPlaybackStarted())
	coordinator.ToggleSpeech("m2", "two")
	coordinator.Handle(events.NewPlaybackEnded())
	coordinator.ToggleSpeech("m3", "three")
	coordinator.Handle(events.NewPlaybackStarted())
	coordinator.Handle(events.NewPlaybackEnded())

	if _, ok := coordinator.SpeechTarget(); ok && !coordinator.Signals().Speaking {
		t.Fatalf("expected no speech target while speaking is false")
	}
}

func TestToggleSpeechEnabledNotifiesAndStopsPlayback(t *testing.T) {
	toggles := []bool{}
	spoken := []string{}
	coordinator := newTestCoordinator(t,
		WithToggleSpeechCallback(func(enabled bool) { toggles = append(toggles, enabled) }),
		WithSpeakMessageCallback(func(text string) { spoken = append(spoken, text) }),
	)

	coordinator.ToggleSpeech("m1", "Hi")
	coordinator.SetSpeaking(true)
	coordinator.ToggleSpeechEnabled()

	if len(toggles) != 1 || toggles[0] {
		t.Fatalf("expected preference toggled off, got %v", toggles)
	}
	if spoken[len(spoken)-1] != "" {
		t.Fatalf("expected disabling speech to emit stop payload, got %q", spoken[len(spoken)-1])
	}
	if coordinator.SpeechEnabled() {
		t.Fatalf("expected speech preference disabled")
	}

	coordinator.SetSpeaking(false)
	coordinator.ToggleSpeech("m1", "Hi")
	if target, ok := coordinator.SpeechTarget(); ok {
		t.Fatalf("expected speak request withheld while preference disabled, got target %q", target)
	}
}

func TestAppendMessageStoresTurnAndRunsStep(t *testing.T) {
	permissionChanges := 0
	coordinator := newTestCoordinator(t,
		WithPermissionsChangedCallback(func(Permissions) { permissionChanges++ }),
	)

	stored := coordinator.AppendMessage(NewAssistantMessage("hello"))

	if !coordinator.Log().Contains(stored.ID) {
		t.Fatalf("expected appended message %q in the log", stored.ID)
	}
	if permissionChanges != 1 {
		t.Fatalf("expected the append step to recompute permissions once, got %d", permissionChanges)
	}
}

func TestTranscriptEventsForwardToCallbacks(t *testing.T) {
	interim := []string{}
	finals := []string{}
	coordinator := newTestCoordinator(t,
		WithInterimTranscriptionCallback(func(transcript string) { interim = append(interim, transcript) }),
		WithTranscriptionCallback(func(transcript string) { finals = append(finals, transcript) }),
	)

	coordinator.Handle(events.NewUserTranscriptInterimUpdated("hel"))
	coordinator.Handle(events.NewUserTranscriptFinal("hello"))

	if len(interim) != 2 || interim[0] != "hel" || interim[1] != "" {
		t.Fatalf("expected interim updates [hel \"\"], got %v", interim)
	}
	if len(finals) != 1 || finals[0] != "hello" {
		t.Fatalf("expected final transcript %q, got %v", "hello", finals)
	}
}

func TestSignalEventsUpdateMirrorAndNotify(t *testing.T) {
	listeningStates := []bool{}
	processingStates := []bool{}
	coordinator := newTestCoordinator(t,
		WithListeningStateChangedCallback(func(isListening bool) { listeningStates = append(listeningStates, isListening) }),
		WithProcessingStateChangedCallback(func(isProcessing bool) { processingStates = append(processingStates, isProcessing) }),
	)

	coordinator.Handle(events.NewRecognitionStarted())
	coordinator.Handle(events.NewRecognitionStopped())
	coordinator.Handle(events.NewResponseStarted())
	coordinator.Handle(events.NewResponseCompleted())

	if len(listeningStates) != 2 || !listeningStates[0] || listeningStates[1] {
		t.Fatalf("expected listening transitions [true false], got %v", listeningStates)
	}
	if len(processingStates) != 2 || !processingStates[0] || processingStates[1] {
		t.Fatalf("expected processing transitions [true false], got %v", processingStates)
	}
}

func TestPermissionsRecomputedOnEveryStep(t *testing.T) {
	permissions := []Permissions{}
	coordinator := newTestCoordinator(t,
		WithPermissionsChangedCallback(func(p Permissions) { permissions = append(permissions, p) }),
	)

	coordinator.Handle(events.NewResponseStarted())
	coordinator.Handle(events.NewResponseCompleted())

	if len(permissions) != 2 {
		t.Fatalf("expected permissions recomputed twice, got %d", len(permissions))
	}
	if permissions[0].CanSubmitText {
		t.Fatalf("expected submission blocked while processing")
	}
	if !permissions[1].CanSubmitText {
		t.Fatalf("expected submission allowed after processing completed")
	}
}
