package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "user audio frame", event: NewUserAudioFrame([]byte{1}), expected: KindUserAudioFrame},
		{name: "user speech started", event: NewUserSpeechStarted(), expected: KindUserSpeechStarted},
		{name: "user speech ended", event: NewUserSpeechEnded(), expected: KindUserSpeechEnded},
		{name: "user interim updated", event: NewUserTranscriptInterimUpdated("text"), expected: KindUserTranscriptInterimUpdated},
		{name: "user transcript final", event: NewUserTranscriptFinal("text"), expected: KindUserTranscriptFinal},
		{name: "recognition started", event: NewRecognitionStarted(), expected: KindRecognitionStarted},
		{name: "recognition stopped", event: NewRecognitionStopped(), expected: KindRecognitionStopped},
		{name: "response started", event: NewResponseStarted(), expected: KindResponseStarted},
		{name: "response completed", event: NewResponseCompleted(), expected: KindResponseCompleted},
		{name: "playback started", event: NewPlaybackStarted(), expected: KindPlaybackStarted},
		{name: "playback ended", event: NewPlaybackEnded(), expected: KindPlaybackEnded},
		{name: "message appended", event: NewMessageAppended("m1"), expected: KindMessageAppended},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestAllKindsAreDistinct(t *testing.T) {
	kinds := []Kind{
		KindUserAudioFrame,
		KindUserSpeechStarted,
		KindUserSpeechEnded,
		KindUserTranscriptInterimUpdated,
		KindUserTranscriptFinal,
		KindRecognitionStarted,
		KindRecognitionStopped,
		KindResponseStarted,
		KindResponseCompleted,
		KindPlaybackStarted,
		KindPlaybackEnded,
		KindMessageAppended,
	}

	seen := map[Kind]struct{}{}
	for _, kind := range kinds {
		if _, ok := seen[kind]; ok {
			t.Fatalf("expected unique kinds, %q repeats", kind)
		}
		seen[kind] = struct{}{}
	}
}
