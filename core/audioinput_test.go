package coordination

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lenavoss/converse-core/core/audio"
)

func TestWithAudioInputConfiguresAudioInputFacade(t *testing.T) {
	coordinator := NewCoordinator(WithAudioInput(&fineAudioInputStub{}))

	if !coordinator.audioInput.IsConfigured() {
		t.Fatalf("expected audio input facade to be configured")
	}
	if !coordinator.audioInput.SupportsCaptureControls() {
		t.Fatalf("expected capture controls to be detected")
	}
}

func TestAudioInputFacadeUsesDefaultEncodingInfoWhenUnset(t *testing.T) {
	facade := newAudioInput(nil, nil)

	if got := facade.EncodingInfo(); got != audio.GetDefaultEncodingInfo() {
		t.Fatalf("expected default encoding info, got %+v", got)
	}
}

func TestAudioInputRequestCaptureNoopWhenUnconfigured(t *testing.T) {
	facade := newAudioInput(nil, nil)

	facade.RequestCapture(context.Background())

	if facade.IsCapturing() {
		t.Fatalf("expected unconfigured facade not to report capturing")
	}
}

func TestAudioInputCaptureForwardsAudioOnlyWhileRequested(t *testing.T) {
	received := []byte{}
	var mu sync.Mutex
	facade := newAudioInput(&fineAudioInputStub{}, func(audio []byte) {
		mu.Lock()
		received = append(received, audio...)
		mu.Unlock()
	})

	// Audio arriving before a capture request must be dropped.
	facade.onAudio([]byte{0x01})

	facade.shouldCapture.Store(true)
	facade.onAudio([]byte{0x02})

	facade.shouldCapture.Store(false)
	facade.onAudio([]byte{0x03})

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0] != 0x02 {
		t.Fatalf("expected only requested-capture audio to be forwarded, got %v", received)
	}
}

func TestAudioInputCaptureLifecycleEmitsRecognitionSignals(t *testing.T) {
	client := &fineAudioInputStub{}
	facade := newAudioInput(client, nil)

	coordinator := NewCoordinator()
	facade.SetEventEmitter(coordinator.Handle)

	facade.RequestCapture(context.Background())
	waitForCondition(t, func() bool { return coordinator.Signals().Listening })
	if !client.captureStarted() {
		t.Fatalf("expected capture to have started on the client")
	}

	facade.ReleaseCapture(context.Background())
	waitForCondition(t, func() bool { return !coordinator.Signals().Listening })
	if client.captureActive() {
		t.Fatalf("expected capture to have stopped on the client")
	}
}

func waitForCondition(t *testing.T, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within deadline")
}

type fineAudioInputStub struct {
	mu      sync.Mutex
	started bool
	active  bool
}

func (stub *fineAudioInputStub) Stream(ctx context.Context, onAudio func(audio []byte)) error {
	<-ctx.Done()
	return nil
}

func (stub *fineAudioInputStub) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	stub.mu.Lock()
	stub.started = true
	stub.active = true
	stub.mu.Unlock()
	return nil
}

func (stub *fineAudioInputStub) StopCapture() error {
	stub.mu.Lock()
	stub.active = false
	stub.mu.Unlock()
	return nil
}

func (stub *fineAudioInputStub) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (stub *fineAudioInputStub) Close() {}

func (stub *fineAudioInputStub) captureStarted() bool {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.started
}

func (stub *fineAudioInputStub) captureActive() bool {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.active
}
