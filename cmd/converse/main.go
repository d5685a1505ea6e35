package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	coordination "github.com/lenavoss/converse-core/core"
	"github.com/lenavoss/converse-core/core/audio/miniaudio"
	sttdeepgram "github.com/lenavoss/converse-core/core/speechtotext/deepgram"
	ttsdeepgram "github.com/lenavoss/converse-core/core/texttospeech/deepgram"
)

const replyDelay = 900 * time.Millisecond

func main() {
	voice := flag.Bool("voice", false, "enable microphone capture and spoken replies (requires DEEPGRAM_API_KEY)")
	autoSpeak := flag.Bool("auto-speak", false, "read every assistant reply aloud")
	flag.Parse()

	if err := run(*voice, *autoSpeak); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(voice, autoSpeak bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coordinatorOptions := []coordination.CoordinatorOption{}

	if voice {
		if os.Getenv("DEEPGRAM_API_KEY") == "" {
			return fmt.Errorf("voice mode requires DEEPGRAM_API_KEY to be set")
		}

		audioClient, err := miniaudio.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize audio device: %w", err)
		}
		defer audioClient.Close()

		if err := audioClient.StartPlayback(ctx); err != nil {
			return fmt.Errorf("failed to start audio playback: %w", err)
		}

		speakClient, err := ttsdeepgram.NewSpeakClient(ttsdeepgram.VoiceThalia)
		if err != nil {
			return fmt.Errorf("failed to initialize speech synthesis: %w", err)
		}

		coordinatorOptions = append(coordinatorOptions,
			coordination.WithAudioInput(audioClient),
			coordination.WithAudioOutput(audioClient),
			coordination.WithSpeechToTextClient(sttdeepgram.NewTranscriptionClient()),
			coordination.WithSpeechSynthesisClient(speakClient),
		)
	}

	coordinator := coordination.NewCoordinator(coordinatorOptions...)
	model := newModel(ctx, coordinator, autoSpeak && voice)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}

	return nil
}
