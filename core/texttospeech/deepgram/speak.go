package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/lenavoss/converse-core/core/audio"
	"github.com/lenavoss/converse-core/core/texttospeech"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type deepgramVoice string

const (
	VoiceThalia  deepgramVoice = "aura-2-thalia-en"
	VoiceAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceOrion   deepgramVoice = "aura-2-orion-en"
	VoiceLuna    deepgramVoice = "aura-2-luna-en"
	VoiceArcas   deepgramVoice = "aura-2-arcas-en"
)

const defaultVoice = VoiceThalia

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{VoiceThalia, VoiceAsteria, VoiceOrion, VoiceLuna, VoiceArcas}
}

// SpeakClient synthesizes one utterance at a time through Deepgram's speak
// REST API. A new speak request supersedes the previous one: the in-flight
// request is cancelled before the new utterance starts.
type SpeakClient struct {
	httpClient *http.Client
	voice      deepgramVoice
	options    texttospeech.SpeechOptions

	mu     sync.Mutex
	active *speakHandle
}

// speakHandle identifies one in-flight speak request so a finished request
// never clears the slot of the request that superseded it.
type speakHandle struct {
	cancel context.CancelFunc
}

func NewSpeakClient(voice deepgramVoice, opts ...texttospeech.SpeechOption) (*SpeakClient, error) {
	client := &SpeakClient{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		voice:      defaultVoice,
		options:    texttospeech.SpeechOptions{EncodingInfo: audio.GetDefaultEncodingInfo()},
	}

	if !slices.Contains(GetAvailableVoices(), voice) {
		return nil, fmt.Errorf("invalid voice")
	}
	client.voice = voice

	for _, opt := range opts {
		opt(&client.options)
	}

	return client, nil
}

func (c *SpeakClient) SetVoice(voice deepgramVoice) {
	c.voice = voice
}

// Speak synthesizes text and streams the audio through the configured
// callbacks. Per-call options are merged over the client's base options.
// The ended callback fires exactly once per call, for any outcome.
func (c *SpeakClient) Speak(ctx context.Context, text string, opts ...texttospeech.SpeechOption) error {
	if text == "" {
		return nil
	}

	options := c.options
	for _, opt := range opts {
		opt(&options)
	}

	speakCtx, cancel := context.WithCancel(ctx)
	handle := &speakHandle{cancel: cancel}
	c.mu.Lock()
	if c.active != nil {
		c.active.cancel()
	}
	c.active = handle
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.active == handle {
			c.active = nil
		}
		c.mu.Unlock()
	}()

	resp, err := c.requestSpeech(speakCtx, text, options.EncodingInfo)
	if err != nil {
		if options.ErrorCallback != nil {
			options.ErrorCallback(err)
		}
		return err
	}
	defer resp.Body.Close()

	if options.SpeechStartedCallback != nil {
		options.SpeechStartedCallback()
	}
	defer func() {
		if options.SpeechEndedCallback != nil {
			options.SpeechEndedCallback()
		}
	}()

	chunk := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 && options.SpeechAudioCallback != nil {
			options.SpeechAudioCallback(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) || speakCtx.Err() != nil {
				return nil
			}
			if options.ErrorCallback != nil {
				options.ErrorCallback(err)
			}
			return fmt.Errorf("failed to read speech audio: %w", err)
		}
	}
}

// Stop cancels the in-flight speak request. Stopping when nothing is being
// synthesized is a safe no-op.
func (c *SpeakClient) Stop(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.active.cancel()
		c.active = nil
	}
	return nil
}

func (c *SpeakClient) requestSpeech(ctx context.Context, text string, encodingInfo audio.EncodingInfo) (*http.Response, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("model", string(c.voice))
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("container", "none")

	body, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speak request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		(&url.URL{
			Scheme: "https",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speak request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call deepgram speak api: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("deepgram speak api returned %s: %s", resp.Status, string(errBody))
	}

	return resp, nil
}
