// Package miniaudio provides microphone capture and speech playback on top
// of the miniaudio library, shaped to the coordination package's audio input
// and output contracts.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/lenavoss/converse-core/core/audio"
)

// Client bundles a capture device feeding the recognition engine and a
// playback device for synthesized speech, sharing one miniaudio context.
type Client struct {
	// audioContext is retained for ownership: it must outlive both devices
	// and be freed last.
	audioContext *malgo.AllocatedContext

	capture  captureDevice
	playback playbackDevice

	encodingInfo audio.EncodingInfo
}

func NewClient() (*Client, error) {
	audioContext, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize miniaudio context: %w", err)
	}

	client := Client{
		audioContext: audioContext,
		encodingInfo: audio.GetDefaultEncodingInfo(),
	}

	if err := client.capture.init(audioContext, client.encodingInfo); err != nil {
		client.Close()
		return nil, err
	}
	if err := client.playback.init(audioContext, client.encodingInfo); err != nil {
		client.Close()
		return nil, err
	}

	return &client, nil
}

func (c *Client) Stream(_ context.Context, onAudio func(audio []byte)) error {
	return c.capture.start(onAudio)
}

func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.capture.start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.capture.stop()
}

func (c *Client) StartPlayback(context.Context) error {
	return c.playback.start()
}

func (c *Client) StopPlayback() error {
	return c.playback.stop()
}

func (c *Client) SendAudio(audio []byte) error {
	return c.playback.enqueue(audio)
}

func (c *Client) ClearBuffer() {
	c.playback.clear()
}

// BufferedBytes reports how much synthesized audio is queued but not yet
// played.
func (c *Client) BufferedBytes() int {
	return c.playback.buffered()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}

func (c *Client) Close() {
	c.capture.uninit()
	c.playback.uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}
