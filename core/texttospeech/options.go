package texttospeech

import "github.com/lenavoss/converse-core/core/audio"

type SpeechOptions struct {
	// SpeechAudioCallback is called with synthesized audio as it arrives.
	SpeechAudioCallback func(audio []byte)
	// SpeechStartedCallback is called once playback-ready audio starts
	// flowing for a speak request.
	SpeechStartedCallback func()
	// SpeechEndedCallback is called once the speak request ends, for any
	// reason: natural completion, stop, or error.
	SpeechEndedCallback func()
	// ErrorCallback is called when the synthesis client encounters an
	// error, this usually means the request has been cancelled.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type SpeechOption func(*SpeechOptions)

func WithSpeechAudioCallback(callback func([]byte)) SpeechOption {
	return func(o *SpeechOptions) {
		o.SpeechAudioCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) SpeechOption {
	return func(o *SpeechOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) SpeechOption {
	return func(o *SpeechOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithErrorCallback(callback func(error)) SpeechOption {
	return func(o *SpeechOptions) { o.ErrorCallback = callback }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SpeechOption {
	return func(o *SpeechOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
