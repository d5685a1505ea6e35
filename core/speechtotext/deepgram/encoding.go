package deepgram

import (
	"fmt"
	"slices"

	"github.com/lenavoss/converse-core/core/audio"
)

// streamEncoding is the subset of the live API's encoding parameters this
// client configures.
type streamEncoding struct {
	SampleRate int
	Format     string
}

var supportedSampleRates = []int{8000, 16000, 24000, 32000, 48000}

// streamEncodingFor validates local encoding metadata against what the live
// transcription API accepts. Companded formats are 8 kHz only.
func streamEncodingFor(encoding audio.EncodingInfo) (*streamEncoding, error) {
	if !slices.Contains(supportedSampleRates, encoding.SampleRate) {
		return nil, fmt.Errorf("unsupported sample rate %d", encoding.SampleRate)
	}

	name := ""
	switch encoding.Format {
	case audio.EncodingLinear16:
		name = "linear16"
	case audio.EncodingALaw:
		name = "alaw"
	case audio.EncodingMulaw:
		name = "mulaw"
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding.Format.Name())
	}
	if encoding.Format != audio.EncodingLinear16 && encoding.SampleRate != 8000 {
		return nil, fmt.Errorf("unsupported sample rate %d for %s encoding", encoding.SampleRate, name)
	}

	return &streamEncoding{SampleRate: encoding.SampleRate, Format: name}, nil
}
