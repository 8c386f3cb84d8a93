// Package audio holds the waveform layer of the codec: the in-memory
// sample representation, PCM scaling, and WAV container I/O.
package audio

import (
	"fmt"
	"time"
)

// Data is decoded audio: float64 PCM in [-1, 1] plus the container
// format it was read with (or will be written with).
type Data struct {
	PCM        []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	Channels   int       `json:"channels"`
	BitDepth   int       `json:"bit_depth"`
}

// SampleCount returns the number of samples held.
func (d *Data) SampleCount() int {
	return len(d.PCM)
}

// Duration returns the playing time of the audio.
func (d *Data) Duration() time.Duration {
	if d.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(d.PCM)) / float64(d.SampleRate) * float64(time.Second))
}

// ValidateFormat checks the container format against the expected one and
// returns a FormatError naming the first mismatch. A zero-sample waveform
// with a matching format is valid.
func (d *Data) ValidateFormat(sampleRate, channels, bitDepth int) error {
	if d.SampleRate != sampleRate {
		return NewFormatError(ErrCodeWrongSampleRate,
			fmt.Sprintf("waveform sample rate is %d Hz, want %d Hz", d.SampleRate, sampleRate), nil)
	}
	if d.Channels != channels {
		return NewFormatError(ErrCodeWrongChannels,
			fmt.Sprintf("waveform has %d channels, want %d", d.Channels, channels), nil)
	}
	if d.BitDepth != bitDepth {
		return NewFormatError(ErrCodeWrongBitDepth,
			fmt.Sprintf("waveform bit depth is %d, want %d", d.BitDepth, bitDepth), nil)
	}
	return nil
}
