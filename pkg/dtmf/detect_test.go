package dtmf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	det, err := NewDetector(nil, logging.Nop())
	require.NoError(t, err)
	return det
}

// toneWindow builds one unfaded tone window. A zero frequency contributes
// nothing, so toneWindow(770, 0) has row-band energy only.
func toneWindow(rowHz, colHz float64) []float64 {
	window := make([]float64, 4000)
	for n := range window {
		ts := float64(n) / 8000
		window[n] = 0.35*math.Sin(2*math.Pi*rowHz*ts) + 0.35*math.Sin(2*math.Pi*colHz*ts)
	}
	return window
}

func TestDetectRoundTrip(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	digits, err := keypad.ToDigits("HC{TEST}")
	require.NoError(t, err)

	data, err := synth.Synthesize(digits)
	require.NoError(t, err)

	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Equal(t, digits, detection.Digits)
	assert.Equal(t, "42083780", detection.Digits.String())
	assert.Zero(t, detection.UnknownCount())

	require.Len(t, detection.Segments, len(digits))
	for _, seg := range detection.Segments {
		assert.Equal(t, SegmentTone, seg.Status)
		assert.NotZero(t, seg.RowRef)
		assert.NotZero(t, seg.ColRef)
		assert.Nil(t, seg.Err)
	}
}

func TestDetectRoundTripEveryDigit(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	for _, digit := range keypad.Sequence("123456789*0#") {
		data, err := synth.Synthesize(keypad.Sequence{digit})
		require.NoError(t, err)

		detection, err := det.Detect(data)
		require.NoError(t, err)
		require.Len(t, detection.Digits, 1, "digit %q", digit)
		assert.Equal(t, digit, detection.Digits[0])
	}
}

func TestDetectSegmentPositions(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	data, err := synth.Synthesize(keypad.Sequence{'4', '2'})
	require.NoError(t, err)

	detection, err := det.Detect(data)
	require.NoError(t, err)
	require.Len(t, detection.Segments, 2)

	assert.Equal(t, 0, detection.Segments[0].StartSample)
	assert.Equal(t, 4800, detection.Segments[1].StartSample)
	assert.InDelta(t, 0.6, detection.Segments[1].StartTime, 1e-9)
}

func TestClassifyWindowSnapsOffPeaks(t *testing.T) {
	det := newTestDetector(t)

	seg := det.ClassifyWindow(toneWindow(700, 1210))
	assert.Equal(t, SegmentTone, seg.Status)
	assert.Equal(t, keypad.Digit('1'), seg.Digit)
	assert.Equal(t, 697.0, seg.RowRef)
	assert.Equal(t, 1209.0, seg.ColRef)

	seg = det.ClassifyWindow(toneWindow(941, 1336))
	assert.Equal(t, SegmentTone, seg.Status)
	assert.Equal(t, keypad.Digit('0'), seg.Digit)
}

func TestClassifyWindowSilence(t *testing.T) {
	det := newTestDetector(t)

	seg := det.ClassifyWindow(make([]float64, 4000))
	assert.Equal(t, SegmentSilent, seg.Status)
	assert.Equal(t, keypad.Unknown, seg.Digit)
	assert.Nil(t, seg.Err)
}

func TestClassifyWindowUnrecognized(t *testing.T) {
	det := newTestDetector(t)

	// 750 Hz sits 20 Hz from the nearest row tone, past the tolerance.
	seg := det.ClassifyWindow(toneWindow(750, 1336))
	assert.Equal(t, SegmentUnrecognized, seg.Status)
	assert.Equal(t, keypad.Unknown, seg.Digit)
	require.NotNil(t, seg.Err)
	assert.InDelta(t, 750, seg.Err.RowHz, 2)

	// Row-band energy alone is not a tone pair.
	seg = det.ClassifyWindow(toneWindow(770, 0))
	assert.Equal(t, SegmentUnrecognized, seg.Status)
	require.NotNil(t, seg.Err)
}

func TestDetectInteriorSilenceKeepsPosition(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	data, err := synth.Synthesize(keypad.Sequence{'4', '2', '2'})
	require.NoError(t, err)

	// Silence the middle tone window in place.
	for i := 4800; i < 8800; i++ {
		data.PCM[i] = 0
	}

	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Equal(t, keypad.Sequence{'4', keypad.Unknown, '2'}, detection.Digits)
	assert.Equal(t, 1, detection.UnknownCount())
	require.Len(t, detection.Segments, 3)
	assert.Equal(t, SegmentSilent, detection.Segments[1].Status)
}

func TestDetectInteriorUnrecognizedKeepsPosition(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	data, err := synth.Synthesize(keypad.Sequence{'4', '2', '2'})
	require.NoError(t, err)

	copy(data.PCM[4800:8800], toneWindow(750, 1336))

	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Equal(t, keypad.Sequence{'4', keypad.Unknown, '2'}, detection.Digits)
	require.Len(t, detection.Segments, 3)
	seg := detection.Segments[1]
	assert.Equal(t, SegmentUnrecognized, seg.Status)
	require.NotNil(t, seg.Err)
	assert.Equal(t, 1, seg.Err.Segment)
}

func TestDetectTrailingSilenceTrimmed(t *testing.T) {
	synth := newTestSynthesizer(t)
	det := newTestDetector(t)

	data, err := synth.Synthesize(keypad.Sequence{'4', '2'})
	require.NoError(t, err)
	data.PCM = append(data.PCM, make([]float64, 4800)...)

	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Equal(t, keypad.Sequence{'4', '2'}, detection.Digits)
	require.Len(t, detection.Segments, 3)
	assert.Equal(t, SegmentSilent, detection.Segments[2].Status)
}

func TestDetectAllSilent(t *testing.T) {
	det := newTestDetector(t)

	data := &audio.Data{PCM: make([]float64, 8000), SampleRate: 8000, Channels: 1, BitDepth: 16}
	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Empty(t, detection.Digits)
	assert.Len(t, detection.Segments, 1)
}

func TestDetectEmptyAudio(t *testing.T) {
	det := newTestDetector(t)

	data := &audio.Data{SampleRate: 8000, Channels: 1, BitDepth: 16}
	detection, err := det.Detect(data)
	require.NoError(t, err)

	assert.Empty(t, detection.Digits)
	assert.Empty(t, detection.Segments)
}

func TestDetectShortWaveform(t *testing.T) {
	det := newTestDetector(t)

	data := &audio.Data{PCM: make([]float64, 2000), SampleRate: 8000, Channels: 1, BitDepth: 16}
	_, err := det.Detect(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrMalformed)

	var formatErr *audio.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, audio.ErrCodeShortWaveform, formatErr.Code)
}

func TestDetectWrongFormat(t *testing.T) {
	det := newTestDetector(t)

	tests := []struct {
		name string
		data *audio.Data
		code string
	}{
		{
			name: "wrong sample rate",
			data: &audio.Data{PCM: make([]float64, 8000), SampleRate: 44100, Channels: 1, BitDepth: 16},
			code: audio.ErrCodeWrongSampleRate,
		},
		{
			name: "stereo",
			data: &audio.Data{PCM: make([]float64, 8000), SampleRate: 8000, Channels: 2, BitDepth: 16},
			code: audio.ErrCodeWrongChannels,
		},
		{
			name: "wrong bit depth",
			data: &audio.Data{PCM: make([]float64, 8000), SampleRate: 8000, Channels: 1, BitDepth: 8},
			code: audio.ErrCodeWrongBitDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := det.Detect(tt.data)
			require.Error(t, err)

			var formatErr *audio.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.code, formatErr.Code)
		})
	}
}
