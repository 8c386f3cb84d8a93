package codec

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	dec, err := NewDecoder(nil, logging.Nop())
	require.NoError(t, err)
	return dec
}

// encodeTestMessage synthesizes a message to a WAV file in a temp dir and
// returns its path.
func encodeTestMessage(t *testing.T, message string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message.wav")
	enc := newTestEncoder(t)
	_, err := enc.Encode(context.Background(), EncodeRequest{Message: message, OutputPath: path})
	require.NoError(t, err)
	return path
}

func TestDecodeFileRoundTrip(t *testing.T) {
	path := encodeTestMessage(t, "HC{TEST}")
	dec := newTestDecoder(t)

	result, err := dec.DecodeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, result.InputPath)
	assert.Equal(t, "42083780", result.Digits)
	assert.Equal(t, "4 2 0 8 3 7 8 0", result.Keys)
	assert.Equal(t, "HC{[TUV][DEF][PQRS][TUV]}", result.Text)
	assert.Nil(t, result.Segments)
	require.Len(t, result.Positions, 8)

	first := result.Positions[0]
	assert.Equal(t, keypad.StatusResolved, first.Status)
	assert.Equal(t, "H", first.Char)

	fourth := result.Positions[3]
	assert.Equal(t, keypad.StatusAmbiguous, fourth.Status)
	assert.Equal(t, []string{"T", "U", "V"}, fourth.Candidates)

	summary := result.Summary
	assert.Equal(t, 8, summary.Windows)
	assert.Equal(t, 8, summary.Tones)
	assert.Zero(t, summary.Silent)
	assert.Zero(t, summary.Unrecognized)
	assert.Equal(t, 8, summary.Positions)
	assert.Equal(t, 4, summary.Resolved)
	assert.Equal(t, 4, summary.Ambiguous)
	assert.Zero(t, summary.Unresolved)
	assert.InDelta(t, 0.5, summary.ResolvedRate, 1e-9)
}

func TestDecodeShowSegments(t *testing.T) {
	cfg := configs.GetDefaultConfig()
	cfg.Output.ShowSegments = true
	dec, err := NewDecoder(cfg, logging.Nop())
	require.NoError(t, err)

	path := encodeTestMessage(t, "HC{A}")
	result, err := dec.DecodeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "42020", result.Digits)
	assert.Equal(t, "HC{[ABC]}", result.Text)
	require.Len(t, result.Segments, 5)
	assert.Equal(t, dtmf.SegmentTone, result.Segments[0].Status)
}

func TestDecodeInMemory(t *testing.T) {
	synth, err := dtmf.NewSynthesizer(nil, logging.Nop())
	require.NoError(t, err)
	digits, err := keypad.ToDigits("HC{GO}")
	require.NoError(t, err)
	data, err := synth.Synthesize(digits)
	require.NoError(t, err)

	dec := newTestDecoder(t)
	result, err := dec.Decode(context.Background(), data)
	require.NoError(t, err)

	assert.Empty(t, result.InputPath)
	assert.Equal(t, "420460", result.Digits)
	assert.Equal(t, "HC{[GHI][MNO]}", result.Text)
}

func TestProbe(t *testing.T) {
	path := encodeTestMessage(t, "HC{TEST}")
	dec := newTestDecoder(t)

	result, err := dec.Probe(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, result.InputPath)
	assert.Equal(t, 8000, result.SampleRate)
	assert.Equal(t, 1, result.Channels)
	assert.Equal(t, 16, result.BitDepth)
	assert.Equal(t, 37600, result.Samples)
	assert.Equal(t, 4700*time.Millisecond, result.Duration)
	assert.Equal(t, "42083780", result.Digits)
	require.Len(t, result.Segments, 8)
	for _, seg := range result.Segments {
		assert.Equal(t, dtmf.SegmentTone, seg.Status)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	dec := newTestDecoder(t)

	_, err := dec.DecodeFile(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestDecodeCancelledContext(t *testing.T) {
	synth, err := dtmf.NewSynthesizer(nil, logging.Nop())
	require.NoError(t, err)
	digits, err := keypad.ToDigits("HC{A}")
	require.NoError(t, err)
	data, err := synth.Synthesize(digits)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dec := newTestDecoder(t)
	_, err = dec.Decode(ctx, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
