package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

func TestSummarizeCountsStatuses(t *testing.T) {
	detection := &dtmf.Detection{
		Digits: keypad.Sequence{'4', keypad.Unknown, '2'},
		Segments: []dtmf.Segment{
			{Index: 0, Status: dtmf.SegmentTone},
			{Index: 1, Status: dtmf.SegmentSilent},
			{Index: 2, Status: dtmf.SegmentTone},
			{Index: 3, Status: dtmf.SegmentUnrecognized},
		},
	}
	transcript := keypad.DefaultReconstructor().Reconstruct(detection.Digits)

	summary := NewSummarizer(logging.Nop()).Summarize(detection, transcript)

	assert.Equal(t, 4, summary.Windows)
	assert.Equal(t, 2, summary.Tones)
	assert.Equal(t, 1, summary.Silent)
	assert.Equal(t, 1, summary.Unrecognized)
	assert.Equal(t, 3, summary.Positions)
	assert.Zero(t, summary.Resolved)
	assert.Equal(t, 2, summary.Ambiguous)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Zero(t, summary.ResolvedRate)
}

func TestSummarizeEmptyDetection(t *testing.T) {
	detection := &dtmf.Detection{Digits: keypad.Sequence{}}
	transcript := keypad.DefaultReconstructor().Reconstruct(detection.Digits)

	summary := NewSummarizer(nil).Summarize(detection, transcript)

	assert.Zero(t, summary.Windows)
	assert.Zero(t, summary.Positions)
	assert.Zero(t, summary.ResolvedRate)
}
