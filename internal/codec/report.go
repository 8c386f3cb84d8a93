package codec

import (
	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// DecodeSummary aggregates the per-window and per-position outcomes of
// one decode run.
type DecodeSummary struct {
	Windows      int `json:"windows" yaml:"windows"`
	Tones        int `json:"tones" yaml:"tones"`
	Silent       int `json:"silent" yaml:"silent"`
	Unrecognized int `json:"unrecognized" yaml:"unrecognized"`

	Positions  int `json:"positions" yaml:"positions"`
	Resolved   int `json:"resolved" yaml:"resolved"`
	Ambiguous  int `json:"ambiguous" yaml:"ambiguous"`
	Unresolved int `json:"unresolved" yaml:"unresolved"`

	// ResolvedRate is Resolved over Positions, zero when the message is
	// empty.
	ResolvedRate float64 `json:"resolved_rate" yaml:"resolved_rate"`
}

// Summarizer reduces decode evidence to a DecodeSummary.
type Summarizer struct {
	logger logging.Logger
}

// NewSummarizer creates a summarizer.
func NewSummarizer(logger logging.Logger) *Summarizer {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Summarizer{logger: logger}
}

// Summarize counts window and position outcomes.
func (s *Summarizer) Summarize(detection *dtmf.Detection, transcript *keypad.Transcript) DecodeSummary {
	summary := DecodeSummary{
		Windows:   len(detection.Segments),
		Positions: len(transcript.Positions),
	}

	for _, seg := range detection.Segments {
		switch seg.Status {
		case dtmf.SegmentTone:
			summary.Tones++
		case dtmf.SegmentSilent:
			summary.Silent++
		case dtmf.SegmentUnrecognized:
			summary.Unrecognized++
		}
	}

	for _, pos := range transcript.Positions {
		switch pos.Status {
		case keypad.StatusResolved:
			summary.Resolved++
		case keypad.StatusAmbiguous:
			summary.Ambiguous++
		case keypad.StatusUnresolved:
			summary.Unresolved++
		}
	}

	if summary.Positions > 0 {
		summary.ResolvedRate = float64(summary.Resolved) / float64(summary.Positions)
	}

	s.logger.Debug("summarized decode run", logging.Fields{
		"windows":       summary.Windows,
		"tones":         summary.Tones,
		"resolved":      summary.Resolved,
		"ambiguous":     summary.Ambiguous,
		"unresolved":    summary.Unresolved,
		"resolved_rate": summary.ResolvedRate,
	})

	return summary
}
