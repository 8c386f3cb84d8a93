package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
)

// EncodeResult is the outcome of rendering one message as tone audio.
// Raw PCM is never carried here; results must stay serializable.
type EncodeResult struct {
	Message    string        `json:"message" yaml:"message"`
	Digits     string        `json:"digits" yaml:"digits"`
	Keys       string        `json:"keys" yaml:"keys"`
	OutputPath string        `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	KeysPath   string        `json:"keys_path,omitempty" yaml:"keys_path,omitempty"`
	SampleRate int           `json:"sample_rate" yaml:"sample_rate"`
	Samples    int           `json:"samples" yaml:"samples"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// TableHeader implements output.Tabular.
func (r *EncodeResult) TableHeader() []string {
	return []string{"MESSAGE", "DIGITS", "SAMPLES", "DURATION", "OUTPUT"}
}

// TableRows implements output.Tabular.
func (r *EncodeResult) TableRows() [][]string {
	out := r.OutputPath
	if out == "" {
		out = "-"
	}
	return [][]string{{
		r.Message,
		r.Digits,
		strconv.Itoa(r.Samples),
		r.Duration.String(),
		out,
	}}
}

// DecodeResult is the outcome of decoding one waveform back to text.
type DecodeResult struct {
	InputPath string            `json:"input_path,omitempty" yaml:"input_path,omitempty"`
	Digits    string            `json:"digits" yaml:"digits"`
	Keys      string            `json:"keys" yaml:"keys"`
	Text      string            `json:"text" yaml:"text"`
	Positions []keypad.Position `json:"positions" yaml:"positions"`
	Segments  []dtmf.Segment    `json:"segments,omitempty" yaml:"segments,omitempty"`
	Summary   DecodeSummary     `json:"summary" yaml:"summary"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Elapsed   time.Duration     `json:"elapsed" yaml:"elapsed"`
}

// TableHeader implements output.Tabular.
func (r *DecodeResult) TableHeader() []string {
	return []string{"POS", "KEY", "STATUS", "TEXT", "CANDIDATES"}
}

// TableRows implements output.Tabular, one row per message position.
func (r *DecodeResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Positions))
	for _, pos := range r.Positions {
		rows = append(rows, []string{
			strconv.Itoa(pos.Index),
			pos.Digit.String(),
			string(pos.Status),
			pos.Render(),
			strings.Join(pos.Candidates, ""),
		})
	}
	return rows
}

// ProbeResult is the per-window inspection of a waveform without any
// message reconstruction.
type ProbeResult struct {
	InputPath  string         `json:"input_path" yaml:"input_path"`
	SampleRate int            `json:"sample_rate" yaml:"sample_rate"`
	Channels   int            `json:"channels" yaml:"channels"`
	BitDepth   int            `json:"bit_depth" yaml:"bit_depth"`
	Samples    int            `json:"samples" yaml:"samples"`
	Duration   time.Duration  `json:"duration" yaml:"duration"`
	Digits     string         `json:"digits" yaml:"digits"`
	Segments   []dtmf.Segment `json:"segments" yaml:"segments"`
}

// TableHeader implements output.Tabular.
func (r *ProbeResult) TableHeader() []string {
	return []string{"SEG", "START", "STATUS", "KEY", "ROW_HZ", "COL_HZ", "ROW_MAG", "COL_MAG"}
}

// TableRows implements output.Tabular, one row per tone window.
func (r *ProbeResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		rows = append(rows, []string{
			strconv.Itoa(seg.Index),
			fmt.Sprintf("%.2fs", seg.StartTime),
			string(seg.Status),
			seg.Digit.String(),
			fmt.Sprintf("%.1f", seg.RowHz),
			fmt.Sprintf("%.1f", seg.ColHz),
			fmt.Sprintf("%.3f", seg.RowMag),
			fmt.Sprintf("%.3f", seg.ColMag),
		})
	}
	return rows
}
