package dtmf

import (
	"fmt"

	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// SegmentStatus classifies one tone window.
type SegmentStatus string

const (
	// SegmentTone is a window whose peaks snapped to a reference pair.
	SegmentTone SegmentStatus = "tone"
	// SegmentSilent is a window with no energy above the silence floor.
	SegmentSilent SegmentStatus = "silent"
	// SegmentUnrecognized is a window with energy whose peaks match no
	// reference pair within tolerance.
	SegmentUnrecognized SegmentStatus = "unrecognized"
)

// Segment is the classification of one tone window on the timing grid.
type Segment struct {
	Index       int     `json:"index"`
	StartSample int     `json:"start_sample"`
	StartTime   float64 `json:"start_time"` // seconds
	// RowHz and ColHz are the raw in-band peak frequencies.
	RowHz float64 `json:"row_hz"`
	ColHz float64 `json:"col_hz"`
	// RowRef and ColRef are the snapped reference tones, set only when
	// the window classified as a tone.
	RowRef float64 `json:"row_ref,omitempty"`
	ColRef float64 `json:"col_ref,omitempty"`
	RowMag float64 `json:"row_mag"`
	ColMag float64 `json:"col_mag"`

	Digit  keypad.Digit           `json:"digit"`
	Status SegmentStatus          `json:"status"`
	Err    *UnrecognizedToneError `json:"error,omitempty"`
}

// Detection is the result of decoding a waveform: the digit sequence plus
// the per-window evidence behind it.
//
// Digits covers the grid up to the last non-silent window; trailing silent
// windows are kept in Segments but contribute no digit. An interior silent
// or unrecognized window contributes keypad.Unknown, preserving the
// positions of the surrounding digits.
type Detection struct {
	Digits   keypad.Sequence `json:"digits"`
	Segments []Segment       `json:"segments"`
}

// UnknownCount returns how many detected positions are Unknown.
func (d *Detection) UnknownCount() int {
	count := 0
	for _, digit := range d.Digits {
		if digit == keypad.Unknown {
			count++
		}
	}
	return count
}

// Detector recovers digit sequences from tone audio laid out on the
// synthesizer's timing grid.
type Detector struct {
	config   *Config
	analyzer *SpectrumAnalyzer
	logger   logging.Logger
}

// NewDetector creates a detector with the given configuration. A nil
// config uses defaults; a nil logger uses the default logger.
func NewDetector(config *Config, logger logging.Logger) (*Detector, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Detector{
		config:   config,
		analyzer: NewSpectrumAnalyzer(config.SampleRate),
		logger: logger.WithFields(logging.Fields{
			"component": "dtmf_detector",
		}),
	}, nil
}

// Detect walks the fixed timing grid over the waveform and classifies one
// window per step. Zero-length audio yields an empty detection; audio
// shorter than a single tone window is malformed.
func (det *Detector) Detect(data *audio.Data) (*Detection, error) {
	if data == nil {
		return nil, fmt.Errorf("nil audio data")
	}
	if err := data.ValidateFormat(det.config.SampleRate, 1, 16); err != nil {
		return nil, err
	}

	n := data.SampleCount()
	if n == 0 {
		return &Detection{Digits: keypad.Sequence{}}, nil
	}

	toneSamples := det.config.ToneSamples()
	if n < toneSamples {
		return nil, audio.NewFormatError(audio.ErrCodeShortWaveform,
			fmt.Sprintf("waveform holds %d samples, shorter than one %d-sample tone", n, toneSamples), nil)
	}

	step := det.config.StepSamples()
	rate := float64(det.config.SampleRate)

	var segments []Segment
	for start := 0; start+toneSamples <= n; start += step {
		seg := det.ClassifyWindow(data.PCM[start : start+toneSamples])
		seg.Index = len(segments)
		seg.StartSample = start
		seg.StartTime = float64(start) / rate
		if seg.Err != nil {
			seg.Err.Segment = seg.Index
		}
		segments = append(segments, seg)
	}

	// Trailing silent windows carry no digit; interior ones do, as
	// Unknown, so later positions keep their offsets.
	last := len(segments) - 1
	for last >= 0 && segments[last].Status == SegmentSilent {
		last--
	}
	digits := make(keypad.Sequence, 0, last+1)
	for _, seg := range segments[:last+1] {
		digits = append(digits, seg.Digit)
	}

	detection := &Detection{Digits: digits, Segments: segments}
	det.logger.Debug("detected digit sequence", logging.Fields{
		"windows": len(segments),
		"digits":  digits.String(),
		"unknown": detection.UnknownCount(),
	})
	return detection, nil
}

// ClassifyWindow classifies a single tone window by its spectral peaks.
// The returned segment has no grid position; Detect fills that in.
func (det *Detector) ClassifyWindow(window []float64) Segment {
	spectrum := det.analyzer.Analyze(window)
	rowHz, rowMag := spectrum.PeakInBand(det.config.RowBand)
	colHz, colMag := spectrum.PeakInBand(det.config.ColBand)

	seg := Segment{
		RowHz:  rowHz,
		ColHz:  colHz,
		RowMag: rowMag,
		ColMag: colMag,
		Digit:  keypad.Unknown,
	}

	floor := det.config.SilenceFloor
	if rowMag < floor && colMag < floor {
		seg.Status = SegmentSilent
		return seg
	}

	rowRef, rowDist := NearestRow(rowHz)
	colRef, colDist := NearestCol(colHz)
	tol := det.config.FreqTolerance
	if rowMag < floor || colMag < floor || rowDist > tol || colDist > tol {
		seg.Status = SegmentUnrecognized
		seg.Err = NewUnrecognizedToneError(0, rowHz, colHz)
		return seg
	}

	digit, ok := DigitForPair(Pair{Row: rowRef, Col: colRef})
	if !ok {
		seg.Status = SegmentUnrecognized
		seg.Err = NewUnrecognizedToneError(0, rowHz, colHz)
		return seg
	}

	seg.RowRef = rowRef
	seg.ColRef = colRef
	seg.Digit = digit
	seg.Status = SegmentTone
	return seg
}
