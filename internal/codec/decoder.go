package codec

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// Decoder runs the waveform-to-message pipeline: read the WAV container,
// detect the digit sequence on the timing grid, and reconstruct the
// transcript with the structural priors.
type Decoder struct {
	config     *configs.Config
	detector   *dtmf.Detector
	recon      *keypad.Reconstructor
	summarizer *Summarizer
	logger     logging.Logger
}

// NewDecoder creates a decoder. A nil config uses defaults; a nil logger
// uses the default logger.
func NewDecoder(config *configs.Config, logger logging.Logger) (*Decoder, error) {
	if config == nil {
		config = configs.GetDefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	logger = logger.WithFields(logging.Fields{"component": "decoder"})

	detector, err := dtmf.NewDetector(config.ToneConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}

	recon, err := keypad.NewReconstructor(config.Message.Prefix, config.Message.Suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create reconstructor: %w", err)
	}

	return &Decoder{
		config:     config,
		detector:   detector,
		recon:      recon,
		summarizer: NewSummarizer(logger),
		logger:     logger,
	}, nil
}

// DecodeFile decodes a WAV file on disk.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*DecodeResult, error) {
	data, err := audio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := d.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	result.InputPath = path
	return result, nil
}

// Decode decodes in-memory audio.
func (d *Decoder) Decode(ctx context.Context, data *audio.Data) (*DecodeResult, error) {
	start := time.Now()

	detection, err := d.detector.Detect(data)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transcript := d.recon.Reconstruct(detection.Digits)

	result := &DecodeResult{
		Digits:    detection.Digits.String(),
		Keys:      detection.Digits.Keys(),
		Text:      transcript.Text(),
		Positions: transcript.Positions,
		Summary:   d.summarizer.Summarize(detection, transcript),
		Timestamp: start,
		Elapsed:   time.Since(start),
	}
	if d.config.Output.ShowSegments {
		result.Segments = detection.Segments
	}

	d.logger.Debug("decoded waveform", logging.Fields{
		"digits":     result.Digits,
		"text":       result.Text,
		"resolved":   result.Summary.Resolved,
		"ambiguous":  result.Summary.Ambiguous,
		"unresolved": result.Summary.Unresolved,
	})
	return result, nil
}

// Probe inspects a WAV file window by window without reconstructing the
// message.
func (d *Decoder) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	data, err := audio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detection, err := d.detector.Detect(data)
	if err != nil {
		return nil, err
	}

	return &ProbeResult{
		InputPath:  path,
		SampleRate: data.SampleRate,
		Channels:   data.Channels,
		BitDepth:   data.BitDepth,
		Samples:    data.SampleCount(),
		Duration:   data.Duration(),
		Digits:     detection.Digits.String(),
		Segments:   detection.Segments,
	}, nil
}
