package codec

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// Encoder runs the message-to-waveform pipeline: map text to keypad
// digits, synthesize the tone audio, and write the WAV container plus
// the optional key-sequence sidecar.
type Encoder struct {
	config *configs.Config
	synth  *dtmf.Synthesizer
	logger logging.Logger
}

// NewEncoder creates an encoder. A nil config uses defaults; a nil
// logger uses the default logger.
func NewEncoder(config *configs.Config, logger logging.Logger) (*Encoder, error) {
	if config == nil {
		config = configs.GetDefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	logger = logger.WithFields(logging.Fields{"component": "encoder"})

	synth, err := dtmf.NewSynthesizer(config.ToneConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	return &Encoder{
		config: config,
		synth:  synth,
		logger: logger,
	}, nil
}

// EncodeRequest names the inputs of one encode run. Empty paths skip
// the corresponding file.
type EncodeRequest struct {
	Message    string
	OutputPath string
	KeysPath   string
}

// Encode runs the pipeline for one message.
func (e *Encoder) Encode(ctx context.Context, req EncodeRequest) (*EncodeResult, error) {
	start := time.Now()

	message := req.Message
	if e.config.Message.Uppercase {
		message = cases.Upper(language.Und).String(message)
	}

	digits, err := keypad.ToDigits(message)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("mapped message to digits", logging.Fields{
		"message": message,
		"digits":  digits.String(),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := e.synth.Synthesize(digits)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &EncodeResult{
		Message:    message,
		Digits:     digits.String(),
		Keys:       digits.Keys(),
		SampleRate: data.SampleRate,
		Samples:    data.SampleCount(),
		Duration:   data.Duration(),
		Timestamp:  start,
	}

	if req.OutputPath != "" {
		if err := audio.WriteFile(req.OutputPath, data); err != nil {
			return nil, fmt.Errorf("failed to write waveform: %w", err)
		}
		result.OutputPath = req.OutputPath
		e.logger.Debug("wrote waveform", logging.Fields{
			"path":    req.OutputPath,
			"samples": data.SampleCount(),
		})
	}

	if req.KeysPath != "" {
		if err := writeKeysFile(req.KeysPath, digits); err != nil {
			return nil, fmt.Errorf("failed to write key sequence: %w", err)
		}
		result.KeysPath = req.KeysPath
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// writeKeysFile writes the key-sequence sidecar, one space-separated
// line of pressed keys.
func writeKeysFile(path string, digits keypad.Sequence) error {
	line := fmt.Sprintf("Key sequence: %s\n", digits.Keys())
	return os.WriteFile(path, []byte(line), 0644)
}
