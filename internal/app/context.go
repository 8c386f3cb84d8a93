package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/internal/codec"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
	"github.com/RyanBlaney/dtmf-codec/pkg/output"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile   string // Application configuration file (optional)
	OutputFile   string // Formatted results destination (default stdout)
	OutputFormat string
	Verbose      bool

	Message      string // encode: message text to hide in the waveform
	WaveformFile string // encode: waveform destination path
	KeysFile     string // encode: key sequence sidecar path (optional)
	InputFile    string // decode, probe: waveform to analyze
	Strict       bool   // decode: fail when any position stays unresolved
	SegmentIndex int    // probe: restrict output to one window, -1 for all

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// codecApp carries the lifecycle shared by every command: merged
// configuration, logging, and result output.
type codecApp struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

func newCodecApp(ctx *Context) (*codecApp, error) {
	// Load configuration
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	// Set up logging
	logger := setupLogging(ctx)
	ctx.Logger = logger

	logger.Debug("Codec application initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"output_format": config.OutputFormat,
		"sample_rate":   config.Audio.SampleRate,
		"tone_ms":       config.Audio.ToneDuration.Milliseconds(),
	})

	return &codecApp{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// EncodeApp handles the encode command lifecycle
type EncodeApp struct {
	*codecApp
}

// NewEncodeApp creates a new encode application
func NewEncodeApp(ctx *Context) (*EncodeApp, error) {
	base, err := newCodecApp(ctx)
	if err != nil {
		return nil, err
	}
	return &EncodeApp{codecApp: base}, nil
}

// Run synthesizes the message into a waveform and reports the result
func (app *EncodeApp) Run(ctx context.Context) error {
	encoder, err := codec.NewEncoder(app.config, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	result, err := encoder.Encode(ctx, codec.EncodeRequest{
		Message:    app.ctx.Message,
		OutputPath: app.ctx.WaveformFile,
		KeysPath:   app.ctx.KeysFile,
	})
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	return app.outputResults(result)
}

// DecodeApp handles the decode command lifecycle
type DecodeApp struct {
	*codecApp
}

// NewDecodeApp creates a new decode application
func NewDecodeApp(ctx *Context) (*DecodeApp, error) {
	base, err := newCodecApp(ctx)
	if err != nil {
		return nil, err
	}
	return &DecodeApp{codecApp: base}, nil
}

// Run decodes the waveform back into a transcript and reports the result
func (app *DecodeApp) Run(ctx context.Context) error {
	decoder, err := codec.NewDecoder(app.config, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	result, err := decoder.DecodeFile(ctx, app.ctx.InputFile)
	if err != nil {
		return fmt.Errorf("decoding failed: %w", err)
	}

	if err := app.outputResults(result); err != nil {
		return fmt.Errorf("failed to output results: %w", err)
	}

	if app.ctx.Strict && result.Summary.Unresolved > 0 {
		return fmt.Errorf("%d of %d positions unresolved",
			result.Summary.Unresolved, result.Summary.Positions)
	}

	return nil
}

// ProbeApp handles the probe command lifecycle
type ProbeApp struct {
	*codecApp
}

// NewProbeApp creates a new probe application
func NewProbeApp(ctx *Context) (*ProbeApp, error) {
	base, err := newCodecApp(ctx)
	if err != nil {
		return nil, err
	}
	return &ProbeApp{codecApp: base}, nil
}

// Run inspects the waveform window by window and reports the result
func (app *ProbeApp) Run(ctx context.Context) error {
	decoder, err := codec.NewDecoder(app.config, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	result, err := decoder.Probe(ctx, app.ctx.InputFile)
	if err != nil {
		return fmt.Errorf("probing failed: %w", err)
	}

	if idx := app.ctx.SegmentIndex; idx >= 0 {
		if idx >= len(result.Segments) {
			return fmt.Errorf("segment %d out of range: waveform has %d windows",
				idx, len(result.Segments))
		}
		result.Segments = result.Segments[idx : idx+1]
	}

	return app.outputResults(result)
}

// setupLogging configures logging from the merged configuration
func setupLogging(ctx *Context) logging.Logger {
	logger, err := logging.NewLogger(ctx.Config.LogConfig())
	if err != nil {
		return logging.NewDefaultLogger()
	}
	return logger
}

// outputResults handles all result output
func (app *codecApp) outputResults(result any) error {
	formatter, err := output.NewFormatter(app.config.OutputFormat)
	if err != nil {
		return err
	}

	formatted, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}
	if len(formatted) > 0 && formatted[len(formatted)-1] != '\n' {
		formatted = append(formatted, '\n')
	}

	// Write to file or stdout
	if app.config.Output.File != "" {
		return app.writeToFile(formatted)
	}

	_, err = os.Stdout.Write(formatted)
	return err
}

// writeToFile writes data to the configured output file
func (app *codecApp) writeToFile(data []byte) error {
	outputFile := app.config.Output.File

	// Ensure directory exists
	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": outputFile,
		"size_bytes":  len(data),
	})

	return nil
}
