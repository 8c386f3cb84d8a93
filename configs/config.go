package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose" json:"verbose" yaml:"verbose"`
	LogLevel     string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	OutputFormat string `mapstructure:"output_format" json:"output_format" yaml:"output_format"`

	// Timing grid and synthesis settings
	Audio AudioConfig `mapstructure:"audio" json:"audio" yaml:"audio"`

	// Tone detection settings
	Detect DetectConfig `mapstructure:"detect" json:"detect" yaml:"detect"`

	// Message alphabet and marker settings
	Message MessageConfig `mapstructure:"message" json:"message" yaml:"message"`

	// Result output settings
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output"`
}

// AudioConfig contains the timing grid and synthesis settings. Both
// sides of the codec derive their grid from here.
type AudioConfig struct {
	SampleRate    int           `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	ToneDuration  time.Duration `mapstructure:"tone_duration" json:"tone_duration" yaml:"tone_duration"`
	GapDuration   time.Duration `mapstructure:"gap_duration" json:"gap_duration" yaml:"gap_duration"`
	FadeDuration  time.Duration `mapstructure:"fade_duration" json:"fade_duration" yaml:"fade_duration"`
	ToneAmplitude float64       `mapstructure:"tone_amplitude" json:"tone_amplitude" yaml:"tone_amplitude"`
	PeakLevel     float64       `mapstructure:"peak_level" json:"peak_level" yaml:"peak_level"`
}

// DetectConfig contains tone detection settings
type DetectConfig struct {
	FreqTolerance float64   `mapstructure:"freq_tolerance" json:"freq_tolerance" yaml:"freq_tolerance"`
	SilenceFloor  float64   `mapstructure:"silence_floor" json:"silence_floor" yaml:"silence_floor"`
	RowBand       dtmf.Band `mapstructure:"row_band" json:"row_band" yaml:"row_band"`
	ColBand       dtmf.Band `mapstructure:"col_band" json:"col_band" yaml:"col_band"`
}

// MessageConfig contains message alphabet settings
type MessageConfig struct {
	Uppercase bool   `mapstructure:"uppercase" json:"uppercase" yaml:"uppercase"`
	Prefix    string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`
	Suffix    string `mapstructure:"suffix" json:"suffix" yaml:"suffix"`
}

// OutputConfig contains result output settings
type OutputConfig struct {
	File         string `mapstructure:"file" json:"file" yaml:"file"`
	ShowSegments bool   `mapstructure:"show_segments" json:"show_segments" yaml:"show_segments"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := GetDefaultConfig()

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", config.LogLevel)
	}

	switch config.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (expected console or json)", config.LogFormat)
	}

	switch config.OutputFormat {
	case "json", "yaml", "csv", "table":
	default:
		return fmt.Errorf("invalid output format %q (expected json, yaml, csv, or table)", config.OutputFormat)
	}

	if err := config.ToneConfig().Validate(); err != nil {
		return err
	}

	if _, err := keypad.ToDigits(config.Message.Prefix); err != nil {
		return fmt.Errorf("invalid message prefix %q: %w", config.Message.Prefix, err)
	}
	if _, err := keypad.ToDigits(config.Message.Suffix); err != nil {
		return fmt.Errorf("invalid message suffix %q: %w", config.Message.Suffix, err)
	}

	return nil
}

// ToneConfig merges the audio and detect sections into the codec
// parameter set shared by synthesizer and detector.
func (c *Config) ToneConfig() *dtmf.Config {
	return &dtmf.Config{
		SampleRate:    c.Audio.SampleRate,
		ToneDuration:  c.Audio.ToneDuration,
		GapDuration:   c.Audio.GapDuration,
		FadeDuration:  c.Audio.FadeDuration,
		ToneAmplitude: c.Audio.ToneAmplitude,
		PeakLevel:     c.Audio.PeakLevel,
		FreqTolerance: c.Detect.FreqTolerance,
		SilenceFloor:  c.Detect.SilenceFloor,
		RowBand:       c.Detect.RowBand,
		ColBand:       c.Detect.ColBand,
	}
}

// LogConfig returns the logger settings, with verbose forcing debug.
func (c *Config) LogConfig() logging.Config {
	level := c.LogLevel
	if c.Verbose {
		level = "debug"
	}
	return logging.Config{
		Level:  level,
		Format: c.LogFormat,
	}
}
