package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
)

// SetDefaults registers default configuration values on a viper instance
// so config files and environment variables only need to name overrides.
func SetDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("output_format", "table")

	// Timing grid defaults
	v.SetDefault("audio.sample_rate", 8000)
	v.SetDefault("audio.tone_duration", 500*time.Millisecond)
	v.SetDefault("audio.gap_duration", 100*time.Millisecond)
	v.SetDefault("audio.fade_duration", 50*time.Millisecond)
	v.SetDefault("audio.tone_amplitude", 0.3)
	v.SetDefault("audio.peak_level", 0.8)

	// Detection defaults
	v.SetDefault("detect.freq_tolerance", 15.0)
	v.SetDefault("detect.silence_floor", 0.05)
	v.SetDefault("detect.row_band.low", 650.0)
	v.SetDefault("detect.row_band.high", 1000.0)
	v.SetDefault("detect.col_band.low", 1150.0)
	v.SetDefault("detect.col_band.high", 1550.0)

	// Message defaults
	v.SetDefault("message.uppercase", true)
	v.SetDefault("message.prefix", keypad.DefaultPrefix)
	v.SetDefault("message.suffix", keypad.DefaultSuffix)

	// Output defaults
	v.SetDefault("output.file", "")
	v.SetDefault("output.show_segments", false)
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		LogFormat:    "console",
		OutputFormat: "table",
		Audio:        GetDefaultAudioConfig(),
		Detect:       GetDefaultDetectConfig(),
		Message:      GetDefaultMessageConfig(),
		Output:       GetDefaultOutputConfig(),
	}
}

// GetDefaultAudioConfig returns the reference timing grid: 8 kHz, half
// second tones, tenth second gaps, 50 ms fades.
func GetDefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:    8000,
		ToneDuration:  500 * time.Millisecond,
		GapDuration:   100 * time.Millisecond,
		FadeDuration:  50 * time.Millisecond,
		ToneAmplitude: 0.3,
		PeakLevel:     0.8,
	}
}

// GetDefaultDetectConfig returns default tone detection settings
func GetDefaultDetectConfig() DetectConfig {
	return DetectConfig{
		FreqTolerance: 15,
		SilenceFloor:  0.05,
		RowBand:       dtmf.Band{Low: 650, High: 1000},
		ColBand:       dtmf.Band{Low: 1150, High: 1550},
	}
}

// GetDefaultMessageConfig returns default message alphabet settings
func GetDefaultMessageConfig() MessageConfig {
	return MessageConfig{
		Uppercase: true,
		Prefix:    keypad.DefaultPrefix,
		Suffix:    keypad.DefaultSuffix,
	}
}

// GetDefaultOutputConfig returns default result output settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		File:         "",
		ShowSegments: false,
	}
}

// StrictDetectConfig returns tightened detection settings for clean,
// machine-generated input: a narrow snap window and a higher silence
// floor.
func StrictDetectConfig() DetectConfig {
	return DetectConfig{
		FreqTolerance: 5,
		SilenceFloor:  0.1,
		RowBand:       dtmf.Band{Low: 650, High: 1000},
		ColBand:       dtmf.Band{Low: 1150, High: 1550},
	}
}

// RelaxedDetectConfig returns loosened detection settings for noisy or
// resampled input. The tolerance stays below half the reference tone
// spacing so snapping cannot become ambiguous.
func RelaxedDetectConfig() DetectConfig {
	return DetectConfig{
		FreqTolerance: 30,
		SilenceFloor:  0.02,
		RowBand:       dtmf.Band{Low: 650, High: 1000},
		ColBand:       dtmf.Band{Low: 1150, High: 1550},
	}
}
