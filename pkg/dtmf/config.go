package dtmf

import (
	"fmt"
	"math"
	"time"
)

// Band is an inclusive frequency search range in Hz.
type Band struct {
	Low  float64 `mapstructure:"low" json:"low" yaml:"low"`
	High float64 `mapstructure:"high" json:"high" yaml:"high"`
}

// Contains reports whether freq falls inside the band.
func (b Band) Contains(freq float64) bool {
	return freq >= b.Low && freq <= b.High
}

// Config carries the timing grid and detection parameters. Encoder and
// decoder must run with the same grid or segmentation falls apart.
type Config struct {
	SampleRate   int           `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	ToneDuration time.Duration `mapstructure:"tone_duration" json:"tone_duration" yaml:"tone_duration"`
	GapDuration  time.Duration `mapstructure:"gap_duration" json:"gap_duration" yaml:"gap_duration"`
	FadeDuration time.Duration `mapstructure:"fade_duration" json:"fade_duration" yaml:"fade_duration"`

	// ToneAmplitude scales each sinusoid; two of them sum per segment.
	ToneAmplitude float64 `mapstructure:"tone_amplitude" json:"tone_amplitude" yaml:"tone_amplitude"`
	// PeakLevel is the post-normalization peak of the whole waveform.
	PeakLevel float64 `mapstructure:"peak_level" json:"peak_level" yaml:"peak_level"`

	// FreqTolerance is the maximum snap distance to a reference tone.
	FreqTolerance float64 `mapstructure:"freq_tolerance" json:"freq_tolerance" yaml:"freq_tolerance"`
	// SilenceFloor is the normalized magnitude below which a band is
	// considered silent.
	SilenceFloor float64 `mapstructure:"silence_floor" json:"silence_floor" yaml:"silence_floor"`

	RowBand Band `mapstructure:"row_band" json:"row_band" yaml:"row_band"`
	ColBand Band `mapstructure:"col_band" json:"col_band" yaml:"col_band"`
}

// DefaultConfig returns the reference grid: 8 kHz, 0.5 s tones, 0.1 s
// gaps, 50 ms fades, +/-15 Hz tolerance.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:    8000,
		ToneDuration:  500 * time.Millisecond,
		GapDuration:   100 * time.Millisecond,
		FadeDuration:  50 * time.Millisecond,
		ToneAmplitude: 0.3,
		PeakLevel:     0.8,
		FreqTolerance: 15,
		SilenceFloor:  0.05,
		RowBand:       Band{Low: 650, High: 1000},
		ColBand:       Band{Low: 1150, High: 1550},
	}
}

// ToneSamples returns the sample length of one tone segment.
func (c *Config) ToneSamples() int {
	return int(math.Round(c.ToneDuration.Seconds() * float64(c.SampleRate)))
}

// GapSamples returns the sample length of the inter-tone gap.
func (c *Config) GapSamples() int {
	return int(math.Round(c.GapDuration.Seconds() * float64(c.SampleRate)))
}

// FadeSamples returns the sample length of one edge fade.
func (c *Config) FadeSamples() int {
	return int(math.Round(c.FadeDuration.Seconds() * float64(c.SampleRate)))
}

// StepSamples returns the segment grid spacing: tone plus gap.
func (c *Config) StepSamples() int {
	return c.ToneSamples() + c.GapSamples()
}

// Validate checks the grid and detection parameters.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}
	if c.ToneDuration <= 0 {
		return fmt.Errorf("tone duration must be positive")
	}
	if c.GapDuration < 0 {
		return fmt.Errorf("gap duration cannot be negative")
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("fade duration cannot be negative")
	}
	if 2*c.FadeDuration > c.ToneDuration {
		return fmt.Errorf("fade duration %v cannot exceed half the tone duration %v",
			c.FadeDuration, c.ToneDuration)
	}
	if c.ToneAmplitude <= 0 || c.ToneAmplitude > 0.5 {
		return fmt.Errorf("tone amplitude must be in (0, 0.5] so the summed sinusoids stay in range")
	}
	if c.PeakLevel <= 0 || c.PeakLevel > 1 {
		return fmt.Errorf("peak level must be in (0, 1]")
	}
	if c.FreqTolerance <= 0 {
		return fmt.Errorf("frequency tolerance must be positive")
	}
	if spacing := minReferenceSpacing(); c.FreqTolerance >= spacing/2 {
		return fmt.Errorf("frequency tolerance %.1f Hz must stay below half the minimum reference spacing (%.1f Hz) or snapping becomes ambiguous",
			c.FreqTolerance, spacing)
	}
	if c.SilenceFloor <= 0 || c.SilenceFloor >= 1 {
		return fmt.Errorf("silence floor must be in (0, 1)")
	}
	if c.RowBand.Low >= c.RowBand.High {
		return fmt.Errorf("row band [%g, %g] is empty", c.RowBand.Low, c.RowBand.High)
	}
	if c.ColBand.Low >= c.ColBand.High {
		return fmt.Errorf("column band [%g, %g] is empty", c.ColBand.Low, c.ColBand.High)
	}
	for _, ref := range RowFrequencies {
		if !c.RowBand.Contains(ref) {
			return fmt.Errorf("row band [%g, %g] does not cover reference tone %g Hz",
				c.RowBand.Low, c.RowBand.High, ref)
		}
	}
	for _, ref := range ColFrequencies {
		if !c.ColBand.Contains(ref) {
			return fmt.Errorf("column band [%g, %g] does not cover reference tone %g Hz",
				c.ColBand.Low, c.ColBand.High, ref)
		}
	}
	if c.RowBand.High > c.ColBand.Low {
		return fmt.Errorf("row band and column band overlap")
	}
	if nyquist := float64(c.SampleRate) / 2; c.ColBand.High >= nyquist {
		return fmt.Errorf("column band extends past the Nyquist frequency %g Hz", nyquist)
	}
	return nil
}

func minReferenceSpacing() float64 {
	spacing := math.Inf(1)
	for _, refs := range [][]float64{RowFrequencies[:], ColFrequencies[:]} {
		for i := 1; i < len(refs); i++ {
			if d := refs[i] - refs[i-1]; d < spacing {
				spacing = d
			}
		}
	}
	return spacing
}
