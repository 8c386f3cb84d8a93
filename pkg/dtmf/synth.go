package dtmf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// Synthesizer renders digit sequences as dual-tone PCM audio.
type Synthesizer struct {
	config *Config
	logger logging.Logger
}

// NewSynthesizer creates a synthesizer with the given configuration.
// A nil config uses defaults; a nil logger uses the default logger.
func NewSynthesizer(config *Config, logger logging.Logger) (*Synthesizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid synthesizer config: %w", err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Synthesizer{
		config: config,
		logger: logger.WithFields(logging.Fields{
			"component": "dtmf_synthesizer",
		}),
	}, nil
}

// Synthesize renders the digit sequence on the timing grid: one tone
// window per digit with a silent gap between consecutive tones and no
// trailing gap. The whole signal is normalized to the configured peak.
// An empty sequence yields zero-length audio.
func (s *Synthesizer) Synthesize(digits keypad.Sequence) (*audio.Data, error) {
	toneSamples := s.config.ToneSamples()
	gapSamples := s.config.GapSamples()
	fadeSamples := s.config.FadeSamples()

	var pcm []float64
	if n := len(digits); n > 0 {
		pcm = make([]float64, 0, n*toneSamples+(n-1)*gapSamples)
	}

	for i, d := range digits {
		pair, ok := PairForDigit(d)
		if !ok {
			return nil, fmt.Errorf("cannot synthesize digit %q at position %d: no frequency pair", d, i)
		}
		if i > 0 {
			pcm = append(pcm, make([]float64, gapSamples)...)
		}
		pcm = append(pcm, s.tone(pair, toneSamples, fadeSamples)...)
	}

	s.normalize(pcm)

	s.logger.Debug("synthesized digit sequence", logging.Fields{
		"digits":       digits.String(),
		"samples":      len(pcm),
		"tone_samples": toneSamples,
		"gap_samples":  gapSamples,
	})

	return &audio.Data{
		PCM:        pcm,
		SampleRate: s.config.SampleRate,
		Channels:   1,
		BitDepth:   16,
	}, nil
}

// tone renders one dual-tone window with fade ramps at both ends.
func (s *Synthesizer) tone(pair Pair, toneSamples, fadeSamples int) []float64 {
	rate := float64(s.config.SampleRate)
	amp := s.config.ToneAmplitude

	window := make([]float64, toneSamples)
	for n := range window {
		t := float64(n) / rate
		window[n] = amp*math.Sin(2*math.Pi*pair.Row*t) + amp*math.Sin(2*math.Pi*pair.Col*t)
	}
	applyFades(window, fadeSamples)
	return window
}

// applyFades multiplies the first fade samples by a linear 0..1 ramp and
// the last fade samples by the mirrored ramp. The ramp endpoints are
// exactly 0 and 1.
func applyFades(window []float64, fade int) {
	if fade <= 1 || len(window) < 2*fade {
		return
	}
	for k := 0; k < fade; k++ {
		ramp := float64(k) / float64(fade-1)
		window[k] *= ramp
		window[len(window)-1-k] *= ramp
	}
}

// normalize scales the signal in place so its peak magnitude equals the
// configured peak level. Empty and all-zero signals pass through.
func (s *Synthesizer) normalize(pcm []float64) {
	if len(pcm) == 0 {
		return
	}
	peak := floats.Norm(pcm, math.Inf(1))
	if peak == 0 {
		return
	}
	floats.Scale(s.config.PeakLevel/peak, pcm)
}
