package dtmf

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

// SpectrumAnalyzer computes one-sided magnitude spectra for tone windows.
type SpectrumAnalyzer struct {
	sampleRate int
	logger     logging.Logger
}

// NewSpectrumAnalyzer creates an analyzer for the given sample rate.
func NewSpectrumAnalyzer(sampleRate int) *SpectrumAnalyzer {
	return &SpectrumAnalyzer{
		sampleRate: sampleRate,
		logger: logging.WithFields(logging.Fields{
			"component":   "spectrum_analyzer",
			"sample_rate": sampleRate,
		}),
	}
}

// Spectrum is the one-sided magnitude spectrum of one window.
type Spectrum struct {
	// Magnitudes holds 2*|X[k]|/N per bin, N the window length.
	Magnitudes []float64
	// Resolution is the bin spacing in Hz.
	Resolution float64
}

// Analyze computes the normalized magnitude spectrum of a window via a
// full-window real FFT.
func (sa *SpectrumAnalyzer) Analyze(samples []float64) *Spectrum {
	n := len(samples)
	if n == 0 {
		return &Spectrum{}
	}

	spectrum := fft.FFTReal(samples)
	half := n/2 + 1
	magnitudes := make([]float64, half)
	for k := range magnitudes {
		magnitudes[k] = 2 * cmplx.Abs(spectrum[k]) / float64(n)
	}

	resolution := float64(sa.sampleRate) / float64(n)
	sa.logger.Debug("computed magnitude spectrum", logging.Fields{
		"window_samples": n,
		"resolution_hz":  resolution,
	})

	return &Spectrum{Magnitudes: magnitudes, Resolution: resolution}
}

// PeakInBand returns the frequency and magnitude of the strongest bin
// inside the band. The frequency is the bin center, so callers snap it to
// a reference tone by distance, never by equality.
func (s *Spectrum) PeakInBand(band Band) (freq, magnitude float64) {
	if s.Resolution <= 0 || len(s.Magnitudes) == 0 {
		return 0, 0
	}

	lo := int(math.Ceil(band.Low / s.Resolution))
	hi := int(math.Floor(band.High / s.Resolution))
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.Magnitudes)-1 {
		hi = len(s.Magnitudes) - 1
	}
	if hi < lo {
		return 0, 0
	}

	idx := lo + floats.MaxIdx(s.Magnitudes[lo:hi+1])
	return float64(idx) * s.Resolution, s.Magnitudes[idx]
}
