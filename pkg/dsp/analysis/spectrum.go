package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Window selects the window applied before the transform
type Window int

const (
	Rectangular Window = iota
	Hann
	Hamming
	Blackman
)

func (w Window) String() string {
	switch w {
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	case Blackman:
		return "blackman"
	default:
		return "rectangular"
	}
}

func (w Window) apply(x []float64) {
	switch w {
	case Hann:
		window.Apply(x, window.Hann)
	case Hamming:
		window.Apply(x, window.Hamming)
	case Blackman:
		window.Apply(x, window.Blackman)
	}
}

// Spectrum is the magnitude of the positive-frequency bins of one transform.
type Spectrum struct {
	SampleRate float64
	Size       int       // samples transformed
	Magnitude  []float64 // Size/2+1 bins, scaled so a full-scale sine reads ~1
}

// Analyze transforms samples after windowing a copy of them.
func Analyze(samples []float64, sampleRate float64, w Window) Spectrum {
	s := Spectrum{SampleRate: sampleRate, Size: len(samples)}
	if len(samples) == 0 {
		return s
	}

	x := make([]float64, len(samples))
	copy(x, samples)
	w.apply(x)

	bins := fft.FFTReal(x)
	s.Magnitude = make([]float64, len(samples)/2+1)
	scale := 2.0 / float64(len(samples))
	for i := range s.Magnitude {
		s.Magnitude[i] = cmplx.Abs(bins[i]) * scale
	}
	return s
}

// AnalyzeChannel transforms one channel of an interleaved buffer.
func AnalyzeChannel(interleaved []float32, channels, ch int, sampleRate float64, w Window) Spectrum {
	if channels < 1 || ch < 0 || ch >= channels {
		return Spectrum{SampleRate: sampleRate}
	}
	samples := make([]float64, len(interleaved)/channels)
	for i := range samples {
		samples[i] = float64(interleaved[i*channels+ch])
	}
	return Analyze(samples, sampleRate, w)
}

// FrequencyForBin returns the center frequency of a bin
func (s Spectrum) FrequencyForBin(bin int) float64 {
	if s.Size == 0 {
		return 0
	}
	return float64(bin) * s.SampleRate / float64(s.Size)
}

// BinForFrequency returns the bin nearest to freq
func (s Spectrum) BinForFrequency(freq float64) int {
	if s.SampleRate <= 0 {
		return 0
	}
	bin := int(math.Round(freq * float64(s.Size) / s.SampleRate))
	return max(0, min(bin, len(s.Magnitude)-1))
}

// PeakFrequency returns the loudest bin above DC
func (s Spectrum) PeakFrequency() (freq, magnitude float64) {
	peak := 0
	for i := 1; i < len(s.Magnitude); i++ {
		if s.Magnitude[i] > magnitude {
			peak, magnitude = i, s.Magnitude[i]
		}
	}
	return s.FrequencyForBin(peak), magnitude
}

// MagnitudeDB returns the magnitudes in dB, floored at -120.
func (s Spectrum) MagnitudeDB() []float64 {
	db := make([]float64, len(s.Magnitude))
	for i, m := range s.Magnitude {
		if m > 1e-6 {
			db[i] = 20 * math.Log10(m)
		} else {
			db[i] = -120
		}
	}
	return db
}

// BandEnergy sums the squared magnitudes between two frequencies
func (s Spectrum) BandEnergy(lo, hi float64) float64 {
	if len(s.Magnitude) == 0 {
		return 0
	}
	energy := 0.0
	for i := s.BinForFrequency(lo); i <= s.BinForFrequency(hi); i++ {
		energy += s.Magnitude[i] * s.Magnitude[i]
	}
	return energy
}
