package debug

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/justyntemme/polysynth/pkg/dsp/gain"
)

// AudioAnalyzer computes level statistics over a sample buffer.
type AudioAnalyzer struct {
	ClippingThreshold float32
	SilenceThreshold  float32
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		SilenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	HasNaN         bool
	NaNCount       int
	InfCount       int
}

// Analyze measures a buffer. NaN and infinite samples are counted and left
// out of the level figures.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	result := AnalysisResult{}

	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	counted := 0

	for _, sample := range buffer {
		s := float64(sample)
		if math.IsNaN(s) {
			result.HasNaN = true
			result.NaNCount++
			continue
		}
		if math.IsInf(s, 0) {
			result.InfCount++
			continue
		}

		abs := float32(math.Abs(s))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.ClippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		sum += s
		sumSquares += s * s
		counted++
	}

	if counted > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(counted)))
		result.DC = float32(sum / float64(counted))
	}
	result.Silent = result.RMS < a.SilenceThreshold

	return result
}

// CheckBuffer performs basic sanity checks on an audio buffer and returns a
// description of every problem found.
func CheckBuffer(buffer []float32, name string) []string {
	var issues []string

	result := NewAudioAnalyzer().Analyze(buffer)

	if result.HasNaN {
		issues = append(issues, fmt.Sprintf("%s: Contains %d NaN values", name, result.NaNCount))
	}
	if result.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: Contains %d infinite values", name, result.InfCount))
	}
	if result.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: Peak exceeds 1.0 (%.3f)", name, result.Peak))
	}

	return issues
}

// PeakMeter tracks the loudest sample seen since it was last read. Observe is
// called from the audio thread; Take from a display goroutine.
type PeakMeter struct {
	peak atomic.Uint32 // math.Float32bits
}

// Observe folds a block into the held peak without blocking.
func (m *PeakMeter) Observe(buffer []float32) {
	var local float32
	for _, s := range buffer {
		if s < 0 {
			s = -s
		}
		if s > local {
			local = s
		}
	}

	for {
		old := m.peak.Load()
		if math.Float32frombits(old) >= local {
			return
		}
		if m.peak.CompareAndSwap(old, math.Float32bits(local)) {
			return
		}
	}
}

// Take returns the held peak and resets it.
func (m *PeakMeter) Take() float32 {
	return math.Float32frombits(m.peak.Swap(0))
}

// MeterLine renders a peak level as a fixed-width bar with its dBFS value.
func MeterLine(peak float32, width int) string {
	if width <= 0 {
		width = 40
	}

	db := gain.LinearToDb(float64(peak))

	// -60 dBFS maps to an empty bar
	fill := 0
	if db > -60 {
		fill = int(math.Round((db + 60) / 60 * float64(width)))
	}
	fill = min(fill, width)

	label := "  -inf dB"
	if db > gain.MinDB {
		label = fmt.Sprintf("%6.1f dB", db)
	}

	return "[" + strings.Repeat("#", fill) + strings.Repeat(" ", width-fill) + "] " + label
}
