// Package dsp provides digital signal processing utilities and algorithms.
package dsp

import "golang.org/x/exp/constraints"

// Common audio constants used throughout the DSP packages and the instrument.
const (
	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0

	// Buffer sizes
	MinBufferSize     = 32
	DefaultBufferSize = 512
	MaxBufferSize     = 8192

	// Phase constants
	TwoPi = 6.283185307179586
	Pi    = 3.141592653589793

	// Tuning
	A4Note      = 69
	A4Frequency = 440.0

	// Small values for comparisons
	Epsilon = 1e-6
)

// Clamp limits v to the closed range [lo, hi]. NaN returns lo.
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
