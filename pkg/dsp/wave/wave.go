// Package wave provides the stateless waveform generators behind the
// instrument's oscillators.
//
// Every generator is a pure function of time, MIDI pitch and pitch bend and
// returns an amplitude in [-1, 1]. Noise is the exception: it ignores its
// arguments and is not reproducible between calls.
package wave

import (
	"math"
	"math/rand/v2"

	"github.com/justyntemme/polysynth/pkg/dsp"
)

// Cent is the frequency ratio of one cent (2^(1/1200)), truncated to the
// precision the instrument has always used.
const Cent = 1.00057778951

const (
	// MinPitchBend and MaxPitchBend bound the signed 14-bit pitch bend range.
	MinPitchBend = -8192
	MaxPitchBend = 8191

	bendRange     = 8192.0
	centsPerRange = 1200.0
)

// Cents returns the whole number of cents a pitch bend resolves to. The
// result is rounded so that identical bends always give identical pitches.
func Cents(pitchBend int16) int {
	return int(math.Round(float64(pitchBend) / bendRange * centsPerRange))
}

// PitchToFrequency converts a MIDI pitch plus pitch bend to Hz. Pitch 69 with
// no bend is exactly 440 Hz.
func PitchToFrequency(pitch uint8, pitchBend int16) float64 {
	ratio := 1.0
	switch {
	case pitchBend < 0:
		ratio = 1.0 / math.Pow(Cent, float64(-Cents(pitchBend)))
	case pitchBend > 0:
		ratio = math.Pow(Cent, float64(Cents(pitchBend)))
	}
	return math.Exp2((float64(pitch)-dsp.A4Note)/12.0) * dsp.A4Frequency * ratio
}

// Sine returns sin(2πft).
func Sine(t float64, pitch uint8, pitchBend int16) float32 {
	return float32(math.Sin(t * PitchToFrequency(pitch, pitchBend) * dsp.TwoPi))
}

// Square is +1 while the sine is non-negative and -1 otherwise.
func Square(t float64, pitch uint8, pitchBend int16) float32 {
	if Sine(t, pitch, pitchBend) >= 0 {
		return 1.0
	}
	return -1.0
}

// Saw ramps linearly from -1 to +1 over one period.
func Saw(t float64, pitch uint8, pitchBend int16) float32 {
	period := 1.0 / PitchToFrequency(pitch, pitchBend)
	return float32(math.Mod(t, period)/period*2.0 - 1.0)
}

// ReversedSaw ramps from +1 down to -1.
func ReversedSaw(t float64, pitch uint8, pitchBend int16) float32 {
	return -Saw(t, pitch, pitchBend)
}

// Triangle folds the saw: 2|saw| - 1.
func Triangle(t float64, pitch uint8, pitchBend int16) float32 {
	s := Saw(t, pitch, pitchBend)
	if s < 0 {
		s = -s
	}
	return 2.0*s - 1.0
}

// RoundedSine quantizes the sine to -1, 0 or +1.
func RoundedSine(t float64, pitch uint8, pitchBend int16) float32 {
	return float32(math.Round(float64(Sine(t, pitch, pitchBend))))
}

// Noise returns uniform white noise in [-1, 1). It is the only generator
// whose output cannot be reproduced.
func Noise() float32 {
	return rand.Float32()*2.0 - 1.0
}
