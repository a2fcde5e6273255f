// Package oscillator provides audio oscillators for synthesis
package oscillator

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/polysynth/pkg/dsp"
	"github.com/justyntemme/polysynth/pkg/dsp/wave"
)

// Waveform selects the generator an oscillator renders with
type Waveform uint8

const (
	Sine Waveform = iota
	Saw
	ReversedSaw
	Square
	Triangle
	RoundedSine
	Noise

	// WaveformCount is the number of selectable waveforms
	WaveformCount = int(Noise) + 1
)

var waveformNames = [WaveformCount]string{
	Sine:        "Sine",
	Saw:         "Saw",
	ReversedSaw: "Reversed Saw",
	Square:      "Square",
	Triangle:    "Triangle",
	RoundedSine: "Sine Rounded",
	Noise:       "Noise",
}

// String returns the display name. Unknown values report as Sine, which is
// also what they render as.
func (w Waveform) String() string {
	return waveformNames[w.valid()]
}

func (w Waveform) valid() Waveform {
	if int(w) >= WaveformCount {
		return Sine
	}
	return w
}

// WaveformFromNormalized maps a 0-1 host value onto a waveform with
// floor(v*count). Exactly 1.0 selects the last waveform; anything else outside
// 0-1, NaN included, selects Sine.
func WaveformFromNormalized(v float64) Waveform {
	if v == 1 {
		return Waveform(WaveformCount - 1)
	}
	if !(v >= 0 && v < 1) {
		return Sine
	}
	return Waveform(math.Floor(v * float64(WaveformCount)))
}

// Normalized is the inverse of WaveformFromNormalized: index/count.
func (w Waveform) Normalized() float64 {
	return float64(w.valid()) / float64(WaveformCount)
}

// Func is the common signature of the waveform generators
type Func func(t float64, pitch uint8, pitchBend int16) float32

func noise(float64, uint8, int16) float32 { return wave.Noise() }

var generators = [WaveformCount]Func{
	Sine:        wave.Sine,
	Saw:         wave.Saw,
	ReversedSaw: wave.ReversedSaw,
	Square:      wave.Square,
	Triangle:    wave.Triangle,
	RoundedSine: wave.RoundedSine,
	Noise:       noise,
}

// Generator returns the function that renders w
func (w Waveform) Generator() Func {
	return generators[w.valid()]
}

// Oscillator renders one waveform at a note's pitch, offset by its own pitch
// bend. It holds no phase: output depends only on the time passed in.
type Oscillator struct {
	waveform  Waveform
	volume    float32
	pitchBend int16
}

// New creates an oscillator with the default settings: Sine, full volume,
// no bend.
func New() Oscillator {
	return Oscillator{waveform: Sine, volume: 1.0}
}

// SetWaveform selects the waveform from a normalized (0-1) value
func (o *Oscillator) SetWaveform(normalized float64) {
	o.waveform = WaveformFromNormalized(normalized)
}

// Waveform returns the selected waveform
func (o Oscillator) Waveform() Waveform {
	return o.waveform
}

// SetVolume stores the volume as given
func (o *Oscillator) SetVolume(v float32) {
	o.volume = v
}

// Volume returns the oscillator volume
func (o Oscillator) Volume() float32 {
	return o.volume
}

// SetPitchBend stores a raw bend, clamped to the 14-bit range
func (o *Oscillator) SetPitchBend(raw int) {
	o.pitchBend = int16(dsp.Clamp(raw, wave.MinPitchBend, wave.MaxPitchBend))
}

// SetPitchBendNormalized maps 0-1 onto the bend range: round(v*16384)-8192.
func (o *Oscillator) SetPitchBendNormalized(v float64) {
	o.SetPitchBend(PitchBendFromNormalized(v))
}

// PitchBend returns the raw bend
func (o Oscillator) PitchBend() int16 {
	return o.pitchBend
}

// PitchBendFromNormalized converts a host value to a raw bend
func PitchBendFromNormalized(v float64) int {
	v = dsp.Clamp(v, 0, 1)
	return dsp.Clamp(int(math.Round(v*16384))-8192, wave.MinPitchBend, wave.MaxPitchBend)
}

// PitchBendNormalized converts a raw bend back to a host value
func PitchBendNormalized(raw int16) float64 {
	return float64(int(raw)+8192) / 16384.0
}

// NormalizedWaveform returns the waveform as a 0-1 host value
func (o Oscillator) NormalizedWaveform() float64 {
	return o.waveform.Normalized()
}

// NormalizedPitchBend returns the bend as a 0-1 host value
func (o Oscillator) NormalizedPitchBend() float64 {
	return PitchBendNormalized(o.pitchBend)
}

// Render returns the oscillator output for a note at time t. Note velocity
// and the oscillator volume are applied by the caller.
func (o Oscillator) Render(t float64, pitch uint8) float32 {
	return generators[o.waveform.valid()](t, pitch, o.pitchBend)
}

// String implements fmt.Stringer
func (o Oscillator) String() string {
	return fmt.Sprintf("Oscillator{%v, vol:%.2f, bend:%d}", o.waveform, o.volume, o.pitchBend)
}

// ErrIndexOutOfRange is returned by Bank.At for an index outside the bank
var ErrIndexOutOfRange = errors.New("oscillator index out of range")

// Bank is a fixed-size set of oscillators created up front
type Bank struct {
	oscs []Oscillator
}

// NewBank creates n default oscillators. n below 1 is raised to 1.
func NewBank(n int) *Bank {
	if n < 1 {
		n = 1
	}
	b := &Bank{oscs: make([]Oscillator, n)}
	for i := range b.oscs {
		b.oscs[i] = New()
	}
	return b
}

// Len returns the number of oscillators
func (b *Bank) Len() int {
	return len(b.oscs)
}

// At returns mutable access to oscillator i
func (b *Bank) At(i int) (*Oscillator, error) {
	if i < 0 || i >= len(b.oscs) {
		return nil, fmt.Errorf("%w: %d (bank has %d)", ErrIndexOutOfRange, i, len(b.oscs))
	}
	return &b.oscs[i], nil
}

// Get returns a copy of oscillator i, or a default oscillator when i is out
// of range.
func (b *Bank) Get(i int) Oscillator {
	if i < 0 || i >= len(b.oscs) {
		return New()
	}
	return b.oscs[i]
}

// All returns the oscillators in bank order. Callers must not retain the
// slice across a render call.
func (b *Bank) All() []Oscillator {
	return b.oscs
}
