package synth

import (
	"github.com/justyntemme/polysynth/pkg/dsp"
	"github.com/justyntemme/polysynth/pkg/dsp/pan"
	"github.com/justyntemme/polysynth/pkg/framework/debug"
	"github.com/justyntemme/polysynth/pkg/midi"
)

// MaxEnvelopeSeconds is the duration a normalized attack or decay of 1.0
// maps to.
const MaxEnvelopeSeconds = 10.0

// DefaultOscillators is the size of the oscillator bank
const DefaultOscillators = 3

// Config holds construction-time settings. Zero fields take the defaults.
type Config struct {
	SampleRate  float64 // Hz
	Oscillators int     // bank size
	RingSize    int     // pending MIDI events between blocks

	// Initial parameter values in their own units
	Pan    float64 // -1 (left) .. 1 (right)
	Attack float64 // seconds, 0..MaxEnvelopeSeconds
	Decay  float64 // seconds, 0..MaxEnvelopeSeconds

	// How the pan parameter splits the signal. The zero value is the
	// balance law.
	PanLaw pan.Law

	Logger *debug.Logger
}

// DefaultConfig returns the settings of a freshly loaded instrument
func DefaultConfig() Config {
	return Config{
		SampleRate:  dsp.SampleRate44k1,
		Oscillators: DefaultOscillators,
		RingSize:    midi.DefaultRingSize,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if !(c.SampleRate > 0) {
		c.SampleRate = d.SampleRate
	}
	if c.Oscillators < 1 {
		c.Oscillators = d.Oscillators
	}
	if c.RingSize < 1 {
		c.RingSize = d.RingSize
	}
	c.Pan = dsp.Clamp(c.Pan, -1, 1)
	c.Attack = dsp.Clamp(c.Attack, 0, MaxEnvelopeSeconds)
	c.Decay = dsp.Clamp(c.Decay, 0, MaxEnvelopeSeconds)
	if c.Logger == nil {
		c.Logger = debug.Default().Named("synth")
	}
	return c
}
