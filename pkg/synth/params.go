package synth

import (
	"fmt"

	"github.com/justyntemme/polysynth/pkg/dsp/oscillator"
	"github.com/justyntemme/polysynth/pkg/framework/debug"
	"github.com/justyntemme/polysynth/pkg/framework/param"
)

// Parameters are laid out three per oscillator (waveform, volume, pitch
// bend) followed by pan, attack and decay. With the default bank of three:
//
//	0/3/6  Osc N          waveform
//	1/4/7  Osc N Volume   volume
//	2/5/8  Osc N Pitch    pitch bend
//	9      Pan
//	10     Attack
//	11     Decay
const (
	paramsPerOscillator = 3

	offsetWaveform = 0
	offsetVolume   = 1
	offsetPitch    = 2
)

// ParamWaveform returns the index of oscillator osc's waveform parameter.
// Volume and pitch bend follow it.
func ParamWaveform(osc int) int32 {
	return int32(osc*paramsPerOscillator + offsetWaveform)
}

// ParamVolume returns the index of oscillator osc's volume parameter
func ParamVolume(osc int) int32 {
	return int32(osc*paramsPerOscillator + offsetVolume)
}

// ParamPitchBend returns the index of oscillator osc's pitch bend parameter
func ParamPitchBend(osc int) int32 {
	return int32(osc*paramsPerOscillator + offsetPitch)
}

func waveformNames() []string {
	names := make([]string, oscillator.WaveformCount)
	for i := range names {
		names[i] = oscillator.Waveform(i).String()
	}
	return names
}

// buildParameters creates every parameter and registers it with reg. A
// parameter that cannot be registered is logged and still drives the sound;
// it is only missing from name and index lookups.
func buildParameters(reg *param.Registry, cfg Config, log *debug.Logger) (oscParams [][paramsPerOscillator]*param.Parameter, pan, attack, decay *param.Parameter) {
	names := waveformNames()
	oscParams = make([][paramsPerOscillator]*param.Parameter, cfg.Oscillators)

	for i := range oscParams {
		n := i + 1
		oscParams[i] = [paramsPerOscillator]*param.Parameter{
			offsetWaveform: param.Choice(uint32(ParamWaveform(i)), fmt.Sprintf("Osc %d", n), names).
				ShortName(fmt.Sprintf("Osc%d", n)).
				Build(),
			offsetVolume: param.Percent(uint32(ParamVolume(i)), fmt.Sprintf("Osc %d Volume", n)).
				ShortName(fmt.Sprintf("Vol%d", n)).
				Default(100).
				Build(),
			offsetPitch: param.PitchBend(uint32(ParamPitchBend(i)), fmt.Sprintf("Osc %d Pitch", n)).
				ShortName(fmt.Sprintf("Bend%d", n)).
				Build(),
		}
		if err := reg.Add(oscParams[i][:]...); err != nil {
			log.Error("registering oscillator %d parameters: %v", n, err)
		}
	}

	base := uint32(cfg.Oscillators * paramsPerOscillator)
	pan = param.Pan(base, "Pan").Default(cfg.Pan).Build()
	attack = param.Seconds(base+1, "Attack", MaxEnvelopeSeconds).Default(cfg.Attack).Build()
	decay = param.Seconds(base+2, "Decay", MaxEnvelopeSeconds).Default(cfg.Decay).Build()
	if err := reg.Add(pan, attack, decay); err != nil {
		log.Error("registering parameters: %v", err)
	}
	return
}

func (in *Instrument) parameter(index int32) *param.Parameter {
	return in.Parameters().GetByIndex(index)
}

// ParameterCount returns the number of parameters
func (in *Instrument) ParameterCount() int32 {
	return in.Parameters().Count()
}

// GetParameter returns a parameter's normalized value, or 0 for an unknown
// index.
func (in *Instrument) GetParameter(index int32) float32 {
	if p := in.parameter(index); p != nil {
		return float32(p.GetValue())
	}
	return 0
}

// SetParameter sets a parameter's normalized value. It takes effect at the
// next block. Values are clamped to 0-1; unknown indices are ignored.
func (in *Instrument) SetParameter(index int32, value float32) {
	if p := in.parameter(index); p != nil {
		p.SetValue(float64(value))
	}
}

// ParameterName returns a parameter's display name, or "" for an unknown
// index.
func (in *Instrument) ParameterName(index int32) string {
	if p := in.parameter(index); p != nil {
		return p.Name
	}
	return ""
}

// ParameterText returns a parameter's value formatted for display, or ""
// for an unknown index.
func (in *Instrument) ParameterText(index int32) string {
	if p := in.parameter(index); p != nil {
		return p.Text()
	}
	return ""
}

// ParameterIndex looks a parameter up by name
func (in *Instrument) ParameterIndex(name string) (int32, error) {
	p := in.Parameters().GetByName(name)
	if p == nil {
		return -1, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return int32(p.ID), nil
}
