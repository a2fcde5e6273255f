// Package synth is the polyphonic instrument: it turns note events and
// parameter changes into a stereo signal, one block at a time.
package synth

import (
	"errors"
	"math"
	"sync/atomic"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/polysynth/pkg/dsp/envelope"
	"github.com/justyntemme/polysynth/pkg/dsp/oscillator"
	"github.com/justyntemme/polysynth/pkg/dsp/pan"
	"github.com/justyntemme/polysynth/pkg/framework/debug"
	"github.com/justyntemme/polysynth/pkg/framework/param"
	"github.com/justyntemme/polysynth/pkg/framework/plugin"
	"github.com/justyntemme/polysynth/pkg/framework/process"
	"github.com/justyntemme/polysynth/pkg/framework/voice"
	"github.com/justyntemme/polysynth/pkg/midi"
)

// State is whether any note is held
type State int32

const (
	Silent State = iota
	Sounding
)

func (s State) String() string {
	if s == Sounding {
		return "sounding"
	}
	return "silent"
}

// ErrUnknownParameter is returned when a parameter name does not exist
var ErrUnknownParameter = errors.New("unknown parameter")

// Instrument mixes every oscillator of its bank over every held note.
//
// Two goroutines may use it at once: a control goroutine calling the
// Handle* and SetParameter methods, and an audio goroutine calling the
// render methods. Neither blocks the other. Several control goroutines must
// serialize among themselves, as must several renderers.
type Instrument struct {
	*plugin.Base

	log    *debug.Logger
	events *midi.Ring

	oscParams [][paramsPerOscillator]*param.Parameter
	panParam  *param.Parameter
	attack    *param.Parameter
	decay     *param.Parameter

	sampleRate atomic.Uint64 // math.Float64bits
	panLaw     pan.Law

	// Owned by the audio goroutine
	notes   *voice.Registry
	bank    *oscillator.Bank
	shaper  envelope.Shaper
	gains   [2]float32 // left, right
	elapsed float64
	state   State

	// Published at the end of every block for other goroutines
	pubState   atomic.Int32
	pubElapsed atomic.Uint64
	pubNotes   atomic.Int32
	pubStage   atomic.Int32
}

// New creates an instrument. Zero config fields take their defaults.
func New(cfg Config) *Instrument {
	cfg = cfg.withDefaults()

	in := &Instrument{
		Base: plugin.NewBase(plugin.Info{
			ID:       "com.justyntemme.polysynth",
			Name:     "polysynth",
			Version:  "1.0.0",
			Vendor:   "justyntemme",
			Category: "Instrument|Synth",
			Outputs:  2,
		}),
		log:    cfg.Logger,
		events: midi.NewRing(cfg.RingSize),
		notes:  voice.NewRegistry(),
		bank:   oscillator.NewBank(cfg.Oscillators),
		panLaw: cfg.PanLaw,
	}
	in.sampleRate.Store(math.Float64bits(cfg.SampleRate))

	in.oscParams, in.panParam, in.attack, in.decay = buildParameters(in.Parameters(), cfg, in.log)
	in.applyParameters()

	in.log.Debug("created %d oscillators, %d parameters at %.0f Hz",
		cfg.Oscillators, in.ParameterCount(), cfg.SampleRate)
	return in
}

// SetSampleRate changes the output rate. Non-positive rates are ignored.
func (in *Instrument) SetSampleRate(hz float64) {
	if !(hz > 0) || math.IsInf(hz, 0) {
		in.log.Warn("ignoring invalid sample rate %v", hz)
		return
	}
	in.sampleRate.Store(math.Float64bits(hz))
	in.log.Info("sample rate set to %.0f Hz", hz)
}

// SampleRate returns the output rate in Hz
func (in *Instrument) SampleRate() float64 {
	return math.Float64frombits(in.sampleRate.Load())
}

// HandleMIDIEvent queues a raw message for the next block. Only status 0x90
// (note on) and 0x80 (note off) are understood; every other status byte is
// ignored. A note on with zero velocity adds a silent note.
func (in *Instrument) HandleMIDIEvent(status, data1, data2 byte) {
	if e, ok := midi.Parse(status, data1, data2); ok {
		in.events.Push(e)
	}
}

// HandleMessage queues a message from a live input port for the next block.
// Unlike HandleMIDIEvent it accepts notes on every channel and releases on a
// zero velocity note on.
func (in *Instrument) HandleMessage(msg gomidi.Message) {
	if e, ok := midi.Decode(msg); ok {
		in.events.Push(e)
	}
}

// HandleEvent queues an event for the next block
func (in *Instrument) HandleEvent(e midi.Event) {
	in.events.Push(e)
}

// Dropped returns the number of events lost because too many arrived
// between two blocks.
func (in *Instrument) Dropped() uint64 {
	return in.events.Dropped()
}

// ProcessEvent applies one event to the note registry. It runs on the audio
// goroutine while the queue is drained.
func (in *Instrument) ProcessEvent(e midi.Event) {
	in.notes.ProcessEvent(e)

	switch {
	case in.state == Silent && !in.notes.IsEmpty():
		in.state = Sounding
		in.elapsed = 0
	case in.state == Sounding && in.notes.IsEmpty():
		in.state = Silent
	}
}

// applyParameters copies the current parameter values into the bank and
// the envelope.
func (in *Instrument) applyParameters() {
	for i, ps := range in.oscParams {
		o, err := in.bank.At(i)
		if err != nil {
			continue
		}
		o.SetWaveform(ps[offsetWaveform].GetValue())
		o.SetVolume(float32(ps[offsetVolume].GetValue()))
		o.SetPitchBendNormalized(ps[offsetPitch].GetValue())
	}
	in.gains[0], in.gains[1] = pan.Gains(pan.FromNormalized(in.panParam.GetValue()), in.panLaw)
	in.shaper.SetAttack(in.attack.GetPlainValue())
	in.shaper.SetDecay(in.decay.GetPlainValue())
}

// begin runs at the top of every block and returns the time step.
func (in *Instrument) begin() float64 {
	in.events.ProcessEvents(in)
	in.applyParameters()
	if in.notes.IsEmpty() {
		in.elapsed = 0
	}
	return 1 / in.SampleRate()
}

// end advances time past a block of frames and publishes state.
func (in *Instrument) end(frames int, step float64) {
	in.elapsed += float64(frames) * step

	in.pubState.Store(int32(in.state))
	in.pubElapsed.Store(math.Float64bits(in.elapsed))
	in.pubNotes.Store(int32(in.notes.Len()))
	in.pubStage.Store(int32(in.shaper.Stage(in.elapsed)))
}

// mix sums every oscillator over every note at time t. The oscillator count
// and velocity scales are applied after each addition, so they compound.
func (in *Instrument) mix(t float64) float32 {
	oscs := in.bank.All()
	notes := in.notes.Notes()
	norm := 1 / float32(len(oscs))

	var raw float32
	for i := range oscs {
		o := &oscs[i]
		for _, n := range notes {
			raw += o.Render(t, n.Pitch) * o.Volume()
			raw *= norm
			raw *= n.Gain()
		}
	}
	return raw
}

// frame renders both channels at time t
func (in *Instrument) frame(t float64) (left, right float32) {
	mono := in.mix(t)
	left = in.shaper.Apply(t, mono*in.gains[0])
	right = in.shaper.Apply(t, mono*in.gains[1])
	return left, right
}

// RenderBlock overwrites the first frames entries of out with the next
// block. frames is limited to len(out).
func (in *Instrument) RenderBlock(frames int, out [][2]float32) {
	frames = min(max(frames, 0), len(out))
	step := in.begin()

	t := in.elapsed
	for i := 0; i < frames; i++ {
		out[i][0], out[i][1] = in.frame(t)
		t += step
	}

	in.end(frames, step)
}

// Process renders one block into separate channel buffers. The block length
// is the shorter of the two.
func (in *Instrument) Process(left, right []float32) {
	frames := min(len(left), len(right))
	step := in.begin()

	t := in.elapsed
	for i := 0; i < frames; i++ {
		left[i], right[i] = in.frame(t)
		t += step
	}

	in.end(frames, step)
}

// RenderInterleaved renders len(dst)/2 frames as LRLR pairs, the layout
// audio devices expect.
func (in *Instrument) RenderInterleaved(dst []float32) {
	frames := len(dst) / 2
	step := in.begin()

	t := in.elapsed
	for i := 0; i < frames; i++ {
		dst[2*i], dst[2*i+1] = in.frame(t)
		t += step
	}

	in.end(frames, step)
}

// ProcessAudio renders into a process context. Channels beyond the first two
// are cleared; a mono context receives the left channel.
func (in *Instrument) ProcessAudio(ctx *process.Context) {
	switch ctx.NumOutputChannels() {
	case 0:
		return
	case 1:
		in.Process(ctx.Output[0], ctx.WorkBuffer())
	default:
		in.Process(ctx.Output[0], ctx.Output[1])
		for ch := 2; ch < ctx.NumOutputChannels(); ch++ {
			clear(ctx.Output[ch])
		}
	}
}

// State returns the state as of the last rendered block
func (in *Instrument) State() State {
	return State(in.pubState.Load())
}

// Elapsed returns the time in seconds since the current notes started, as of
// the last rendered block.
func (in *Instrument) Elapsed() float64 {
	return math.Float64frombits(in.pubElapsed.Load())
}

// EnvelopeStage returns the envelope segment the next block starts in, as of
// the last rendered block.
func (in *Instrument) EnvelopeStage() envelope.Stage {
	return envelope.Stage(in.pubStage.Load())
}

// ActiveNotes returns how many notes were held during the last block
func (in *Instrument) ActiveNotes() int {
	return int(in.pubNotes.Load())
}

// Oscillator returns a copy of oscillator i as of the last rendered block.
// Call it from the rendering goroutine or while no block is being rendered.
func (in *Instrument) Oscillator(i int) (oscillator.Oscillator, error) {
	o, err := in.bank.At(i)
	if err != nil {
		return oscillator.Oscillator{}, err
	}
	return *o, nil
}

// Oscillators returns the bank size
func (in *Instrument) Oscillators() int {
	return in.bank.Len()
}
