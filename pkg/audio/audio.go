// Package audio moves rendered blocks out of the process: to the sound card
// through malgo or oto, or to a WAV file.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/justyntemme/polysynth/pkg/dsp"
	"github.com/justyntemme/polysynth/pkg/framework/debug"
)

// Channels is the output channel count of every backend
const Channels = dsp.Stereo

// Source renders the next len(dst)/2 frames as interleaved stereo
type Source interface {
	RenderInterleaved(dst []float32)
}

// Backend names a device output
type Backend string

const (
	BackendMalgo Backend = "malgo"
	BackendOto   Backend = "oto"
)

// ParseBackend accepts a backend name in any case
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMalgo, BackendOto:
		return b, nil
	default:
		return "", fmt.Errorf("unknown audio backend %q", s)
	}
}

// maxPeriodFrames is the largest device period rendered without allocating
// on the audio callback.
const maxPeriodFrames = 8192

// Options configures a device backend. Zero fields take defaults.
type Options struct {
	SampleRate  int
	BlockFrames int // requested device period; the device may pick another

	Logger   *debug.Logger
	Meter    *debug.PeakMeter      // observes every rendered block
	Profiler *debug.RenderProfiler // times every rendered block
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = int(dsp.SampleRate44k1)
	}
	if o.BlockFrames <= 0 {
		o.BlockFrames = dsp.DefaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = debug.Default().Named("audio")
	}
	return o
}

// renderer wraps a source with the metering and profiling hooks and owns the
// float scratch buffer the backends convert from.
type renderer struct {
	src      Source
	meter    *debug.PeakMeter
	profiler *debug.RenderProfiler
	buf      []float32
}

func newRenderer(src Source, opts Options) *renderer {
	return &renderer{
		src:      src,
		meter:    opts.Meter,
		profiler: opts.Profiler,
		buf:      make([]float32, max(opts.BlockFrames, maxPeriodFrames)*Channels),
	}
}

// render fills out with frames of float32 little-endian interleaved audio
func (r *renderer) render(out []byte, frames int) {
	n := frames * Channels
	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]

	if r.profiler != nil {
		done := r.profiler.Start(frames)
		r.src.RenderInterleaved(samples)
		done()
	} else {
		r.src.RenderInterleaved(samples)
	}
	if r.meter != nil {
		r.meter.Observe(samples)
	}

	encodeFloat32LE(out, samples)
}

// encodeFloat32LE writes samples into dst, four bytes each, and returns the
// number of bytes written.
func encodeFloat32LE(dst []byte, samples []float32) int {
	n := min(len(dst)/4, len(samples))
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(samples[i]))
	}
	return 4 * n
}
