// Package process provides the block buffers an instrument renders into.
package process

import (
	"github.com/justyntemme/polysynth/pkg/dsp"
)

// Context carries one render block: channel-major output buffers sized to
// the block plus scratch space. Buffers are allocated once for the largest
// block and resliced, so per-block use never allocates.
type Context struct {
	Output     [][]float32
	SampleRate float64

	storage    [][]float32
	workBuffer []float32
}

// NewContext creates a context for up to maxBlockSize frames
func NewContext(maxBlockSize, channels int, sampleRate float64) *Context {
	c := &Context{
		SampleRate: sampleRate,
		storage:    make([][]float32, channels),
		Output:     make([][]float32, channels),
		workBuffer: make([]float32, maxBlockSize),
	}
	for ch := range c.storage {
		c.storage[ch] = make([]float32, maxBlockSize)
		c.Output[ch] = c.storage[ch]
	}
	return c
}

// MaxBlockSize returns the largest block the context can hold
func (c *Context) MaxBlockSize() int {
	return len(c.workBuffer)
}

// Begin sizes the output buffers for a block of frames, clamped to the
// maximum block size, and returns the frame count actually used.
func (c *Context) Begin(frames int) int {
	frames = dsp.Clamp(frames, 0, len(c.workBuffer))
	for ch := range c.storage {
		c.Output[ch] = c.storage[ch][:frames]
	}
	return frames
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns a slice of the pre-allocated work buffer
// sized to the current block size - no allocation!
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:c.NumSamples()]
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		dsp.Clear(c.Output[ch])
	}
}

// Interleave writes the first two channels into dst as LRLR frames and
// returns the number of frames written. A mono context is duplicated.
func (c *Context) Interleave(dst []float32) int {
	switch len(c.Output) {
	case 0:
		return 0
	case 1:
		return dsp.Interleave(dst, c.Output[0], c.Output[0])
	default:
		return dsp.Interleave(dst, c.Output[0], c.Output[1])
	}
}
