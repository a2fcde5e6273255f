package debug

import (
	"fmt"
	"sync/atomic"
	"time"
)

// RenderProfiler measures how long block rendering takes relative to the
// real time the block represents. All counters are atomic so the audio
// thread can record while another goroutine reports.
type RenderProfiler struct {
	sampleRate atomic.Uint64 // whole Hz
	count      atomic.Uint64
	frames     atomic.Uint64
	totalNanos atomic.Int64
	maxNanos   atomic.Int64
	lastLoad   atomic.Uint64 // load in hundredths of a percent
}

// NewRenderProfiler creates a profiler for the given sample rate.
func NewRenderProfiler(sampleRate float64) *RenderProfiler {
	p := &RenderProfiler{}
	p.SetSampleRate(sampleRate)
	return p
}

// SetSampleRate updates the rate used to convert frames to real time.
func (p *RenderProfiler) SetSampleRate(sampleRate float64) {
	p.sampleRate.Store(uint64(sampleRate))
}

// Start begins timing a block of frames. Call the returned func when the
// block is done.
func (p *RenderProfiler) Start(frames int) func() {
	start := time.Now()
	return func() {
		p.Record(frames, time.Since(start))
	}
}

// Record adds one measured block.
func (p *RenderProfiler) Record(frames int, elapsed time.Duration) {
	ns := elapsed.Nanoseconds()
	p.count.Add(1)
	p.frames.Add(uint64(frames))
	p.totalNanos.Add(ns)

	for {
		old := p.maxNanos.Load()
		if ns <= old || p.maxNanos.CompareAndSwap(old, ns) {
			break
		}
	}

	if budget := p.budget(frames); budget > 0 {
		p.lastLoad.Store(uint64(float64(ns) / float64(budget) * 10000))
	}
}

func (p *RenderProfiler) budget(frames int) time.Duration {
	sr := p.sampleRate.Load()
	if sr == 0 {
		return 0
	}
	return time.Duration(uint64(frames) * uint64(time.Second) / sr)
}

// Blocks returns the number of recorded blocks.
func (p *RenderProfiler) Blocks() uint64 {
	return p.count.Load()
}

// Average returns the mean render time per block.
func (p *RenderProfiler) Average() time.Duration {
	n := p.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(p.totalNanos.Load() / int64(n))
}

// Max returns the slowest block.
func (p *RenderProfiler) Max() time.Duration {
	return time.Duration(p.maxNanos.Load())
}

// Load returns the render time of the last block as a percentage of the
// time it covers. Above 100 the renderer cannot keep up.
func (p *RenderProfiler) Load() float64 {
	return float64(p.lastLoad.Load()) / 100
}

// AverageLoad returns total render time over total covered time, in percent.
func (p *RenderProfiler) AverageLoad() float64 {
	covered := p.budget(int(p.frames.Load()))
	if covered <= 0 {
		return 0
	}
	return float64(p.totalNanos.Load()) / float64(covered) * 100
}

// Reset clears all measurements.
func (p *RenderProfiler) Reset() {
	p.count.Store(0)
	p.frames.Store(0)
	p.totalNanos.Store(0)
	p.maxNanos.Store(0)
	p.lastLoad.Store(0)
}

// Report summarizes the measurements.
func (p *RenderProfiler) Report() string {
	if p.Blocks() == 0 {
		return "No blocks rendered"
	}
	return fmt.Sprintf("blocks=%d frames=%d avg=%v max=%v load=%.2f%%",
		p.Blocks(), p.frames.Load(), p.Average(), p.Max(), p.AverageLoad())
}
