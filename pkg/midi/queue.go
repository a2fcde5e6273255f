package midi

import (
	"sync/atomic"
)

// DefaultRingSize is the event capacity used when none is given
const DefaultRingSize = 1024

// Ring is a bounded single-producer/single-consumer event queue. The control
// thread pushes, the audio thread drains; neither side ever blocks or takes a
// lock. When the ring is full the new event is dropped and counted.
//
// Only one goroutine may push and only one may pop at a time.
type Ring struct {
	buf  []Event
	mask uint64

	head    atomic.Uint64 // next slot to read, owned by the consumer
	tail    atomic.Uint64 // next slot to write, owned by the producer
	dropped atomic.Uint64
}

// NewRing creates a ring holding at least size events. The size is rounded
// up to a power of two.
func NewRing(size int) *Ring {
	if size < 1 {
		size = DefaultRingSize
	}
	n := 1
	for n < size {
		n <<= 1
	}
	return &Ring{
		buf:  make([]Event, n),
		mask: uint64(n - 1),
	}
}

// Push adds an event, returning false if the ring was full.
func (r *Ring) Push(e Event) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() == uint64(len(r.buf)) {
		r.dropped.Add(1)
		return false
	}
	r.buf[tail&r.mask] = e
	r.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest event
func (r *Ring) Pop() (Event, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return nil, false
	}
	e := r.buf[head&r.mask]
	r.buf[head&r.mask] = nil
	r.head.Store(head + 1)
	return e, true
}

// EventProcessor consumes drained events
type EventProcessor interface {
	ProcessEvent(event Event)
}

// ProcessEvents drains every event currently queued into p, oldest first,
// and returns how many were delivered. Events pushed while draining are left
// for the next call.
func (r *Ring) ProcessEvents(p EventProcessor) int {
	tail := r.tail.Load()
	n := 0
	for head := r.head.Load(); head != tail; head++ {
		e := r.buf[head&r.mask]
		r.buf[head&r.mask] = nil
		r.head.Store(head + 1)
		p.ProcessEvent(e)
		n++
	}
	return n
}

// Size returns the number of queued events
func (r *Ring) Size() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the ring capacity
func (r *Ring) Cap() int {
	return len(r.buf)
}

// IsEmpty reports whether nothing is queued
func (r *Ring) IsEmpty() bool {
	return r.Size() == 0
}

// Dropped returns how many events were rejected because the ring was full
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}
