package midi

import (
	"sync"
	"testing"
)

type collector struct {
	events []Event
}

func (c *collector) ProcessEvent(e Event) {
	c.events = append(c.events, e)
}

func noteOn(n uint8) Event {
	return NoteOnEvent{NoteNumber: n, Velocity: 100}
}

func TestRingPushPop(t *testing.T) {
	r := NewRing(4)

	if !r.IsEmpty() {
		t.Error("New ring should be empty")
	}

	r.Push(noteOn(60))
	r.Push(NoteOffEvent{NoteNumber: 60})

	if r.Size() != 2 {
		t.Errorf("Expected 2 events, got %d", r.Size())
	}

	e, ok := r.Pop()
	if !ok || e.Type() != EventTypeNoteOn {
		t.Errorf("Expected note on first, got %v", e)
	}
	e, ok = r.Pop()
	if !ok || e.Type() != EventTypeNoteOff {
		t.Errorf("Expected note off second, got %v", e)
	}
	if _, ok := r.Pop(); ok {
		t.Error("Expected empty ring")
	}
}

func TestRingCapacityRounding(t *testing.T) {
	tests := []struct {
		size int
		cap  int
	}{
		{1, 1},
		{3, 4},
		{1000, 1024},
		{1024, 1024},
		{0, DefaultRingSize},
		{-5, DefaultRingSize},
	}

	for _, tt := range tests {
		if got := NewRing(tt.size).Cap(); got != tt.cap {
			t.Errorf("NewRing(%d): expected cap %d, got %d", tt.size, tt.cap, got)
		}
	}
}

func TestRingOverflowDrops(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 4; i++ {
		if !r.Push(noteOn(uint8(60 + i))) {
			t.Fatalf("Push %d should succeed", i)
		}
	}

	if r.Push(noteOn(70)) {
		t.Error("Push into full ring should fail")
	}
	if r.Dropped() != 1 {
		t.Errorf("Expected 1 dropped event, got %d", r.Dropped())
	}

	// The queued events are untouched
	c := &collector{}
	if n := r.ProcessEvents(c); n != 4 {
		t.Errorf("Expected 4 events, got %d", n)
	}
	for i, e := range c.events {
		if e.(NoteOnEvent).NoteNumber != uint8(60+i) {
			t.Errorf("Event %d out of order: %v", i, e)
		}
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(2)
	c := &collector{}
	for i := 0; i < 10; i++ {
		r.Push(noteOn(uint8(i)))
		r.ProcessEvents(c)
	}

	if len(c.events) != 10 {
		t.Fatalf("Expected 10 events, got %d", len(c.events))
	}
	for i, e := range c.events {
		if e.(NoteOnEvent).NoteNumber != uint8(i) {
			t.Errorf("Event %d out of order: %v", i, e)
		}
	}
}

func TestRingConcurrent(t *testing.T) {
	const total = 10000
	r := NewRing(64)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if r.Push(noteOn(uint8(i % 128))) {
				i++
			}
		}
	}()

	c := &collector{}
	for len(c.events) < total {
		r.ProcessEvents(c)
	}
	wg.Wait()

	for i, e := range c.events {
		if e.(NoteOnEvent).NoteNumber != uint8(i%128) {
			t.Fatalf("Event %d out of order: %v", i, e)
		}
	}
}

func BenchmarkRing(b *testing.B) {
	r := NewRing(DefaultRingSize)
	e := noteOn(60)
	for i := 0; i < b.N; i++ {
		r.Push(e)
		r.Pop()
	}
}
