// Package voice tracks which notes are sounding.
package voice

import (
	"fmt"

	"github.com/justyntemme/polysynth/pkg/midi"
)

// Note is a sounding pitch and the velocity it was struck with. Notes are
// identified by pitch alone.
type Note struct {
	Pitch    uint8
	Velocity uint8
}

// Is reports whether the note has the given pitch
func (n Note) Is(pitch uint8) bool {
	return n.Pitch == pitch
}

// Equal compares by pitch; velocity is ignored
func (n Note) Equal(other Note) bool {
	return n.Pitch == other.Pitch
}

// Gain is the velocity scale applied to the note's signal, velocity/100.
func (n Note) Gain() float32 {
	return float32(n.Velocity) / 100.0
}

func (n Note) String() string {
	return fmt.Sprintf("%s(%d) vel:%d", midi.NoteNumberToName(n.Pitch), n.Pitch, n.Velocity)
}

// defaultCapacity covers one entry per MIDI pitch, so ordinary playing never
// grows the slice from the audio thread.
const defaultCapacity = 128

// Registry is the ordered list of sounding notes.
//
// NoteOn always appends, so striking a pitch that is already held adds a
// second entry; both render until each is released. NoteOff removes only the
// first entry with a matching pitch.
type Registry struct {
	notes []Note
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{notes: make([]Note, 0, defaultCapacity)}
}

// NoteOn appends a note
func (r *Registry) NoteOn(pitch, velocity uint8) {
	r.notes = append(r.notes, Note{Pitch: pitch, Velocity: velocity})
}

// NoteOff removes the first note with the given pitch. It returns false when
// no note matched.
func (r *Registry) NoteOff(pitch uint8) bool {
	for i, n := range r.notes {
		if n.Is(pitch) {
			copy(r.notes[i:], r.notes[i+1:])
			r.notes = r.notes[:len(r.notes)-1]
			return true
		}
	}
	return false
}

// ProcessEvent applies a note event. Other event types are ignored.
func (r *Registry) ProcessEvent(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		r.NoteOn(e.NoteNumber, e.Velocity)
	case midi.NoteOffEvent:
		r.NoteOff(e.NoteNumber)
	}
}

// IsEmpty reports whether no notes are sounding
func (r *Registry) IsEmpty() bool {
	return len(r.notes) == 0
}

// Len returns the number of entries, duplicates included
func (r *Registry) Len() int {
	return len(r.notes)
}

// Notes returns the sounding notes in the order they were struck. The slice
// is only valid until the next mutation and must not be modified.
func (r *Registry) Notes() []Note {
	return r.notes
}

// Reset removes every note
func (r *Registry) Reset() {
	r.notes = r.notes[:0]
}
