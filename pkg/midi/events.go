// Package midi decodes the MIDI messages the instrument reacts to and hands
// them from the control thread to the audio thread.
package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
)

// Status bytes (channel 1). Parse accepts exactly these; Decode masks off
// the channel nibble.
const (
	StatusNoteOff byte = 0x80
	StatusNoteOn  byte = 0x90
)

type Event interface {
	Type() EventType
	Channel() uint8
	String() string
}

type BaseEvent struct {
	EventChannel uint8
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity)
}

// Parse decodes a three byte message from a host. Only status 0x80 (note
// off) and 0x90 (note on) are recognised; every other status, and data bytes
// above 127, return false and must be ignored. A note on keeps its velocity
// even when it is zero.
func Parse(status, data1, data2 byte) (Event, bool) {
	if data1 > 0x7F || data2 > 0x7F {
		return nil, false
	}
	switch status {
	case StatusNoteOn:
		return NoteOnEvent{NoteNumber: data1, Velocity: data2}, true
	case StatusNoteOff:
		return NoteOffEvent{NoteNumber: data1, Velocity: data2}, true
	}
	return nil, false
}

// Decode converts a message from a live input port into an Event. It listens
// on every channel and treats a note on with zero velocity as a note off, the
// way keyboards using running status release keys.
func Decode(msg gomidi.Message) (Event, bool) {
	if len(msg) < 3 {
		return nil, false
	}
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		if vel == 0 {
			return NoteOffEvent{BaseEvent: BaseEvent{EventChannel: ch}, NoteNumber: key}, true
		}
		return NoteOnEvent{BaseEvent: BaseEvent{EventChannel: ch}, NoteNumber: key, Velocity: vel}, true
	case msg.GetNoteOff(&ch, &key, &vel):
		return NoteOffEvent{BaseEvent: BaseEvent{EventChannel: ch}, NoteNumber: key, Velocity: vel}, true
	case msg[0]&0xF0 == StatusNoteOn && msg[2] == 0:
		return NoteOffEvent{BaseEvent: BaseEvent{EventChannel: msg[0] & 0x0F}, NoteNumber: msg[1] & 0x7F}, true
	}
	return nil, false
}

// Encode turns an event back into raw bytes. Note off velocity is not kept.
func Encode(e Event) gomidi.Message {
	switch ev := e.(type) {
	case NoteOnEvent:
		return gomidi.NoteOn(ev.EventChannel, ev.NoteNumber, ev.Velocity)
	case NoteOffEvent:
		return gomidi.NoteOff(ev.EventChannel, ev.NoteNumber)
	}
	return nil
}

func NoteNumberToName(note uint8) string {
	noteNames := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	noteName := noteNames[note%12]
	return fmt.Sprintf("%s%d", noteName, octave)
}
