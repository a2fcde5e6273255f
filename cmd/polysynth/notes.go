package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/polysynth/pkg/midi"
	"github.com/justyntemme/polysynth/pkg/synth"
)

// parseNotes parses a comma separated list of MIDI pitches
func parseNotes(s string) ([]uint8, error) {
	var notes []uint8
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil || n > 127 {
			return nil, fmt.Errorf("invalid note %q: want 0-127", field)
		}
		notes = append(notes, uint8(n))
	}
	return notes, nil
}

// player serializes the goroutines that feed the instrument: the command
// line, the gate timer and the MIDI port.
type player struct {
	mu sync.Mutex
	in *synth.Instrument
}

func (p *player) noteOn(notes []uint8, velocity uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range notes {
		p.in.HandleMIDIEvent(midi.StatusNoteOn, n, velocity)
	}
}

func (p *player) noteOff(notes []uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range notes {
		p.in.HandleMIDIEvent(midi.StatusNoteOff, n, 0)
	}
}

func (p *player) message(msg gomidi.Message) {
	p.mu.Lock()
	p.in.HandleMessage(msg)
	p.mu.Unlock()
}

// gatedSource releases its notes once gate frames have been rendered. The
// block containing the gate is split so the release lands on the exact
// frame. A zero gate holds the notes forever.
type gatedSource struct {
	in       *synth.Instrument
	notes    []uint8
	gate     int
	pos      int
	released bool
}

func (g *gatedSource) RenderInterleaved(dst []float32) {
	frames := len(dst) / 2

	if g.released || g.gate <= 0 || g.pos+frames <= g.gate {
		g.in.RenderInterleaved(dst)
		g.pos += frames
		return
	}

	split := max(g.gate-g.pos, 0)
	g.in.RenderInterleaved(dst[:2*split])
	for _, n := range g.notes {
		g.in.HandleMIDIEvent(midi.StatusNoteOff, n, 0)
	}
	g.released = true
	g.in.RenderInterleaved(dst[2*split:])
	g.pos += frames
}
