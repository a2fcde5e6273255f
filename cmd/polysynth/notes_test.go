package main

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/polysynth/pkg/framework/debug"
	"github.com/justyntemme/polysynth/pkg/synth"
)

func TestParseNotes(t *testing.T) {
	tests := []struct {
		in      string
		want    []uint8
		wantErr bool
	}{
		{"60,64,67", []uint8{60, 64, 67}, false},
		{" 69 ", []uint8{69}, false},
		{"60,,64,", []uint8{60, 64}, false},
		{"", nil, false},
		{"128", nil, true},
		{"C4", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		got, err := parseNotes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNotes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseNotes(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func newTestInstrument() *synth.Instrument {
	cfg := synth.DefaultConfig()
	cfg.Logger = debug.New(io.Discard, "", 0)
	return synth.New(cfg)
}

func TestGatedSourceReleasesOnFrame(t *testing.T) {
	in := newTestInstrument()
	p := &player{in: in}
	p.noteOn([]uint8{69}, 100)

	g := &gatedSource{in: in, notes: []uint8{69}, gate: 10}
	buf := make([]float32, 2*16)
	g.RenderInterleaved(buf)

	if in.ActiveNotes() != 0 {
		t.Errorf("Expected notes released, got %d", in.ActiveNotes())
	}
	if buf[2*5] == 0 {
		t.Error("Expected sound before the gate")
	}
	for i := 2 * 10; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("Sample %d: expected silence after the gate, got %v", i, buf[i])
		}
	}
}

func TestGatedSourceHolds(t *testing.T) {
	in := newTestInstrument()
	p := &player{in: in}
	p.noteOn([]uint8{60, 64}, 100)

	g := &gatedSource{in: in, notes: []uint8{60, 64}}
	buf := make([]float32, 2*64)
	for i := 0; i < 4; i++ {
		g.RenderInterleaved(buf)
	}

	if in.ActiveNotes() != 2 {
		t.Errorf("Expected notes held, got %d", in.ActiveNotes())
	}

	p.noteOff([]uint8{60, 64})
	g.RenderInterleaved(buf)
	if in.ActiveNotes() != 0 {
		t.Errorf("Expected notes released, got %d", in.ActiveNotes())
	}
}
