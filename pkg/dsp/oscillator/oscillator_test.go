package oscillator

import (
	"errors"
	"math"
	"testing"

	"github.com/justyntemme/polysynth/pkg/dsp/wave"
)

func TestWaveformFromNormalized(t *testing.T) {
	tests := []struct {
		value float64
		want  Waveform
	}{
		{0, Sine},
		{0.14, Sine},
		{0.15, Saw},
		{0.3, ReversedSaw},
		{0.45, Square},
		{0.6, Triangle},
		{0.75, RoundedSine},
		{0.9, Noise},
		{0.999, Noise},
		{1.0, Noise},
		{1.0000001, Sine},
		{1.5, Sine},
		{7.5, Sine},
		{math.Inf(1), Sine},
		{math.Inf(-1), Sine},
		{-0.2, Sine},
		{math.NaN(), Sine},
	}
	for _, tt := range tests {
		if got := WaveformFromNormalized(tt.value); got != tt.want {
			t.Errorf("WaveformFromNormalized(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestWaveformNames(t *testing.T) {
	want := []string{"Sine", "Saw", "Reversed Saw", "Square", "Triangle", "Sine Rounded", "Noise"}
	for i, name := range want {
		if got := Waveform(i).String(); got != name {
			t.Errorf("Waveform(%d).String() = %q, want %q", i, got, name)
		}
	}
	if got := Waveform(42).String(); got != "Sine" {
		t.Errorf("unknown waveform should name as Sine, got %q", got)
	}
}

func TestWaveformRoundTrip(t *testing.T) {
	for i := 0; i < WaveformCount; i++ {
		w := Waveform(i)
		if got := WaveformFromNormalized(w.Normalized()); got != w {
			t.Errorf("round trip of %v gave %v", w, got)
		}
	}
}

func TestSetWaveformOutOfRangeFallsBackToSine(t *testing.T) {
	o := New()
	o.SetWaveform(Noise.Normalized())
	for _, v := range []float64{1.5, 2, math.Inf(1), -0.5, math.NaN()} {
		o.SetWaveform(v)
		if o.Waveform() != Sine {
			t.Errorf("SetWaveform(%v) selected %v, want Sine", v, o.Waveform())
		}
	}
	o.SetWaveform(1)
	if o.Waveform() != Noise {
		t.Errorf("SetWaveform(1) selected %v, want Noise", o.Waveform())
	}
}

func TestOscillatorDefaults(t *testing.T) {
	o := New()
	if o.Waveform() != Sine {
		t.Errorf("default waveform = %v, want Sine", o.Waveform())
	}
	if o.Volume() != 1.0 {
		t.Errorf("default volume = %v, want 1", o.Volume())
	}
	if o.PitchBend() != 0 {
		t.Errorf("default pitch bend = %v, want 0", o.PitchBend())
	}
}

func TestPitchBendNormalized(t *testing.T) {
	tests := []struct {
		value float64
		want  int16
	}{
		{0, -8192},
		{0.5, 0},
		{0.75, 4096},
		{1.0, 8191},
		{-3, -8192},
		{3, 8191},
	}
	for _, tt := range tests {
		var o Oscillator
		o.SetPitchBendNormalized(tt.value)
		if o.PitchBend() != tt.want {
			t.Errorf("SetPitchBendNormalized(%v) -> %d, want %d", tt.value, o.PitchBend(), tt.want)
		}
	}

	if got := PitchBendNormalized(0); got != 0.5 {
		t.Errorf("PitchBendNormalized(0) = %v, want 0.5", got)
	}
}

func TestRenderDelegates(t *testing.T) {
	o := New()
	o.SetPitchBend(1234)
	for w := 0; w < WaveformCount-1; w++ {
		o.SetWaveform(Waveform(w).Normalized())
		gen := Waveform(w).Generator()
		for i := 0; i < 100; i++ {
			tm := float64(i) / 44100
			if got, want := o.Render(tm, 60), gen(tm, 60, 1234); got != want {
				t.Fatalf("%v: Render = %v, want %v", Waveform(w), got, want)
			}
		}
	}

	o.SetWaveform(1)
	for i := 0; i < 100; i++ {
		if s := o.Render(0, 60); s < -1 || s > 1 {
			t.Fatalf("noise out of range: %v", s)
		}
	}
}

func TestRenderIgnoresVolume(t *testing.T) {
	o := New()
	o.SetVolume(0.25)
	tm := 0.3 / 440
	if got, want := o.Render(tm, 69), wave.Sine(tm, 69, 0); got != want {
		t.Errorf("Render should not apply volume: got %v want %v", got, want)
	}
}

func TestBank(t *testing.T) {
	b := NewBank(3)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	o, err := b.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	o.SetVolume(0.5)
	if b.Get(1).Volume() != 0.5 {
		t.Error("At should give mutable access to the bank entry")
	}

	for _, idx := range []int{-1, 3, 100} {
		if _, err := b.At(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if got := b.Get(idx); got != New() {
			t.Errorf("Get(%d) = %v, want default oscillator", idx, got)
		}
	}

	if NewBank(0).Len() != 1 {
		t.Error("NewBank(0) should hold one oscillator")
	}
}

func TestNormalizedGetters(t *testing.T) {
	o := New()
	o.SetWaveform(Square.Normalized())
	o.SetPitchBend(4096)

	if got := o.NormalizedWaveform(); WaveformFromNormalized(got) != Square {
		t.Errorf("NormalizedWaveform() = %v does not map back to Square", got)
	}
	if got := o.NormalizedPitchBend(); got != 0.75 {
		t.Errorf("NormalizedPitchBend() = %v, want 0.75", got)
	}
}
