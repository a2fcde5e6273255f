package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/polysynth/pkg/framework/debug"
)

// rampSource emits an increasing counter on the left and its negation on the
// right, scaled so every value is distinct.
type rampSource struct {
	next  int
	calls int
	scale float32
}

func (r *rampSource) RenderInterleaved(dst []float32) {
	r.calls++
	for i := 0; i+1 < len(dst); i += 2 {
		v := float32(r.next) * r.scale
		dst[i], dst[i+1] = v, -v
		r.next++
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"malgo", BackendMalgo, false},
		{" OTO ", BackendOto, false},
		{"jack", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeFloat32LE(t *testing.T) {
	samples := []float32{0, 1, -0.5}
	dst := make([]byte, 10)

	n := encodeFloat32LE(dst, samples)
	if n != 8 {
		t.Fatalf("Expected 8 bytes written, got %d", n)
	}
	for i := 0; i < 2; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[4*i:]))
		if got != samples[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, samples[i], got)
		}
	}
}

func TestRendererHooks(t *testing.T) {
	src := &rampSource{scale: 0.25}
	meter := &debug.PeakMeter{}
	profiler := debug.NewRenderProfiler(44100)

	r := newRenderer(src, Options{
		Meter:    meter,
		Profiler: profiler,
	}.withDefaults())

	out := make([]byte, 4*Channels*4)
	r.render(out, 4)

	if profiler.Blocks() != 1 {
		t.Errorf("Expected 1 profiled block, got %d", profiler.Blocks())
	}
	if peak := meter.Take(); peak != 0.75 {
		t.Errorf("Expected peak 0.75, got %v", peak)
	}

	var got []float32
	for i := 0; i < len(out); i += 4 {
		got = append(got, math.Float32frombits(binary.LittleEndian.Uint32(out[i:])))
	}
	want := []float32{0, 0, 0.25, -0.25, 0.5, -0.5, 0.75, -0.75}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rendered bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererRendersRequestedFrames(t *testing.T) {
	src := &rampSource{scale: 0.001}
	r := newRenderer(src, Options{BlockFrames: 2}.withDefaults())

	out := make([]byte, 4*Channels*16)
	r.render(out, 16)
	if src.next != 16 {
		t.Errorf("Expected 16 frames rendered, got %d", src.next)
	}
}

func TestRendererLargePeriodDoesNotAllocate(t *testing.T) {
	src := &rampSource{scale: 0.001}
	r := newRenderer(src, Options{BlockFrames: 512}.withDefaults())

	out := make([]byte, 4*Channels*maxPeriodFrames)
	allocs := testing.AllocsPerRun(10, func() {
		r.render(out, maxPeriodFrames)
	})
	if allocs != 0 {
		t.Errorf("Expected no allocations for a %d frame period, got %v", maxPeriodFrames, allocs)
	}
}

func TestOtoReadIsFrameAligned(t *testing.T) {
	src := &rampSource{scale: 0.001}
	p := &OtoPlayer{renderer: newRenderer(src, Options{}.withDefaults())}

	n, err := p.Read(make([]byte, 4*Channels*3+5))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 4*Channels*3 {
		t.Errorf("Expected 3 whole frames, got %d bytes", n)
	}

	n, _ = p.Read(make([]byte, 7))
	if n != 0 || src.calls != 1 {
		t.Errorf("Expected a short read to render nothing, got %d bytes", n)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	src := &rampSource{scale: 1.0 / 64}

	if err := RenderWAVFile(path, src, 8000, 0.01, 32); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if src.next != 80 {
		t.Errorf("Expected 80 frames rendered, got %d", src.next)
	}
	if src.calls != 3 {
		t.Errorf("Expected 3 blocks, got %d", src.calls)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if dec.SampleRate != 8000 || dec.NumChans != 2 || dec.BitDepth != WAVBitDepth {
		t.Errorf("Unexpected format: %d Hz, %d channels, %d bits", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(buf.Data) != 160 {
		t.Fatalf("Expected 160 samples, got %d", len(buf.Data))
	}

	for frame := 0; frame < 80; frame++ {
		v := min(float32(frame)/64, 1)
		want := int(v * 32767)
		if buf.Data[2*frame] != want || buf.Data[2*frame+1] != -want {
			t.Fatalf("Frame %d: expected %d/%d, got %d/%d",
				frame, want, -want, buf.Data[2*frame], buf.Data[2*frame+1])
		}
	}
}

func TestRenderWAVFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	if err := RenderWAVFile(path, &rampSource{}, 8000, 0.01, 0); err == nil {
		t.Error("Expected error for an unwritable path")
	}
}
