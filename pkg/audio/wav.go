package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/polysynth/pkg/dsp"
)

// WAVBitDepth is the sample size of rendered files
const WAVBitDepth = 16

const pcmFormat = 1

// WriteWAV renders frames of src into w as 16-bit PCM stereo, blockFrames at
// a time. Samples outside -1..1 are clipped.
func WriteWAV(w io.WriteSeeker, src Source, sampleRate, frames, blockFrames int) error {
	if blockFrames <= 0 {
		blockFrames = dsp.DefaultBufferSize
	}

	enc := wav.NewEncoder(w, sampleRate, WAVBitDepth, Channels, pcmFormat)

	samples := make([]float32, blockFrames*Channels)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: Channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, blockFrames*Channels),
		SourceBitDepth: WAVBitDepth,
	}

	for done := 0; done < frames; {
		n := min(blockFrames, frames-done)
		block := samples[:n*Channels]
		src.RenderInterleaved(block)

		intBuf.Data = intBuf.Data[:len(block)]
		for i, s := range block {
			intBuf.Data[i] = int(dsp.Clamp(s, -1, 1) * 32767)
		}
		if err := enc.Write(intBuf); err != nil {
			return fmt.Errorf("write wav: %w", err)
		}
		done += n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// RenderWAVFile renders seconds of src to a new file at path.
func RenderWAVFile(path string, src Source, sampleRate int, seconds float64, blockFrames int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	frames := int(seconds * float64(sampleRate))
	return WriteWAV(f, src, sampleRate, frames, blockFrames)
}
