// Package dsp provides digital signal processing utilities for audio
package dsp

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Interleave writes left/right into dst as LRLR frames. The number of frames
// written is the shortest of the three buffers.
func Interleave(dst, left, right []float32) int {
	n := len(dst) / 2
	if len(left) < n {
		n = len(left)
	}
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
	return n
}
