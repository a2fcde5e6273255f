package analysis

import "math"

// Balance compares the power of two channels: -1 is all left, 0 is centered
// and 1 is all right. Silence reads as centered.
func Balance(left, right []float64) float64 {
	var powerL, powerR float64
	for i := 0; i < len(left) && i < len(right); i++ {
		powerL += left[i] * left[i]
		powerR += right[i] * right[i]
	}

	total := powerL + powerR
	if total == 0 {
		return 0
	}
	return (powerR - powerL) / total
}

// Correlation returns the normalized correlation of two channels, from -1
// (inverted) through 0 (unrelated) to 1 (identical). Silence reads as 0.
func Correlation(left, right []float64) float64 {
	var sumLR, sumLL, sumRR float64
	for i := 0; i < len(left) && i < len(right); i++ {
		sumLR += left[i] * right[i]
		sumLL += left[i] * left[i]
		sumRR += right[i] * right[i]
	}

	denom := math.Sqrt(sumLL * sumRR)
	if denom == 0 {
		return 0
	}
	return sumLR / denom
}

// Deinterleave splits a stereo buffer into float64 channels
func Deinterleave(interleaved []float32) (left, right []float64) {
	n := len(interleaved) / 2
	left = make([]float64, n)
	right = make([]float64, n)
	for i := 0; i < n; i++ {
		left[i] = float64(interleaved[2*i])
		right[i] = float64(interleaved[2*i+1])
	}
	return left, right
}
