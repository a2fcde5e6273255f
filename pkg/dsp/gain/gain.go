// Package gain converts between linear amplitude and decibels and applies
// gain to sample buffers.
package gain

import (
	"math"
)

// MinDB stands in for -infinity: silence converts to it and anything at or
// below it converts back to silence.
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return max(20.0*math.Log10(linear), MinDB)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer scales a buffer in place
func ApplyBuffer(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] *= gain
	}
}
