// Package pan provides stereo panning operations.
package pan

import (
	"fmt"
	"math"
	"strings"
)

// Law represents different panning laws
type Law int

const (
	// Balance leaves the near channel untouched and attenuates the far one
	// linearly. This is the law the instrument uses by default.
	Balance Law = iota
	// Linear crossfades the channels; center is -6 dB on each side
	Linear
	// ConstantPower uses sine/cosine panning (maintains constant power)
	ConstantPower
)

func (l Law) String() string {
	switch l {
	case Linear:
		return "linear"
	case ConstantPower:
		return "constant-power"
	default:
		return "balance"
	}
}

// ParseLaw accepts the names String returns
func ParseLaw(s string) (Law, error) {
	for _, l := range []Law{Balance, Linear, ConstantPower} {
		if strings.EqualFold(strings.TrimSpace(s), l.String()) {
			return l, nil
		}
	}
	return Balance, fmt.Errorf("unknown pan law %q", s)
}

// Channel identifies one side of a stereo pair
type Channel int

const (
	Left Channel = iota
	Right
)

// Gains returns the left and right gains for a pan position.
// pan: -1.0 = hard left, 0.0 = center, 1.0 = hard right
func Gains(pan float32, law Law) (left, right float32) {
	switch law {
	case Linear:
		return linearPan(pan)
	case ConstantPower:
		return constantPowerPan(pan)
	default:
		return Apply(1, pan, Left), Apply(1, pan, Right)
	}
}

// Apply pans a single sample for one channel using the balance law: the left
// channel is scaled by 1-pan when panned right, the right channel by |-1-pan|
// when panned left, and everything else passes unchanged.
func Apply(sample, pan float32, ch Channel) float32 {
	switch {
	case ch == Left && pan > 0:
		return sample * (1.0 - pan)
	case ch == Right && pan < 0:
		return sample * float32(math.Abs(float64(-1.0-pan)))
	default:
		return sample
	}
}

// FromNormalized maps a 0-1 host value onto -1..1.
func FromNormalized(v float64) float32 {
	return float32(2.0*v - 1.0)
}

// Normalized maps a pan position back onto 0-1.
func Normalized(pan float32) float64 {
	return (float64(pan) + 1.0) / 2.0
}

func linearPan(pan float32) (left, right float32) {
	return (1.0 - pan) * 0.5, (1.0 + pan) * 0.5
}

// constantPowerPan implements equal power panning using sine/cosine.
func constantPowerPan(pan float32) (left, right float32) {
	// [-1, 1] onto [0, pi/2]
	angle := float64(pan+1.0) * math.Pi / 4.0
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}
