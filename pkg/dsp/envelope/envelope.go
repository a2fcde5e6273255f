// Package envelope provides envelope generators for audio synthesis
package envelope

// Stage represents where a point in time falls on the envelope
type Stage int

const (
	// StageAttack is the ramp in from silence
	StageAttack Stage = iota
	// StageSustain is full level, between the attack and the decay point
	StageSustain
	// StageDecay is the rolloff once the decay time has passed
	StageDecay
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "attack"
	case StageSustain:
		return "sustain"
	case StageDecay:
		return "decay"
	default:
		return "unknown"
	}
}

// Shaper applies an attack ramp and a decay rolloff to a signal as a function
// of the time since the instrument started sounding.
//
// The attack ramps linearly from 0 to 1 over Attack seconds. Once the time
// passes Decay seconds the signal is divided by t/Decay, so it falls off as
// 1/t. A zero duration disables that segment.
type Shaper struct {
	Attack float64 // seconds
	Decay  float64 // seconds
}

// New creates a shaper. Negative durations are treated as zero.
func New(attack, decay float64) Shaper {
	var s Shaper
	s.SetAttack(attack)
	s.SetDecay(decay)
	return s
}

// SetAttack sets the attack time in seconds
func (s *Shaper) SetAttack(seconds float64) {
	if !(seconds > 0) {
		seconds = 0
	}
	s.Attack = seconds
}

// SetDecay sets the decay time in seconds
func (s *Shaper) SetDecay(seconds float64) {
	if !(seconds > 0) {
		seconds = 0
	}
	s.Decay = seconds
}

// AttackGain returns t/Attack while t is inside the attack, 1 otherwise.
func (s Shaper) AttackGain(t float64) float64 {
	if s.Attack > 0 && t < s.Attack {
		return t / s.Attack
	}
	return 1.0
}

// DecayDivisor returns t/Decay once t is past the decay time, 1 otherwise.
func (s Shaper) DecayDivisor(t float64) float64 {
	if s.Decay > 0 && t > s.Decay {
		return t / s.Decay
	}
	return 1.0
}

// Apply shapes a single sample at time t: attack first, then decay.
func (s Shaper) Apply(t float64, sample float32) float32 {
	sample *= float32(s.AttackGain(t))
	if d := s.DecayDivisor(t); d != 1.0 {
		sample /= float32(d)
	}
	return sample
}

// Stage reports which segment t falls in
func (s Shaper) Stage(t float64) Stage {
	switch {
	case s.Attack > 0 && t < s.Attack:
		return StageAttack
	case s.Decay > 0 && t > s.Decay:
		return StageDecay
	default:
		return StageSustain
	}
}
