package models

import "math"

// BreathPhase is one quarter of the box-breathing cycle.
type BreathPhase int

const (
	Inhale BreathPhase = iota
	HoldFull
	Exhale
	HoldEmpty
)

const (
	// BreathCycle is the length of one full cycle in seconds.
	BreathCycle = 16.0
	// PhaseLength is the length of each phase in seconds.
	PhaseLength = BreathCycle / 4
	// MinScale and MaxScale bound the breathing guide's scale.
	MinScale = 1.0
	MaxScale = 1.3
)

func (p BreathPhase) String() string {
	switch p {
	case Inhale:
		return "Inhale"
	case HoldFull:
		return "Hold"
	case Exhale:
		return "Exhale"
	case HoldEmpty:
		return "Hold"
	default:
		return ""
	}
}

// Cue is the instruction shown during p.
func (p BreathPhase) Cue() string {
	switch p {
	case Inhale:
		return "breathe in slowly"
	case HoldFull:
		return "hold it gently"
	case Exhale:
		return "let it go"
	case HoldEmpty:
		return "rest empty"
	default:
		return ""
	}
}

// PhaseAt returns the phase at elapsed seconds and the progress through it in [0, 1).
// Negative elapsed times are treated as zero.
func PhaseAt(elapsed float64) (BreathPhase, float64) {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	cyclePos := math.Mod(elapsed, BreathCycle)
	phase := BreathPhase(int(math.Floor(cyclePos / PhaseLength)))
	progress := math.Mod(elapsed, PhaseLength) / PhaseLength
	return phase, progress
}

// ScaleAt is the breathing guide scale at elapsed seconds: rising during
// the inhale, flat at [MaxScale] while holding full, falling during the
// exhale and flat at [MinScale] while holding empty.
func ScaleAt(elapsed float64) float64 {
	phase, progress := PhaseAt(elapsed)
	span := MaxScale - MinScale
	switch phase {
	case Inhale:
		return MinScale + progress*span
	case HoldFull:
		return MaxScale
	case Exhale:
		return MaxScale - progress*span
	default:
		return MinScale
	}
}
