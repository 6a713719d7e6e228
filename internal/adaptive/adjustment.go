package adaptive

import (
	"math"

	"github.com/louisbranch/nback-engine/internal/performance"
)

// Adjustment is the bounded continuous counterpart to a Decision.
// Zero deltas with a multiplier of 1 leave difficulty untouched.
type Adjustment struct {
	MatchRateMultiplier  float64 // scales channel match rates, 0.5..1.5
	ComplexityBonusDelta float64 // shifts the overlap bonus, -0.1..0.2
	PacingDelta          int     // shifts seconds per round, -1..2
	Confidence           float64 // 0..1
}

// Neutral reports whether applying the adjustment would change nothing.
func (a Adjustment) Neutral() bool {
	return a.MatchRateMultiplier == 1 && a.ComplexityBonusDelta == 0 && a.PacingDelta == 0
}

// Derive computes a bounded continuous adjustment from the snapshot
// history (oldest first).
//
// The target accuracy band eases with the n-back level: holding 85%
// at n=2 is expected, holding it at n=5 is not. Recent snapshots are
// weighted 0.5/0.3/0.2 newest first, with the short-term trend blended
// in so improving trainees are nudged slightly harder than static
// ones. Every output is clamped to its documented range, so a wild
// history can never produce a wild adjustment. An empty history is
// neutral with zero confidence.
func Derive(history []performance.Snapshot, nLevel int) Adjustment {
	if len(history) == 0 {
		return Adjustment{MatchRateMultiplier: 1}
	}

	target := max(60, 85-5*float64(nLevel-2))

	weights := []float64{0.5, 0.3, 0.2}
	accuracy := 0.0
	weightSum := 0.0
	for i := 0; i < len(weights) && i < len(history); i++ {
		s := history[len(history)-1-i]
		accuracy += weights[i] * s.Accuracy
		weightSum += weights[i]
	}
	accuracy /= weightSum

	trend := 0.0
	if len(history) >= 2 {
		from := max(0, len(history)-evaluateWindow)
		trend = history[len(history)-1].Accuracy - history[from].Accuracy
	}

	err := accuracy - target

	multiplier := clamp(1+err/50+trend*0.005, 0.5, 1.5)
	complexity := clamp(err/100, -0.1, 0.2)
	pacing := int(clamp(math.Round(-err/10), -1, 2))

	depth := min(1, float64(len(history))/6)
	closeness := 1 / (1 + math.Abs(err)/25)

	return Adjustment{
		MatchRateMultiplier:  multiplier,
		ComplexityBonusDelta: complexity,
		PacingDelta:          pacing,
		Confidence:           depth * closeness,
	}
}

// ApplyStreamRule is the single-snapshot rule streaming generators use
// between full derivations: one step harder on a strong snapshot, one
// step easier on a weak one.
func ApplyStreamRule(s performance.Snapshot) (multiplier, complexityDelta float64, changed bool) {
	if s.TotalAttempts == 0 {
		return 1, 0, false
	}
	if s.Accuracy > 85 && s.MissedRate() < 0.10 {
		return 1.2, 0.05, true
	}
	if s.Accuracy < 60 || s.MissedRate() > 0.30 {
		return 0.8, -0.05, true
	}
	return 1, 0, false
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
