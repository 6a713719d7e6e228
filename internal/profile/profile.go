// Package profile defines named difficulty profiles for sequence
// generation.
//
// A profile bundles the match-rate and spacing parameters the stimulus
// pipeline consumes. Sessions start from a named preset and let the
// adaptive controller steer the effective values from there; the
// presets themselves never change mid-session.
package profile

import (
	"fmt"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// Name identifies a difficulty profile.
type Name string

const (
	// NameEasy keeps matches sparse and well separated.
	NameEasy Name = "easy"

	// NameMedium is the default training difficulty.
	NameMedium Name = "medium"

	// NameHard raises match density and overlap appetite.
	NameHard Name = "hard"
)

// Bounds for adaptively tuned profile values. Rates and bonuses are
// clamped here when an Adjustment is applied so a runaway feedback
// loop can never starve or flood the plan.
const (
	MinAdjustedRate    = 0.05
	MaxAdjustedRate    = 0.60
	MaxAdjustedOverlap = 0.50
)

// Profile holds the generation parameters for one difficulty tier.
type Profile struct {
	PositionMatchRate float64 // target matches per eligible round
	AudioMatchRate    float64
	MaxConsecutive    int     // longest allowed run of adjacent matches
	MinGap            int     // minimum index distance between matches
	OverlapBonus      float64 // additive appetite for simultaneous matches
}

// Get returns the preset for a name. Unknown names fall back to the
// medium preset; callers that must distinguish unknown names use a
// Table instead.
func Get(name Name) Profile {
	switch name {
	case NameEasy:
		return Profile{
			PositionMatchRate: 0.20,
			AudioMatchRate:    0.20,
			MaxConsecutive:    2,
			MinGap:            2,
			OverlapBonus:      0,
		}

	case NameHard:
		return Profile{
			PositionMatchRate: 0.40,
			AudioMatchRate:    0.40,
			MaxConsecutive:    3,
			MinGap:            1,
			OverlapBonus:      0.30,
		}

	default:
		return Profile{
			PositionMatchRate: 0.30,
			AudioMatchRate:    0.30,
			MaxConsecutive:    2,
			MinGap:            1,
			OverlapBonus:      0.15,
		}
	}
}

// Validate checks that every profile field is inside its allowed
// range.
func (p Profile) Validate() error {
	for _, rate := range []float64{p.PositionMatchRate, p.AudioMatchRate} {
		if rate <= 0 || rate > 1 {
			return apperrors.WithMetadata(apperrors.CodeInvalidMatchRate,
				fmt.Sprintf("match rate %.3f is outside (0, 1]", rate),
				map[string]string{"Rate": fmt.Sprintf("%.3f", rate)})
		}
	}
	if p.MinGap < 1 {
		return apperrors.WithMetadata(apperrors.CodeInvalidGap,
			fmt.Sprintf("minimum gap %d is below 1", p.MinGap),
			map[string]string{"MinGap": fmt.Sprintf("%d", p.MinGap)})
	}
	if p.MaxConsecutive < 1 {
		return apperrors.WithMetadata(apperrors.CodeInvalidConsecutive,
			fmt.Sprintf("maximum consecutive %d is below 1", p.MaxConsecutive),
			map[string]string{"MaxConsecutive": fmt.Sprintf("%d", p.MaxConsecutive)})
	}
	if p.OverlapBonus < 0 || p.OverlapBonus > 0.5 {
		return apperrors.WithMetadata(apperrors.CodeInvalidOverlapBonus,
			fmt.Sprintf("overlap bonus %.3f is outside [0, 0.5]", p.OverlapBonus),
			map[string]string{"Bonus": fmt.Sprintf("%.3f", p.OverlapBonus)})
	}
	return nil
}

// Apply returns the profile retuned by a continuous adjustment. Match
// rates scale by the multiplier and the overlap bonus shifts by the
// complexity delta, both clamped; spacing limits are structural and
// never adjusted.
func Apply(p Profile, adj adaptive.Adjustment) Profile {
	out := p
	if adj.MatchRateMultiplier > 0 {
		out.PositionMatchRate = clampRate(p.PositionMatchRate * adj.MatchRateMultiplier)
		out.AudioMatchRate = clampRate(p.AudioMatchRate * adj.MatchRateMultiplier)
	}
	out.OverlapBonus = min(max(p.OverlapBonus+adj.ComplexityBonusDelta, 0), MaxAdjustedOverlap)
	return out
}

func clampRate(rate float64) float64 {
	return min(max(rate, MinAdjustedRate), MaxAdjustedRate)
}
