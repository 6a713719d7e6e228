package stimulus

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// GenerateRequest describes end-to-end sequence generation.
type GenerateRequest struct {
	Length         int // total rounds including the warmup prefix
	GridSize       int
	NLevel         int
	PositionRate   float64 // target matches per eligible round
	AudioRate      float64
	MaxConsecutive int
	MinGap         int
	OverlapBonus   float64
	Engaging       bool
}

// GenerateResult carries the sequence, the plan it realizes, and the
// achieved per-channel match counts.
type GenerateResult struct {
	Sequence       Sequence
	Plan           MatchPlan
	PositionPlaced int
	AudioPlaced    int
}

// Generate composes and materializes a complete sequence in one call.
//
// Per-channel targets are the eligible round count scaled by the match
// rates, rounded to nearest. Constraint pressure can leave the plan
// short of a target; the achieved counts are reported on the result so
// callers can tell. Invalid parameters are the only errors: a sequence
// no longer than the n-back level has nothing to score and is rejected
// rather than silently producing an unscorable warmup.
func Generate(rng *rand.Rand, now func() time.Time, req GenerateRequest) (GenerateResult, error) {
	if err := validateGenerate(req); err != nil {
		return GenerateResult{}, err
	}

	eligible := req.Length - req.NLevel
	plan := Compose(rng, ComposeRequest{
		Length:         eligible,
		PositionTarget: int(math.Round(float64(eligible) * req.PositionRate)),
		AudioTarget:    int(math.Round(float64(eligible) * req.AudioRate)),
		MaxConsecutive: req.MaxConsecutive,
		MinGap:         req.MinGap,
		NLevel:         req.NLevel,
		OverlapBonus:   req.OverlapBonus,
	})

	seq, err := Materialize(rng, now, MaterializeRequest{
		Plan:     plan,
		NLevel:   req.NLevel,
		GridSize: req.GridSize,
		Engaging: req.Engaging,
	})
	if err != nil {
		return GenerateResult{}, err
	}

	positionPlaced, audioPlaced := plan.Counts()
	return GenerateResult{
		Sequence:       seq,
		Plan:           plan,
		PositionPlaced: positionPlaced,
		AudioPlaced:    audioPlaced,
	}, nil
}

func validateGenerate(req GenerateRequest) error {
	if req.NLevel < 1 {
		return apperrors.WithMetadata(apperrors.CodeInvalidNLevel,
			fmt.Sprintf("n-back level %d is below 1", req.NLevel),
			map[string]string{"NLevel": fmt.Sprintf("%d", req.NLevel)})
	}
	if req.Length <= req.NLevel {
		return apperrors.WithMetadata(apperrors.CodeNoEligibleRounds,
			fmt.Sprintf("length %d leaves no eligible rounds at n-back level %d", req.Length, req.NLevel),
			map[string]string{"Length": fmt.Sprintf("%d", req.Length), "NLevel": fmt.Sprintf("%d", req.NLevel)})
	}
	if req.GridSize < 2 {
		return apperrors.WithMetadata(apperrors.CodeGridTooSmall,
			fmt.Sprintf("grid size %d cannot host non-matching positions", req.GridSize),
			map[string]string{"GridSize": fmt.Sprintf("%d", req.GridSize)})
	}
	for _, rate := range []float64{req.PositionRate, req.AudioRate} {
		if rate < 0 || rate > 1 {
			return apperrors.WithMetadata(apperrors.CodeInvalidMatchRate,
				fmt.Sprintf("match rate %.3f is outside [0, 1]", rate),
				map[string]string{"Rate": fmt.Sprintf("%.3f", rate)})
		}
	}
	if req.MinGap < 1 {
		return apperrors.WithMetadata(apperrors.CodeInvalidGap,
			fmt.Sprintf("minimum gap %d is below 1", req.MinGap),
			map[string]string{"MinGap": fmt.Sprintf("%d", req.MinGap)})
	}
	if req.MaxConsecutive < 1 {
		return apperrors.WithMetadata(apperrors.CodeInvalidConsecutive,
			fmt.Sprintf("maximum consecutive %d is below 1", req.MaxConsecutive),
			map[string]string{"MaxConsecutive": fmt.Sprintf("%d", req.MaxConsecutive)})
	}
	if req.OverlapBonus < 0 || req.OverlapBonus > 0.5 {
		return apperrors.WithMetadata(apperrors.CodeInvalidOverlapBonus,
			fmt.Sprintf("overlap bonus %.3f is outside [0, 0.5]", req.OverlapBonus),
			map[string]string{"Bonus": fmt.Sprintf("%.3f", req.OverlapBonus)})
	}
	return nil
}
