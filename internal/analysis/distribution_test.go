package analysis

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/louisbranch/nback-engine/internal/stimulus"
)

func TestAnalyzeDistribution_PerfectlyEven(t *testing.T) {
	// nLevel=1. Position matches every 3 rounds at 3, 6, 9, 12; audio
	// matches offset at 2, 5, 8, 11.
	seq := buildSequence(t,
		[]int{0, 1, 2, 2, 3, 4, 4, 5, 6, 6, 7, 8, 8},
		[]int{0, 1, 1, 2, 3, 3, 4, 5, 5, 6, 7, 7, 0},
	)

	r := AnalyzeDistribution(seq, 1)

	if want := []int{3, 3, 3}; !reflect.DeepEqual(r.PositionSpacings, want) {
		t.Errorf("PositionSpacings = %v, want %v", r.PositionSpacings, want)
	}
	if want := []int{3, 3, 3}; !reflect.DeepEqual(r.AudioSpacings, want) {
		t.Errorf("AudioSpacings = %v, want %v", r.AudioSpacings, want)
	}
	if r.PositionVariance != 0 || r.AudioVariance != 0 {
		t.Errorf("variances = (%v, %v), want both 0", r.PositionVariance, r.AudioVariance)
	}
	if !approx(r.Score, 100) {
		t.Errorf("Score = %v, want 100", r.Score)
	}
}

func TestAnalyzeDistribution_UnevenSpacing(t *testing.T) {
	// nLevel=1. Position matches bunch at 1, 2 then jump to 11:
	// spacings [1, 9], mean 5, variance 16, relative 16/25.
	seq := buildSequence(t,
		[]int{0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 8},
		[]int{0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3},
	)

	r := AnalyzeDistribution(seq, 1)

	if want := []int{1, 9}; !reflect.DeepEqual(r.PositionSpacings, want) {
		t.Errorf("PositionSpacings = %v, want %v", r.PositionSpacings, want)
	}
	if len(r.AudioSpacings) != 0 {
		t.Errorf("AudioSpacings = %v, want none", r.AudioSpacings)
	}
	if !approx(r.PositionVariance, 0.64) {
		t.Errorf("PositionVariance = %v, want 0.64", r.PositionVariance)
	}
	if !approx(r.MeanVariance, 0.32) {
		t.Errorf("MeanVariance = %v, want 0.32", r.MeanVariance)
	}
	if !approx(r.Score, 92) {
		t.Errorf("Score = %v, want 92", r.Score)
	}
}

func TestAnalyzeDistribution_NoEligibleRounds(t *testing.T) {
	seq := buildSequence(t, []int{0, 1}, []int{0, 1})

	r := AnalyzeDistribution(seq, 2)

	if r.Score != 0 {
		t.Errorf("Score = %v, want 0 for an unscorable sequence", r.Score)
	}
	if r.PositionSpacings != nil || r.AudioSpacings != nil {
		t.Errorf("spacings = (%v, %v), want none", r.PositionSpacings, r.AudioSpacings)
	}
}

func TestAnalyzeDistribution_MediumSequencesScoreWell(t *testing.T) {
	req := stimulus.GenerateRequest{
		Length:         100,
		GridSize:       3,
		NLevel:         2,
		PositionRate:   0.30,
		AudioRate:      0.30,
		MaxConsecutive: 2,
		MinGap:         1,
		OverlapBonus:   0.15,
	}

	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result, err := stimulus.Generate(rng, fixedClock(), req)
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}

		r := AnalyzeDistribution(result.Sequence, req.NLevel)
		if r.Score < 60 {
			t.Fatalf("seed %d: Score = %v, want at least 60", seed, r.Score)
		}
	}
}
