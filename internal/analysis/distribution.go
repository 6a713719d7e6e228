package analysis

import (
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// DistributionReport describes how evenly matches are spread over a
// sequence, per channel and combined.
type DistributionReport struct {
	PositionSpacings []int // rounds between consecutive position matches
	AudioSpacings    []int
	PositionVariance float64 // relative variance of the spacings
	AudioVariance    float64
	MeanVariance     float64
	Score            float64 // 0..100, higher is more even
}

// AnalyzeDistribution measures the spread of match-to-match spacings
// on each channel. Variance is normalized by the squared mean spacing,
// so the score compares sequences across match rates and lengths. A
// channel with fewer than two matches has no spacings and contributes
// zero variance.
func AnalyzeDistribution(seq stimulus.Sequence, nLevel int) DistributionReport {
	var r DistributionReport
	if seq.EligibleRounds(nLevel) == 0 {
		return r
	}

	r.PositionSpacings = matchSpacings(seq, stimulus.ChannelPosition, nLevel)
	r.AudioSpacings = matchSpacings(seq, stimulus.ChannelAudio, nLevel)
	r.PositionVariance = relativeVariance(r.PositionSpacings)
	r.AudioVariance = relativeVariance(r.AudioSpacings)
	r.MeanVariance = (r.PositionVariance + r.AudioVariance) / 2

	r.Score = 100 * (1 - r.MeanVariance/4)
	if r.Score < 0 {
		r.Score = 0
	}
	return r
}

func matchSpacings(seq stimulus.Sequence, ch stimulus.Channel, nLevel int) []int {
	var spacings []int
	prev := -1
	for i := nLevel; i < len(seq); i++ {
		if !seq.MatchOn(ch, i, nLevel) {
			continue
		}
		if prev >= 0 {
			spacings = append(spacings, i-prev)
		}
		prev = i
	}
	return spacings
}

// relativeVariance is the variance of the spacings divided by the
// squared mean spacing. Zero when there are fewer than two spacings.
func relativeVariance(spacings []int) float64 {
	if len(spacings) < 2 {
		return 0
	}
	var sum float64
	for _, s := range spacings {
		sum += float64(s)
	}
	mean := sum / float64(len(spacings))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, s := range spacings {
		d := float64(s) - mean
		sq += d * d
	}
	variance := sq / float64(len(spacings))
	return variance / (mean * mean)
}
