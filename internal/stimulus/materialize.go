package stimulus

import (
	"fmt"
	"math/rand"
	"time"

	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// engagingRedraws bounds how often a non-match value is resampled to
// avoid nearby repeats. The cap keeps materialization O(1) per round
// even on small domains where repeats are unavoidable.
const engagingRedraws = 8

// MaterializeRequest binds a match plan to concrete stimulus values.
type MaterializeRequest struct {
	Plan     MatchPlan
	NLevel   int
	GridSize int
	Engaging bool // resample values that repeat too often nearby
}

// Materialize realizes a plan into a full sequence.
//
// The first NLevel rounds are a uniformly drawn warmup with no match
// semantics. Every eligible round then either copies the value from
// NLevel rounds back (planned match) or draws uniformly from the rest
// of the domain (planned non-match), so the materialized sequence
// reproduces the plan exactly on both channels. With Engaging set,
// non-match draws are additionally resampled away from values that
// already appeared twice in the recent window, which keeps lures
// varied without ever violating the plan.
func Materialize(rng *rand.Rand, now func() time.Time, req MaterializeRequest) (Sequence, error) {
	return MaterializeSegment(rng, now, nil, req.Plan, req.NLevel, req.GridSize, req.Engaging)
}

// MaterializeSegment extends prior with the rounds of segment.
//
// N-back lookups reach into prior, so a sequence built segment by
// segment behaves exactly like one materialized in a single call. An
// empty prior starts a fresh sequence, warmup included. A non-empty
// prior must already cover the warmup, otherwise the lookback is
// undefined. The returned sequence is a new slice; prior is never
// mutated.
func MaterializeSegment(rng *rand.Rand, now func() time.Time, prior Sequence, segment MatchPlan, nLevel, gridSize int, engaging bool) (Sequence, error) {
	if nLevel < 1 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidNLevel,
			fmt.Sprintf("n-back level %d is below 1", nLevel),
			map[string]string{"NLevel": fmt.Sprintf("%d", nLevel)})
	}
	if gridSize < 2 {
		return nil, apperrors.WithMetadata(apperrors.CodeGridTooSmall,
			fmt.Sprintf("grid size %d cannot host non-matching positions", gridSize),
			map[string]string{"GridSize": fmt.Sprintf("%d", gridSize)})
	}
	if len(prior) > 0 && len(prior) < nLevel {
		return nil, apperrors.WithMetadata(apperrors.CodeNoEligibleRounds,
			fmt.Sprintf("prior sequence of %d rounds is shorter than n-back level %d", len(prior), nLevel),
			map[string]string{"Length": fmt.Sprintf("%d", len(prior)), "NLevel": fmt.Sprintf("%d", nLevel)})
	}
	if now == nil {
		now = time.Now
	}

	positionDomain := gridSize * gridSize

	seq := make(Sequence, 0, len(prior)+nLevel+segment.Len())
	seq = append(seq, prior...)

	if len(seq) == 0 {
		for i := 0; i < nLevel; i++ {
			pos := drawWarmup(rng, positionDomain, seq, ChannelPosition, nLevel, engaging)
			aud := drawWarmup(rng, AudioIndexCount, seq, ChannelAudio, nLevel, engaging)
			seq = append(seq, Stimulus{PositionIndex: pos, AudioIndex: aud, EmittedAt: now()})
		}
	}

	for k := 0; k < segment.Len(); k++ {
		back := seq[len(seq)-nLevel]
		pos := valueFor(rng, segment.Position, k, positionDomain, back.PositionIndex, seq, ChannelPosition, nLevel, engaging)
		aud := valueFor(rng, segment.Audio, k, AudioIndexCount, back.AudioIndex, seq, ChannelAudio, nLevel, engaging)
		seq = append(seq, Stimulus{PositionIndex: pos, AudioIndex: aud, EmittedAt: now()})
	}

	return seq, nil
}

// valueFor realizes one channel of one eligible round.
func valueFor(rng *rand.Rand, planned []bool, k, domain, back int, seq Sequence, ch Channel, nLevel int, engaging bool) int {
	if k < len(planned) && planned[k] {
		return back
	}
	v := drawNonMatch(rng, domain, back)
	if !engaging {
		return v
	}
	for attempt := 0; attempt < engagingRedraws && recentCount(seq, ch, nLevel, v) >= 2; attempt++ {
		v = drawNonMatch(rng, domain, back)
	}
	return v
}

// drawNonMatch draws uniformly from [0, domain) excluding the value
// that would create a match. The offset trick keeps the draw exact
// without a rejection loop.
func drawNonMatch(rng *rand.Rand, domain, exclude int) int {
	v := rng.Intn(domain - 1)
	if v >= exclude {
		v++
	}
	return v
}

// drawWarmup draws a warmup value with no match constraint.
func drawWarmup(rng *rand.Rand, domain int, seq Sequence, ch Channel, nLevel int, engaging bool) int {
	v := rng.Intn(domain)
	if !engaging {
		return v
	}
	for attempt := 0; attempt < engagingRedraws && recentCount(seq, ch, nLevel, v) >= 2; attempt++ {
		v = rng.Intn(domain)
	}
	return v
}

// recentCount counts occurrences of value on one channel within the
// last 2*nLevel rounds of seq.
func recentCount(seq Sequence, ch Channel, nLevel, value int) int {
	count := 0
	for i := max(0, len(seq)-2*nLevel); i < len(seq); i++ {
		v := seq[i].PositionIndex
		if ch == ChannelAudio {
			v = seq[i].AudioIndex
		}
		if v == value {
			count++
		}
	}
	return count
}
