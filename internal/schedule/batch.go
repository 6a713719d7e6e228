// Package schedule plans sequences segment by segment.
//
// Two schedulers cover the adaptive variants. BatchPlanner partitions
// a fixed-length session into segments and recomputes its difficulty
// profile at every boundary from recent performance snapshots.
// StreamGenerator produces an open-ended stream with a small forward
// plan that a live rule can replan mid-segment. Both own their random
// source and cursor, so concurrent sessions never share state, and
// both extend sequences through MaterializeSegment so n-back lookups
// cross segment boundaries transparently. Rounds already handed out
// are never retracted; replanning only ever touches the unemitted
// tail.
package schedule

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	"github.com/louisbranch/nback-engine/internal/performance"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/random"
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// minSegmentSize is the smallest eligible-round count a batch segment
// is allowed to shrink to.
const minSegmentSize = 5

// recentSnapshotWindow is how many snapshots a boundary recompute
// reads from the fold history.
const recentSnapshotWindow = 3

// ErrExhausted indicates every segment has already been planned.
var ErrExhausted = apperrors.New(apperrors.CodeSessionComplete, "all segments have been planned")

// BatchConfig configures a fixed-length batch planner.
type BatchConfig struct {
	Length   int // total rounds including the warmup prefix
	GridSize int
	NLevel   int
	Base     profile.Profile // session-start profile, recompute fallback
	Engaging bool
	Seed     int64 // 0 draws a fresh seed
	Now      func() time.Time
}

// BatchPlanner materializes a session one segment at a time.
//
// Each call to NextSegment derives the profile for the upcoming
// segment from the most recent folded snapshots, composes a plan for
// just that segment, and extends the sequence. The first segment
// carries the warmup prefix. Callers feed snapshots in with Fold; a
// planner that never sees one keeps using its base profile.
type BatchPlanner struct {
	cfg     BatchConfig
	rng     *rand.Rand
	seed    int64
	segment int // eligible rounds per segment
	current profile.Profile

	seq     stimulus.Sequence
	plan    stimulus.MatchPlan
	planned int // eligible rounds planned so far
	history *performance.History
}

// NewBatch validates the configuration and prepares a planner. No
// rounds are materialized until the first NextSegment call.
func NewBatch(cfg BatchConfig) (*BatchPlanner, error) {
	if cfg.NLevel < 1 {
		return nil, stimulus.ErrInvalidNLevel
	}
	if cfg.Length <= cfg.NLevel {
		return nil, stimulus.ErrNoEligibleRounds
	}
	if cfg.GridSize < 2 {
		return nil, stimulus.ErrGridTooSmall
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	eligible := cfg.Length - cfg.NLevel
	segment := eligible / 4
	if segment < minSegmentSize {
		segment = minSegmentSize
	}

	rng, seed := random.NewRand(cfg.Seed)
	return &BatchPlanner{
		cfg:     cfg,
		rng:     rng,
		seed:    seed,
		segment: segment,
		current: cfg.Base,
		history: performance.NewHistory(performance.DefaultHistoryLimit),
	}, nil
}

// NextSegment plans and materializes the next segment, returning only
// the newly added rounds. The profile for the segment is recomputed
// from the recent snapshot history against the base profile; with no
// history the base applies as-is.
func (b *BatchPlanner) NextSegment(ctx context.Context) (stimulus.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	remaining := b.eligible() - b.planned
	if remaining <= 0 {
		return nil, ErrExhausted
	}

	size := b.segment
	if size > remaining {
		size = remaining
	}
	b.current = b.segmentProfile()

	plan := stimulus.Compose(b.rng, stimulus.ComposeRequest{
		Length:         size,
		PositionTarget: roundTarget(size, b.current.PositionMatchRate),
		AudioTarget:    roundTarget(size, b.current.AudioMatchRate),
		MaxConsecutive: b.current.MaxConsecutive,
		MinGap:         b.current.MinGap,
		NLevel:         b.cfg.NLevel,
		OverlapBonus:   b.current.OverlapBonus,
	})

	seq, err := stimulus.MaterializeSegment(b.rng, b.cfg.Now, b.seq, plan, b.cfg.NLevel, b.cfg.GridSize, b.cfg.Engaging)
	if err != nil {
		return nil, err
	}

	added := seq[len(b.seq):]
	b.seq = seq
	b.plan.Position = append(b.plan.Position, plan.Position...)
	b.plan.Audio = append(b.plan.Audio, plan.Audio...)
	b.planned += size
	return added, nil
}

// Fold records a performance snapshot for the next boundary recompute.
func (b *BatchPlanner) Fold(s performance.Snapshot) {
	b.history.Push(s)
}

// Done reports whether every eligible round has been planned.
func (b *BatchPlanner) Done() bool {
	return b.planned >= b.eligible()
}

// Sequence returns a copy of all rounds materialized so far.
func (b *BatchPlanner) Sequence() stimulus.Sequence {
	out := make(stimulus.Sequence, len(b.seq))
	copy(out, b.seq)
	return out
}

// Plan returns a copy of the accumulated match plan.
func (b *BatchPlanner) Plan() stimulus.MatchPlan {
	return b.plan.Clone()
}

// Profile returns the profile used for the most recent segment, or
// the base profile before any segment has been planned.
func (b *BatchPlanner) Profile() profile.Profile {
	return b.current
}

// Seed returns the resolved random seed for replay records.
func (b *BatchPlanner) Seed() int64 {
	return b.seed
}

func (b *BatchPlanner) eligible() int {
	return b.cfg.Length - b.cfg.NLevel
}

// segmentProfile folds the recent snapshot history into the base
// profile. Adjustments always derive against the base, not the
// previous segment's profile, so a recovering trainee walks back to
// baseline instead of compounding penalties.
func (b *BatchPlanner) segmentProfile() profile.Profile {
	recent := b.history.Last(recentSnapshotWindow)
	if len(recent) == 0 {
		return b.cfg.Base
	}
	adj := adaptive.Derive(recent, b.cfg.NLevel)
	return profile.Apply(b.cfg.Base, adj)
}

func roundTarget(length int, rate float64) int {
	return int(math.Round(float64(length) * rate))
}
