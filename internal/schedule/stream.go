package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	"github.com/louisbranch/nback-engine/internal/performance"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/random"
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// defaultStreamSegment is the forward-plan size when the config leaves
// it unset.
const defaultStreamSegment = 5

// StreamConfig configures an open-ended streaming generator.
type StreamConfig struct {
	GridSize    int
	NLevel      int
	Profile     profile.Profile
	SegmentSize int // eligible rounds planned ahead, default 5
	Engaging    bool
	Seed        int64 // 0 draws a fresh seed
	Now         func() time.Time
}

// StreamGenerator emits an unbounded stimulus stream.
//
// The generator keeps a cursor and a small forward plan. Next hands
// out the round under the cursor and advances; Peek returns it without
// advancing, and repeated peeks see the same round until it is emitted
// or the plan is invalidated. UpdateConfig folds a live snapshot rule
// into the profile and rebuilds only the unemitted tail of the
// in-flight segment, so emitted rounds are never retracted.
type StreamGenerator struct {
	cfg     StreamConfig
	rng     *rand.Rand
	seed    int64
	prof    profile.Profile
	seq     stimulus.Sequence // emitted rounds plus the forward plan
	emitted int               // cursor into seq
}

// NewStream validates the configuration and prepares a generator. No
// rounds are materialized until the first Next or Peek.
func NewStream(cfg StreamConfig) (*StreamGenerator, error) {
	if cfg.NLevel < 1 {
		return nil, stimulus.ErrInvalidNLevel
	}
	if cfg.GridSize < 2 {
		return nil, stimulus.ErrGridTooSmall
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	if cfg.SegmentSize < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidSegmentSize,
			fmt.Sprintf("segment size %d is negative", cfg.SegmentSize),
			map[string]string{"SegmentSize": fmt.Sprintf("%d", cfg.SegmentSize)})
	}
	if cfg.SegmentSize == 0 {
		cfg.SegmentSize = defaultStreamSegment
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rng, seed := random.NewRand(cfg.Seed)
	return &StreamGenerator{
		cfg:  cfg,
		rng:  rng,
		seed: seed,
		prof: cfg.Profile,
	}, nil
}

// Next returns the round under the cursor and advances past it.
func (g *StreamGenerator) Next() (stimulus.Stimulus, error) {
	if err := g.extend(); err != nil {
		return stimulus.Stimulus{}, err
	}
	st := g.seq[g.emitted]
	g.emitted++
	return st, nil
}

// Peek returns the round under the cursor without advancing. The
// returned round is stable across peeks but may change if UpdateConfig
// replans the tail before it is emitted.
func (g *StreamGenerator) Peek() (stimulus.Stimulus, error) {
	if err := g.extend(); err != nil {
		return stimulus.Stimulus{}, err
	}
	return g.seq[g.emitted], nil
}

// UpdateConfig folds a live snapshot into the profile and replans the
// unemitted tail of the in-flight segment. It reports whether the
// rule fired; an unchanged profile leaves the forward plan untouched.
func (g *StreamGenerator) UpdateConfig(s performance.Snapshot) bool {
	multiplier, complexityDelta, changed := adaptive.ApplyStreamRule(s)
	if !changed {
		return false
	}
	g.prof = profile.Apply(g.prof, adaptive.Adjustment{
		MatchRateMultiplier:  multiplier,
		ComplexityBonusDelta: complexityDelta,
	})

	// Warmup rounds carry no match semantics, so the replan cut never
	// reaches into them even when they are still unemitted.
	cut := g.emitted
	if cut < g.cfg.NLevel && len(g.seq) >= g.cfg.NLevel {
		cut = g.cfg.NLevel
	}
	remaining := len(g.seq) - cut
	if remaining <= 0 {
		return true
	}

	plan := g.composeSegment(remaining)
	seq, err := stimulus.MaterializeSegment(g.rng, g.cfg.Now, g.seq[:cut], plan, g.cfg.NLevel, g.cfg.GridSize, g.cfg.Engaging)
	if err != nil {
		return true
	}
	g.seq = seq
	return true
}

// Emitted returns how many rounds Next has handed out, warmup
// included.
func (g *StreamGenerator) Emitted() int {
	return g.emitted
}

// Sequence returns a copy of the emitted rounds. The forward plan is
// excluded: unemitted rounds are still subject to replanning and are
// not ground truth yet.
func (g *StreamGenerator) Sequence() stimulus.Sequence {
	out := make(stimulus.Sequence, g.emitted)
	copy(out, g.seq[:g.emitted])
	return out
}

// Profile returns the live profile.
func (g *StreamGenerator) Profile() profile.Profile {
	return g.prof
}

// Seed returns the resolved random seed for replay records.
func (g *StreamGenerator) Seed() int64 {
	return g.seed
}

// extend materializes the next segment once the cursor catches up
// with the forward plan.
func (g *StreamGenerator) extend() error {
	if g.emitted < len(g.seq) {
		return nil
	}
	plan := g.composeSegment(g.cfg.SegmentSize)
	seq, err := stimulus.MaterializeSegment(g.rng, g.cfg.Now, g.seq, plan, g.cfg.NLevel, g.cfg.GridSize, g.cfg.Engaging)
	if err != nil {
		return err
	}
	g.seq = seq
	return nil
}

func (g *StreamGenerator) composeSegment(length int) stimulus.MatchPlan {
	return stimulus.Compose(g.rng, stimulus.ComposeRequest{
		Length:         length,
		PositionTarget: roundTarget(length, g.prof.PositionMatchRate),
		AudioTarget:    roundTarget(length, g.prof.AudioMatchRate),
		MaxConsecutive: g.prof.MaxConsecutive,
		MinGap:         g.prof.MinGap,
		NLevel:         g.cfg.NLevel,
		OverlapBonus:   g.prof.OverlapBonus,
	})
}
