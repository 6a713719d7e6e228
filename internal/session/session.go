// Package session runs one dual n-back training session end to end.
//
// A Session binds a scheduler, a response log, and the adaptive
// controller behind a single emit/submit surface. Next hands out
// rounds one at a time from either a batch planner or a streaming
// generator; Submit classifies the trainee's response against the
// round most recently emitted. Every few responses the session folds
// the log into a performance snapshot, refreshes the adaptive
// guidance, and feeds the snapshot back into the scheduler: batch
// sessions pick the change up at the next segment boundary, streaming
// sessions replan their unemitted tail immediately.
//
// A Session is not safe for concurrent use. Run one goroutine per
// session, or serialize access externally.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	"github.com/louisbranch/nback-engine/internal/id"
	"github.com/louisbranch/nback-engine/internal/performance"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/response"
	"github.com/louisbranch/nback-engine/internal/schedule"
	"github.com/louisbranch/nback-engine/internal/stimulus"
	"github.com/louisbranch/nback-engine/internal/telemetry"
)

// Mode selects the scheduling strategy for a session.
type Mode int

const (
	// ModeUnspecified represents an invalid session mode value.
	ModeUnspecified Mode = iota
	// ModeBatch partitions a fixed-length session into segments and
	// picks up difficulty changes at segment boundaries.
	ModeBatch
	// ModeStreaming plans a short forward window and replans it
	// mid-segment as snapshots arrive.
	ModeStreaming
)

func (m Mode) String() string {
	switch m {
	case ModeUnspecified:
		return "Unspecified"
	case ModeBatch:
		return "Batch"
	case ModeStreaming:
		return "Streaming"
	default:
		return "Unknown"
	}
}

const (
	// DefaultSnapshotEvery is how many responses pass between
	// snapshot captures when the config leaves it unset.
	DefaultSnapshotEvery = 5
	// DefaultSnapshotWindow is the trailing record count a capture
	// aggregates when the config leaves it unset.
	DefaultSnapshotWindow = 10
)

var (
	// ErrNotStarted indicates a response arrived before any round.
	ErrNotStarted = apperrors.New(apperrors.CodeSessionNotStarted, "no round has been emitted yet")
	// ErrComplete indicates every round has already been emitted.
	ErrComplete = apperrors.New(apperrors.CodeSessionComplete, "session has emitted every round")
	// ErrInvalidChannel indicates a response named no real channel.
	ErrInvalidChannel = apperrors.New(apperrors.CodeSessionInvalidChannel, "responses must name the position or audio channel")
)

// Config configures a training session.
type Config struct {
	NLevel   int
	GridSize int
	Rounds   int // total rounds including the warmup prefix
	Profile  profile.Profile
	Mode     Mode

	SnapshotEvery  int // responses between captures, default 5
	SnapshotWindow int // trailing records per capture, default 10

	Engaging bool
	Seed     int64 // 0 draws a fresh seed

	Now       func() time.Time
	Telemetry telemetry.Sink
}

// Session orchestrates one training run. Emitted rounds are the
// scoring ground truth; they are never retracted, whatever the
// scheduler replans behind them.
type Session struct {
	cfg     Config
	id      string
	now     func() time.Time
	emitter *telemetry.Emitter

	batch  *schedule.BatchPlanner
	stream *schedule.StreamGenerator

	buffered stimulus.Sequence // batch rounds materialized but not yet emitted

	seq          stimulus.Sequence
	records      []response.Record
	history      *performance.History
	sinceCapture int

	snapshot    performance.Snapshot
	hasSnapshot bool
	decision    adaptive.Decision
	adjustment  adaptive.Adjustment

	started   bool
	completed bool
}

// New validates the configuration and prepares a session. No rounds
// are materialized until the first Next or Peek.
func New(cfg Config) (*Session, error) {
	switch cfg.Mode {
	case ModeBatch, ModeStreaming:
	default:
		return nil, apperrors.WithMetadata(apperrors.CodeSessionInvalidMode,
			fmt.Sprintf("mode %d is not a session mode", cfg.Mode),
			map[string]string{"Mode": cfg.Mode.String()})
	}
	if cfg.NLevel < 1 {
		return nil, stimulus.ErrInvalidNLevel
	}
	if cfg.Rounds <= cfg.NLevel {
		return nil, stimulus.ErrNoEligibleRounds
	}
	if cfg.SnapshotEvery < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeSnapshotWindowInvalid,
			fmt.Sprintf("snapshot cadence %d is negative", cfg.SnapshotEvery),
			map[string]string{"Window": fmt.Sprintf("%d", cfg.SnapshotEvery)})
	}
	if cfg.SnapshotWindow < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeSnapshotWindowInvalid,
			fmt.Sprintf("snapshot window %d is negative", cfg.SnapshotWindow),
			map[string]string{"Window": fmt.Sprintf("%d", cfg.SnapshotWindow)})
	}
	if cfg.SnapshotEvery == 0 {
		cfg.SnapshotEvery = DefaultSnapshotEvery
	}
	if cfg.SnapshotWindow == 0 {
		cfg.SnapshotWindow = DefaultSnapshotWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	sessionID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s := &Session{
		cfg:     cfg,
		id:      sessionID,
		now:     cfg.Now,
		emitter: telemetry.NewEmitter(cfg.Telemetry),
		history: performance.NewHistory(performance.DefaultHistoryLimit),
	}

	switch cfg.Mode {
	case ModeBatch:
		planner, err := schedule.NewBatch(schedule.BatchConfig{
			Length:   cfg.Rounds,
			GridSize: cfg.GridSize,
			NLevel:   cfg.NLevel,
			Base:     cfg.Profile,
			Engaging: cfg.Engaging,
			Seed:     cfg.Seed,
			Now:      cfg.Now,
		})
		if err != nil {
			return nil, err
		}
		s.batch = planner
	case ModeStreaming:
		gen, err := schedule.NewStream(schedule.StreamConfig{
			GridSize: cfg.GridSize,
			NLevel:   cfg.NLevel,
			Profile:  cfg.Profile,
			Engaging: cfg.Engaging,
			Seed:     cfg.Seed,
			Now:      cfg.Now,
		})
		if err != nil {
			return nil, err
		}
		s.stream = gen
	}
	return s, nil
}

// Next emits the next round. EmittedAt is re-stamped at emission so it
// reflects when the trainee actually saw the round rather than when
// its segment was planned.
func (s *Session) Next(ctx context.Context) (stimulus.Stimulus, error) {
	if err := ctx.Err(); err != nil {
		return stimulus.Stimulus{}, err
	}
	if s.completed {
		return stimulus.Stimulus{}, ErrComplete
	}

	var st stimulus.Stimulus
	switch s.cfg.Mode {
	case ModeBatch:
		if len(s.buffered) == 0 {
			added, err := s.batch.NextSegment(ctx)
			if err != nil {
				return stimulus.Stimulus{}, err
			}
			s.buffered = added
		}
		st = s.buffered[0]
		s.buffered = s.buffered[1:]
	case ModeStreaming:
		next, err := s.stream.Next()
		if err != nil {
			return stimulus.Stimulus{}, err
		}
		st = next
	}

	st.EmittedAt = s.now().UTC()
	s.seq = append(s.seq, st)

	if !s.started {
		s.started = true
		s.emit(ctx, telemetry.Event{
			Name: telemetry.EventSessionStarted,
			Attributes: map[string]any{
				"mode":    s.cfg.Mode.String(),
				"n_level": s.cfg.NLevel,
				"rounds":  s.cfg.Rounds,
				"seed":    s.Seed(),
			},
		})
	}
	if len(s.seq) == s.cfg.Rounds {
		s.completed = true
		s.emit(ctx, telemetry.Event{
			Name:  telemetry.EventSessionCompleted,
			Round: len(s.seq) - 1,
			Attributes: map[string]any{
				"rounds":    len(s.seq),
				"responses": len(s.records),
			},
		})
	}
	return st, nil
}

// Peek returns the next round without emitting it. A batch peek at a
// segment boundary plans the next segment, so snapshots folded after
// the peek only land in later segments; a streaming peek stays
// replannable until the round is actually emitted.
func (s *Session) Peek(ctx context.Context) (stimulus.Stimulus, error) {
	if err := ctx.Err(); err != nil {
		return stimulus.Stimulus{}, err
	}
	if s.completed {
		return stimulus.Stimulus{}, ErrComplete
	}
	if s.cfg.Mode == ModeStreaming {
		return s.stream.Peek()
	}
	if len(s.buffered) == 0 {
		added, err := s.batch.NextSegment(ctx)
		if err != nil {
			return stimulus.Stimulus{}, err
		}
		s.buffered = added
	}
	return s.buffered[0], nil
}

// Submit classifies a response to the most recently emitted round and
// appends it to the log. Every SnapshotEvery responses the log is
// folded into a snapshot and the scheduler fed the result. Responses
// stay valid after the final round has been emitted; only emission
// stops at the session bound.
func (s *Session) Submit(ctx context.Context, ch stimulus.Channel, responded bool, responseTimeMs int) (response.Record, error) {
	if err := ctx.Err(); err != nil {
		return response.Record{}, err
	}
	if ch != stimulus.ChannelPosition && ch != stimulus.ChannelAudio {
		return response.Record{}, ErrInvalidChannel
	}
	if len(s.seq) == 0 {
		return response.Record{}, ErrNotStarted
	}

	round := len(s.seq) - 1
	rec := response.Classify(s.seq, s.cfg.NLevel, round, ch, responded, responseTimeMs)
	s.records = append(s.records, rec)

	s.sinceCapture++
	if s.sinceCapture >= s.cfg.SnapshotEvery {
		s.capture(ctx)
	}
	return rec, nil
}

// capture folds the trailing window into a snapshot, refreshes the
// adaptive guidance, and feeds the scheduler.
func (s *Session) capture(ctx context.Context) {
	s.sinceCapture = 0
	snap := performance.Capture(s.records, s.cfg.SnapshotWindow)
	snap.Difficulty = s.difficulty()
	s.history.Push(snap)
	s.snapshot = snap
	s.hasSnapshot = true

	s.emit(ctx, telemetry.Event{
		Name:  telemetry.EventSnapshotCaptured,
		Round: snap.CapturedAtRound,
		Attributes: map[string]any{
			"accuracy":   snap.Accuracy,
			"missed":     snap.MissedCount,
			"attempts":   snap.TotalAttempts,
			"mean_rt_ms": snap.MeanResponseTimeMs,
			"difficulty": snap.Difficulty,
		},
	})

	s.decision = adaptive.Evaluate(s.history.All(), s.cfg.NLevel)
	s.adjustment = adaptive.Derive(s.history.All(), s.cfg.NLevel)
	if s.decision.ShouldAdjust {
		s.emit(ctx, telemetry.Event{
			Name:  telemetry.EventDifficultyAdjusted,
			Round: snap.CapturedAtRound,
			Attributes: map[string]any{
				"action":     s.decision.Action.String(),
				"urgency":    s.decision.Urgency.String(),
				"reason":     string(s.decision.Reason),
				"confidence": s.decision.Confidence,
			},
		})
	}

	switch s.cfg.Mode {
	case ModeBatch:
		s.batch.Fold(snap)
	case ModeStreaming:
		if s.stream.UpdateConfig(snap) {
			live := s.stream.Profile()
			s.emit(ctx, telemetry.Event{
				Name:  telemetry.EventSegmentReplanned,
				Round: snap.CapturedAtRound,
				Attributes: map[string]any{
					"position_rate": live.PositionMatchRate,
					"audio_rate":    live.AudioMatchRate,
					"overlap_bonus": live.OverlapBonus,
				},
			})
		}
	}
}

// difficulty derives the composite difficulty in effect: the live
// combined match rate relative to the session-start profile, so an
// unadjusted session reads exactly 1.
func (s *Session) difficulty() float64 {
	live := s.Profile()
	base := s.cfg.Profile
	return (live.PositionMatchRate + live.AudioMatchRate) /
		(base.PositionMatchRate + base.AudioMatchRate)
}

func (s *Session) emit(ctx context.Context, evt telemetry.Event) {
	evt.SessionID = s.id
	// Telemetry is advisory. A sink failure never fails the session.
	_ = s.emitter.Emit(ctx, evt)
}

// ID returns the generated session identifier.
func (s *Session) ID() string {
	return s.id
}

// Seed returns the resolved random seed for replay records.
func (s *Session) Seed() int64 {
	if s.cfg.Mode == ModeStreaming {
		return s.stream.Seed()
	}
	return s.batch.Seed()
}

// Profile returns the difficulty profile currently in effect.
func (s *Session) Profile() profile.Profile {
	if s.cfg.Mode == ModeStreaming {
		return s.stream.Profile()
	}
	return s.batch.Profile()
}

// Done reports whether every round has been emitted.
func (s *Session) Done() bool {
	return s.completed
}

// Emitted returns how many rounds have been emitted, warmup included.
func (s *Session) Emitted() int {
	return len(s.seq)
}

// EligibleRounds returns how many rounds past the warmup prefix can
// carry a match.
func (s *Session) EligibleRounds() int {
	return s.cfg.Rounds - s.cfg.NLevel
}

// Sequence returns a copy of the emitted rounds.
func (s *Session) Sequence() stimulus.Sequence {
	out := make(stimulus.Sequence, len(s.seq))
	copy(out, s.seq)
	return out
}

// Responses returns a copy of the classified response log.
func (s *Session) Responses() []response.Record {
	out := make([]response.Record, len(s.records))
	copy(out, s.records)
	return out
}

// History returns a copy of the captured snapshots, oldest first.
func (s *Session) History() []performance.Snapshot {
	return s.history.All()
}

// LatestSnapshot returns the most recent snapshot, if one has been
// captured.
func (s *Session) LatestSnapshot() (performance.Snapshot, bool) {
	return s.snapshot, s.hasSnapshot
}

// Decision returns the discrete guidance from the latest capture.
func (s *Session) Decision() adaptive.Decision {
	return s.decision
}

// Adjustment returns the continuous guidance from the latest capture.
func (s *Session) Adjustment() adaptive.Adjustment {
	return s.adjustment
}
