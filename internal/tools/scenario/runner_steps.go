package scenario

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/louisbranch/nback-engine/internal/analysis"
	"github.com/louisbranch/nback-engine/internal/performance"
	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/session"
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "session":
		return r.runSessionStep(state, step)
	case "play":
		return r.runPlayStep(ctx, state, step)
	case "expect_accuracy":
		return r.runExpectAccuracyStep(state, step)
	case "expect_decision":
		return r.runExpectDecisionStep(state, step)
	case "expect_difficulty":
		return r.runExpectDifficultyStep(state, step)
	case "expect_complete":
		return r.runExpectCompleteStep(state)
	case "analyze":
		return r.runAnalyzeStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runSessionStep(state *scenarioState, step Step) error {
	if state.session != nil {
		return r.failf("session already created")
	}
	profileName, err := parseProfileName(optionalString(step.Args, "profile", "medium"))
	if err != nil {
		return err
	}
	mode, err := parseMode(optionalString(step.Args, "mode", "batch"))
	if err != nil {
		return err
	}

	base := profile.Get(profileName)
	cfg := session.Config{
		NLevel:         optionalInt(step.Args, "n_level", 2),
		GridSize:       optionalInt(step.Args, "grid", 3),
		Rounds:         optionalInt(step.Args, "rounds", 20),
		Profile:        base,
		Mode:           mode,
		SnapshotEvery:  optionalInt(step.Args, "snapshot_every", 0),
		SnapshotWindow: optionalInt(step.Args, "snapshot_window", 0),
		Engaging:       optionalBool(step.Args, "engaging", false),
		Seed:           int64(optionalInt(step.Args, "seed", 0)),
		Telemetry:      r.telemetry,
	}

	sess, err := session.New(cfg)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	state.session = sess
	state.base = base
	state.nLevel = cfg.NLevel
	state.rng = rand.New(rand.NewSource(sess.Seed() + 1))
	r.logf("session created: id=%s mode=%s n_level=%d rounds=%d seed=%d", sess.ID(), mode, cfg.NLevel, cfg.Rounds, sess.Seed())
	return nil
}

func (r *Runner) runPlayStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	rounds := optionalInt(step.Args, "rounds", 0)
	responder, err := lookupResponder(optionalString(step.Args, "responder", "steady"))
	if err != nil {
		return err
	}

	played := 0
	for rounds <= 0 || played < rounds {
		if state.session.Done() {
			if rounds <= 0 {
				break
			}
			return r.failf("session completed after %d of %d requested rounds", played, rounds)
		}
		if _, err := state.session.Next(ctx); err != nil {
			return fmt.Errorf("next stimulus: %w", err)
		}
		round := state.session.Emitted() - 1
		seq := state.session.Sequence()
		for _, ch := range []stimulus.Channel{stimulus.ChannelPosition, stimulus.ChannelAudio} {
			responded, responseTimeMs := responder.respond(state.rng, seq.MatchOn(ch, round, state.nLevel))
			if _, err := state.session.Submit(ctx, ch, responded, responseTimeMs); err != nil {
				return fmt.Errorf("submit %s response: %w", ch, err)
			}
		}
		played++
	}
	r.logf("play done: responder=%s rounds=%d emitted=%d", responder.Name, played, state.session.Emitted())
	return nil
}

func (r *Runner) runExpectAccuracyStep(state *scenarioState, step Step) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	snap := performance.Capture(state.session.Responses(), 0)
	if snap.TotalAttempts == 0 {
		return r.failf("no responses recorded yet")
	}
	if min, ok := readFloat(step.Args, "min"); ok && snap.Accuracy < min {
		return r.assertf("accuracy %.1f%% below min %.1f%%", snap.Accuracy, min)
	}
	if max, ok := readFloat(step.Args, "max"); ok && snap.Accuracy > max {
		return r.assertf("accuracy %.1f%% above max %.1f%%", snap.Accuracy, max)
	}
	r.logf("accuracy: %.1f%% over %d attempts (missed %d)", snap.Accuracy, snap.TotalAttempts, snap.MissedCount)
	return nil
}

func (r *Runner) runExpectDecisionStep(state *scenarioState, step Step) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	decision := state.session.Decision()
	if want, ok := readBool(step.Args, "should_adjust"); ok && decision.ShouldAdjust != want {
		return r.assertf("should_adjust is %t, want %t (reason %s)", decision.ShouldAdjust, want, decision.Reason)
	}
	if value := optionalString(step.Args, "action", ""); value != "" {
		want, err := parseAction(value)
		if err != nil {
			return err
		}
		if decision.Action != want {
			return r.assertf("decision action is %s, want %s (reason %s)", decision.Action, want, decision.Reason)
		}
	}
	if value := optionalString(step.Args, "urgency", ""); value != "" {
		want, err := parseUrgency(value)
		if err != nil {
			return err
		}
		if decision.Urgency != want {
			return r.assertf("decision urgency is %s, want %s", decision.Urgency, want)
		}
	}
	r.logf("decision: action=%s urgency=%s reason=%s confidence=%.2f", decision.Action, decision.Urgency, decision.Reason, decision.Confidence)
	return nil
}

func (r *Runner) runExpectDifficultyStep(state *scenarioState, step Step) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	live := state.session.Profile()
	ratio := (live.PositionMatchRate + live.AudioMatchRate) / (state.base.PositionMatchRate + state.base.AudioMatchRate)
	if min, ok := readFloat(step.Args, "min"); ok && ratio < min {
		return r.assertf("difficulty %.2f below min %.2f", ratio, min)
	}
	if max, ok := readFloat(step.Args, "max"); ok && ratio > max {
		return r.assertf("difficulty %.2f above max %.2f", ratio, max)
	}
	r.logf("difficulty: %.2f (position %.2f audio %.2f)", ratio, live.PositionMatchRate, live.AudioMatchRate)
	return nil
}

func (r *Runner) runExpectCompleteStep(state *scenarioState) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	if !state.session.Done() {
		return r.assertf("session not complete: %d rounds emitted", state.session.Emitted())
	}
	r.logf("session complete: %d rounds", state.session.Emitted())
	return nil
}

func (r *Runner) runAnalyzeStep(state *scenarioState, step Step) error {
	if err := r.ensureSession(state); err != nil {
		return err
	}
	seq := state.session.Sequence()
	engagement := analysis.CalculateEngagement(seq, state.session.Responses(), state.nLevel)
	distribution := analysis.AnalyzeDistribution(seq, state.nLevel)
	r.logf("engagement: score=%.2f response_rate=%.2f idle_periods=%d", engagement.EngagementScore, engagement.ResponseRate, engagement.IdlePeriods)
	r.logf("distribution: score=%.1f mean_variance=%.3f", distribution.Score, distribution.MeanVariance)
	if min, ok := readFloat(step.Args, "min_engagement"); ok && engagement.EngagementScore < min {
		return r.assertf("engagement score %.2f below min %.2f", engagement.EngagementScore, min)
	}
	if min, ok := readFloat(step.Args, "min_distribution"); ok && distribution.Score < min {
		return r.assertf("distribution score %.1f below min %.1f", distribution.Score, min)
	}
	return nil
}
