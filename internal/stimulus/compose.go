package stimulus

import (
	"math"
	"math/rand"
)

// ComposeRequest describes a complete two-channel match plan.
type ComposeRequest struct {
	Length         int // eligible slots to plan
	PositionTarget int // desired position matches
	AudioTarget    int // desired audio matches
	MaxConsecutive int
	MinGap         int
	NLevel         int     // n-back level, shapes the overlap policy
	OverlapBonus   float64 // additive overlap appetite from the profile
}

// Compose builds the match plan for both channels.
//
// # Ordering
//
// The position channel is placed first with bell-curve weighting and
// no overlap constraint. The audio channel follows, avoiding slots the
// position channel already claimed when NLevel is below 3; at higher
// levels simultaneous matches are a desirable difficulty spike and the
// constraint is lifted.
//
// # Overlap policy
//
// The plan aims for a bounded number of simultaneous matches: the
// smaller channel target scaled by a threshold that grows with NLevel
// and OverlapBonus, jittered per plan and capped at 0.7. Backfill
// steers toward that target but never forces it.
//
// # Pattern breaking
//
// Two giveaway structures are softened per channel after placement:
// alternating stretches of five or more slots, and chains of three or
// more matches spaced exactly three apart. One match inside each
// detected structure is cleared probabilistically; clearing is damped
// when it would sacrifice a simultaneous match the plan is still short
// on. Cleared matches are then backfilled into slots that keep every
// gap and run constraint intact, so targets are usually restored in a
// less predictable shape.
//
// # Deficits
//
// Compose never fails. When constraints leave no valid slot, the plan
// simply carries fewer matches than requested; callers compare
// Counts() against their targets when the difference matters.
func Compose(rng *rand.Rand, req ComposeRequest) MatchPlan {
	if req.Length <= 0 {
		return MatchPlan{}
	}

	position, _ := Place(rng, PlacementRequest{
		Length:         req.Length,
		TargetCount:    req.PositionTarget,
		MaxConsecutive: req.MaxConsecutive,
		MinGap:         req.MinGap,
		BellCurve:      true,
	})
	audio, _ := Place(rng, PlacementRequest{
		Length:         req.Length,
		TargetCount:    req.AudioTarget,
		MaxConsecutive: req.MaxConsecutive,
		MinGap:         req.MinGap,
		BellCurve:      true,
		AvoidOverlap:   req.NLevel < 3,
		OtherChannel:   position,
	})
	plan := MatchPlan{Position: position, Audio: audio}

	targetOverlap := overlapTarget(rng, req)

	breakPatterns(rng, plan, ChannelPosition, targetOverlap)
	breakPatterns(rng, plan, ChannelAudio, targetOverlap)

	refill(rng, plan, ChannelPosition, req, targetOverlap)
	refill(rng, plan, ChannelAudio, req, targetOverlap)

	return plan
}

// overlapTarget computes how many simultaneous matches the plan aims
// for. The threshold grows with the n-back level and the profile's
// overlap bonus, jittered slightly so sessions differ, and capped so
// overlap never dominates.
func overlapTarget(rng *rand.Rand, req ComposeRequest) int {
	jitter := 0.9 + rng.Float64()*0.2
	base := min(0.2+0.1*float64(req.NLevel-1), 0.6)
	threshold := min(jitter*(base+req.OverlapBonus), 0.7)
	lower := max(min(req.PositionTarget, req.AudioTarget), 0)
	return int(math.Round(float64(lower) * threshold))
}

// breakPatterns softens predictable structures on one channel.
func breakPatterns(rng *rand.Rand, plan MatchPlan, ch Channel, targetOverlap int) {
	own, other := channelSlots(plan, ch)

	// Alternating stretches: adjacent slots flipping between match and
	// non-match for five or more slots read as a rhythm.
	s := 0
	for s < len(own)-1 {
		if own[s] == own[s+1] {
			s++
			continue
		}
		e := s + 1
		for e < len(own)-1 && own[e] != own[e+1] {
			e++
		}
		if e-s+1 >= 5 {
			var matches []int
			for i := s; i <= e; i++ {
				if own[i] {
					matches = append(matches, i)
				}
			}
			if len(matches) >= 2 {
				maybeClear(rng, plan, own, other, matches[len(matches)/2], targetOverlap)
			}
		}
		s = e
	}

	// Stride chains: three matches spaced exactly three apart invite
	// counting instead of remembering.
	for i := 0; i+6 < len(own); i++ {
		if own[i] && own[i+3] && own[i+6] {
			maybeClear(rng, plan, own, other, i+3, targetOverlap)
		}
	}
}

// maybeClear clears a planned match with probability 0.5, damped when
// the slot is a simultaneous match the plan is not over target on.
func maybeClear(rng *rand.Rand, plan MatchPlan, own, other []bool, i int, targetOverlap int) {
	p := 0.5
	if i < len(other) && other[i] && plan.Overlap() <= targetOverlap {
		p *= 0.3
	}
	if rng.Float64() < p {
		own[i] = false
	}
}

// refill restores cleared matches into slots that keep the plan valid,
// preferring overlap-creating slots while the plan is short of its
// overlap target.
func refill(rng *rand.Rand, plan MatchPlan, ch Channel, req ComposeRequest, targetOverlap int) {
	own, other := channelSlots(plan, ch)
	target := req.PositionTarget
	if ch == ChannelAudio {
		target = req.AudioTarget
	}

	preq := PlacementRequest{
		Length:         len(own),
		MaxConsecutive: req.MaxConsecutive,
		MinGap:         req.MinGap,
	}

	for countMatches(own) < target {
		wantOverlap := plan.Overlap() < targetOverlap
		var preferred, rest []int
		for i := range own {
			if !placementValid(own, i, preq) {
				continue
			}
			if wantOverlap && i < len(other) && other[i] {
				preferred = append(preferred, i)
			} else {
				rest = append(rest, i)
			}
		}
		pool := preferred
		if len(pool) == 0 {
			pool = rest
		}
		if len(pool) == 0 {
			return
		}
		own[pool[rng.Intn(len(pool))]] = true
	}
}

func channelSlots(plan MatchPlan, ch Channel) (own, other []bool) {
	if ch == ChannelAudio {
		return plan.Audio, plan.Position
	}
	return plan.Position, plan.Audio
}

func countMatches(slots []bool) int {
	count := 0
	for _, m := range slots {
		if m {
			count++
		}
	}
	return count
}
