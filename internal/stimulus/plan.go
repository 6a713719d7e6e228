package stimulus

// MatchPlan records which eligible rounds are planned matches on each
// channel. Index k of either slice corresponds to sequence round
// nLevel+k. A plan is frozen once it has been materialized.
type MatchPlan struct {
	Position []bool
	Audio    []bool
}

// Len returns the number of eligible rounds the plan covers.
func (p MatchPlan) Len() int {
	return max(len(p.Position), len(p.Audio))
}

// Counts returns the number of planned matches per channel.
func (p MatchPlan) Counts() (position, audio int) {
	for _, m := range p.Position {
		if m {
			position++
		}
	}
	for _, m := range p.Audio {
		if m {
			audio++
		}
	}
	return position, audio
}

// Overlap returns how many rounds are planned matches on both channels
// at once.
func (p MatchPlan) Overlap() int {
	n := min(len(p.Position), len(p.Audio))
	overlap := 0
	for i := 0; i < n; i++ {
		if p.Position[i] && p.Audio[i] {
			overlap++
		}
	}
	return overlap
}

// Slice returns the sub-plan covering eligible rounds [from, to).
// Bounds are clamped to the plan length.
func (p MatchPlan) Slice(from, to int) MatchPlan {
	clampRange := func(s []bool) []bool {
		lo := min(max(from, 0), len(s))
		hi := min(max(to, lo), len(s))
		return s[lo:hi]
	}
	return MatchPlan{
		Position: clampRange(p.Position),
		Audio:    clampRange(p.Audio),
	}
}

// Clone returns a deep copy of the plan.
func (p MatchPlan) Clone() MatchPlan {
	out := MatchPlan{
		Position: make([]bool, len(p.Position)),
		Audio:    make([]bool, len(p.Audio)),
	}
	copy(out.Position, p.Position)
	copy(out.Audio, p.Audio)
	return out
}

// PlanFromSequence recovers the match plan implied by a materialized
// sequence. Analyzers use this to verify ground truth instead of
// trusting a stored plan.
func PlanFromSequence(s Sequence, nLevel int) MatchPlan {
	eligible := s.EligibleRounds(nLevel)
	plan := MatchPlan{
		Position: make([]bool, eligible),
		Audio:    make([]bool, eligible),
	}
	for k := 0; k < eligible; k++ {
		plan.Position[k] = s.PositionMatch(nLevel+k, nLevel)
		plan.Audio[k] = s.AudioMatch(nLevel+k, nLevel)
	}
	return plan
}
