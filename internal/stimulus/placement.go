package stimulus

import (
	"math"
	"math/rand"
	"sort"
)

// PlacementRequest describes single-channel match placement over the
// eligible region of a sequence.
type PlacementRequest struct {
	Length         int    // eligible slots to plan
	TargetCount    int    // desired number of matches
	MaxConsecutive int    // longest allowed run of adjacent matches
	MinGap         int    // minimum index distance between matches
	BellCurve      bool   // weight mid-sequence slots higher
	AvoidOverlap   bool   // reject slots already matched on OtherChannel
	OtherChannel   []bool // previously placed channel, may be nil
}

// Place selects match slots for one channel.
//
// # Determinism
//
// Place is deterministic with respect to the provided rng. Given the
// same source state and the same request, it always produces the same
// slots.
//
// # Weighting
//
// With BellCurve set, slot weights follow 0.2 + 0.8*exp(-(x-0.5)^2 /
// (2*0.3^2)) where x is the slot's relative offset, so matches cluster
// mid-sequence and thin out at the edges. Without it all slots weigh
// 1. Slots are visited in uniformly shuffled order and accepted with
// probability weight * (1.2 - placed/target), so early placements are
// eager and later ones picky. Slots that remain short of the target
// after the random pass are filled deterministically from the
// highest-weight valid candidates.
//
// # Constraints
//
// A placement is rejected when it would put two matches closer than
// MinGap, extend a run of adjacent matches beyond MaxConsecutive, or
// land on a slot already matched on OtherChannel while AvoidOverlap is
// set. MinGap 1 permits adjacency, leaving MaxConsecutive to bound
// runs. Limits below 1 are treated as 1.
//
// # Under-delivery
//
// Dense targets with strict constraints may be unsatisfiable. Place
// never fails: it places as many matches as it validly can and returns
// the achieved count alongside the slots. Callers that must know about
// shortfalls compare the count against the target.
func Place(rng *rand.Rand, req PlacementRequest) ([]bool, int) {
	if req.Length <= 0 {
		return nil, 0
	}

	slots := make([]bool, req.Length)
	if req.TargetCount <= 0 {
		return slots, 0
	}

	target := req.TargetCount
	weights := slotWeights(req.Length, req.BellCurve)

	placed := 0
	for _, i := range rng.Perm(req.Length) {
		if placed >= target {
			break
		}
		if !placementValid(slots, i, req) {
			continue
		}
		p := weights[i] * (1.2 - float64(placed)/float64(target))
		if p > 1 {
			p = 1
		}
		if rng.Float64() < p {
			slots[i] = true
			placed++
		}
	}

	// Deterministic fill from the highest-weight valid slots.
	if placed < target {
		candidates := make([]int, 0, req.Length)
		for i := 0; i < req.Length; i++ {
			if !slots[i] {
				candidates = append(candidates, i)
			}
		}
		sort.Slice(candidates, func(a, b int) bool {
			wa, wb := weights[candidates[a]], weights[candidates[b]]
			if wa != wb {
				return wa > wb
			}
			return candidates[a] < candidates[b]
		})
		for _, i := range candidates {
			if placed >= target {
				break
			}
			if !placementValid(slots, i, req) {
				continue
			}
			slots[i] = true
			placed++
		}
	}

	return slots, placed
}

// MaxFeasibleTarget returns the largest match count that can be placed
// in length slots under the gap and run constraints. Callers that must
// pre-validate a target check against this before placing.
func MaxFeasibleTarget(length, maxConsecutive, minGap int) int {
	if length <= 0 {
		return 0
	}
	maxRun := max(1, maxConsecutive)
	gap := max(1, minGap)

	if gap >= 2 {
		// Runs are impossible; matches sit at least gap apart.
		return (length-1)/gap + 1
	}

	// Adjacent runs of maxRun separated by a single empty slot.
	blocks := length / (maxRun + 1)
	rem := length % (maxRun + 1)
	return blocks*maxRun + min(rem, maxRun)
}

// slotWeights computes per-slot acceptance weights.
func slotWeights(length int, bellCurve bool) []float64 {
	weights := make([]float64, length)
	for i := 0; i < length; i++ {
		if !bellCurve {
			weights[i] = 1
			continue
		}
		x := 0.5
		if length > 1 {
			x = float64(i) / float64(length-1)
		}
		d := x - 0.5
		weights[i] = 0.2 + 0.8*math.Exp(-(d*d)/(2*0.3*0.3))
	}
	return weights
}

// placementValid reports whether slot i can become a match without
// violating the request constraints.
func placementValid(slots []bool, i int, req PlacementRequest) bool {
	if slots[i] {
		return false
	}

	// Gap: no other match within distance MinGap-1.
	gap := max(1, req.MinGap)
	for j := max(0, i-gap+1); j <= min(len(slots)-1, i+gap-1); j++ {
		if j != i && slots[j] {
			return false
		}
	}

	// Runs: joining the neighbors on both sides must not exceed the
	// consecutive limit. Both directions count because slots are
	// visited in random order.
	maxRun := max(1, req.MaxConsecutive)
	run := 1
	for j := i - 1; j >= 0 && slots[j]; j-- {
		run++
	}
	for j := i + 1; j < len(slots) && slots[j]; j++ {
		run++
	}
	if run > maxRun {
		return false
	}

	if req.AvoidOverlap && i < len(req.OtherChannel) && req.OtherChannel[i] {
		return false
	}

	return true
}
