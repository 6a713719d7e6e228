package stimulus

import (
	"math/rand"
	"testing"
)

// assertRunBound fails when any run of adjacent matches exceeds limit.
func assertRunBound(t *testing.T, slots []bool, limit int) {
	t.Helper()
	run := 0
	for i, m := range slots {
		if !m {
			run = 0
			continue
		}
		run++
		if run > limit {
			t.Fatalf("run of %d matches ending at slot %d exceeds limit %d", run, i, limit)
		}
	}
}

// assertMinGap fails when two matches sit closer than gap.
func assertMinGap(t *testing.T, slots []bool, gap int) {
	t.Helper()
	last := -gap
	for i, m := range slots {
		if !m {
			continue
		}
		if i-last < gap {
			t.Fatalf("matches at slots %d and %d are closer than gap %d", last, i, gap)
		}
		last = i
	}
}

func TestPlace_ReachesFeasibleTarget(t *testing.T) {
	req := PlacementRequest{
		Length:         18,
		TargetCount:    5,
		MaxConsecutive: 2,
		MinGap:         1,
		BellCurve:      true,
	}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		slots, placed := Place(rng, req)

		if placed != 5 {
			t.Fatalf("seed %d: placed %d matches, want 5", seed, placed)
		}
		if got := countMatches(slots); got != placed {
			t.Fatalf("seed %d: slots hold %d matches but placed reports %d", seed, got, placed)
		}
		assertRunBound(t, slots, req.MaxConsecutive)
	}
}

func TestPlace_HonorsMinGap(t *testing.T) {
	req := PlacementRequest{
		Length:         20,
		TargetCount:    6,
		MaxConsecutive: 2,
		MinGap:         3,
		BellCurve:      true,
	}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		slots, placed := Place(rng, req)

		assertMinGap(t, slots, req.MinGap)
		if feasible := MaxFeasibleTarget(req.Length, req.MaxConsecutive, req.MinGap); placed > feasible {
			t.Fatalf("seed %d: placed %d exceeds feasible maximum %d", seed, placed, feasible)
		}
	}
}

func TestPlace_AvoidsOverlap(t *testing.T) {
	other := make([]bool, 18)
	for _, i := range []int{2, 5, 9, 12, 16} {
		other[i] = true
	}
	req := PlacementRequest{
		Length:         18,
		TargetCount:    5,
		MaxConsecutive: 2,
		MinGap:         1,
		BellCurve:      true,
		AvoidOverlap:   true,
		OtherChannel:   other,
	}

	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		slots, _ := Place(rng, req)
		for i, m := range slots {
			if m && other[i] {
				t.Fatalf("seed %d: slot %d overlaps the other channel", seed, i)
			}
		}
	}
}

func TestPlace_UnderDeliversSilently(t *testing.T) {
	// Six slots with a gap of two fit at most three matches; asking for
	// six must shrink the delivery instead of failing.
	req := PlacementRequest{
		Length:         6,
		TargetCount:    6,
		MaxConsecutive: 2,
		MinGap:         2,
	}

	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		slots, placed := Place(rng, req)

		if placed >= req.TargetCount {
			t.Fatalf("seed %d: placed %d, expected under-delivery", seed, placed)
		}
		if placed < 2 || placed > 3 {
			t.Fatalf("seed %d: placed %d, want 2 or 3", seed, placed)
		}
		assertMinGap(t, slots, req.MinGap)
	}
}

func TestPlace_Deterministic(t *testing.T) {
	req := PlacementRequest{
		Length:         24,
		TargetCount:    7,
		MaxConsecutive: 2,
		MinGap:         1,
		BellCurve:      true,
	}

	first, placedFirst := Place(rand.New(rand.NewSource(99)), req)
	second, placedSecond := Place(rand.New(rand.NewSource(99)), req)

	if placedFirst != placedSecond {
		t.Fatalf("placed counts differ: %d vs %d", placedFirst, placedSecond)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between identical seeds", i)
		}
	}
}

func TestPlace_ZeroTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	slots, placed := Place(rng, PlacementRequest{Length: 10, TargetCount: 0})

	if placed != 0 {
		t.Fatalf("placed = %d, want 0", placed)
	}
	for i, m := range slots {
		if m {
			t.Fatalf("slot %d is a match, want none", i)
		}
	}
}

func TestPlace_EmptyLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	slots, placed := Place(rng, PlacementRequest{Length: 0, TargetCount: 3})
	if slots != nil || placed != 0 {
		t.Fatalf("Place on empty length = %v/%d, want nil/0", slots, placed)
	}
}

func TestMaxFeasibleTarget(t *testing.T) {
	tests := []struct {
		name           string
		length         int
		maxConsecutive int
		minGap         int
		want           int
	}{
		{"loose run limit", 18, 2, 1, 12},
		{"gap dominates", 6, 2, 2, 3},
		{"longer runs", 10, 3, 1, 8},
		{"single slot", 1, 1, 1, 1},
		{"empty", 0, 2, 1, 0},
		{"partial trailing block", 5, 2, 1, 4},
		{"wide gap", 20, 2, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxFeasibleTarget(tt.length, tt.maxConsecutive, tt.minGap)
			if got != tt.want {
				t.Errorf("MaxFeasibleTarget(%d, %d, %d) = %d, want %d",
					tt.length, tt.maxConsecutive, tt.minGap, got, tt.want)
			}
		})
	}
}
