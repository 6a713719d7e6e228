package adaptive

import (
	"testing"

	"github.com/louisbranch/nback-engine/internal/performance"
)

func TestDerive_EmptyHistoryIsNeutral(t *testing.T) {
	got := Derive(nil, 2)

	if !got.Neutral() {
		t.Errorf("Derive(nil) = %+v, want neutral", got)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", got.Confidence)
	}
}

func TestDerive_StrongHistoryRaisesDifficulty(t *testing.T) {
	history := []performance.Snapshot{snap(90, 0.05), snap(92, 0.05), snap(95, 0.05)}

	got := Derive(history, 2)
	if got.MatchRateMultiplier <= 1 || got.MatchRateMultiplier > 1.5 {
		t.Errorf("multiplier = %v, want in (1, 1.5]", got.MatchRateMultiplier)
	}
	if got.ComplexityBonusDelta <= 0 {
		t.Errorf("complexity delta = %v, want positive", got.ComplexityBonusDelta)
	}
	if got.PacingDelta != -1 {
		t.Errorf("pacing delta = %v, want -1 (faster rounds)", got.PacingDelta)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Errorf("confidence = %v, want in (0, 1]", got.Confidence)
	}
}

func TestDerive_WeakHistoryClampsAtBounds(t *testing.T) {
	history := []performance.Snapshot{snap(50, 0.3), snap(45, 0.3), snap(40, 0.3)}

	got := Derive(history, 2)
	if got.MatchRateMultiplier != 0.5 {
		t.Errorf("multiplier = %v, want clamped 0.5", got.MatchRateMultiplier)
	}
	if got.ComplexityBonusDelta != -0.1 {
		t.Errorf("complexity delta = %v, want clamped -0.1", got.ComplexityBonusDelta)
	}
	if got.PacingDelta != 2 {
		t.Errorf("pacing delta = %v, want clamped 2", got.PacingDelta)
	}
}

func TestDerive_ImprovingNudgedHarderThanDeclining(t *testing.T) {
	improving := []performance.Snapshot{snap(80, 0.1), snap(85, 0.1), snap(90, 0.1)}
	declining := []performance.Snapshot{snap(90, 0.1), snap(85, 0.1), snap(80, 0.1)}

	up := Derive(improving, 2)
	down := Derive(declining, 2)
	if up.MatchRateMultiplier <= down.MatchRateMultiplier {
		t.Errorf("improving multiplier %v <= declining %v, want trend to nudge harder",
			up.MatchRateMultiplier, down.MatchRateMultiplier)
	}
}

func TestDerive_TargetBandEasesWithLevel(t *testing.T) {
	// 75% accuracy is below target at n=2 (85) but on target at n=4 (75),
	// so the low level eases difficulty while the high level holds.
	history := []performance.Snapshot{snap(75, 0.1), snap(75, 0.1), snap(75, 0.1)}

	lowLevel := Derive(history, 2)
	highLevel := Derive(history, 4)
	if lowLevel.MatchRateMultiplier >= 1 {
		t.Errorf("n=2 multiplier = %v, want below 1", lowLevel.MatchRateMultiplier)
	}
	if highLevel.MatchRateMultiplier != 1 {
		t.Errorf("n=4 multiplier = %v, want 1 at target", highLevel.MatchRateMultiplier)
	}
}

func TestDerive_ConfidenceGrowsWithDepth(t *testing.T) {
	shallow := []performance.Snapshot{snap(85, 0.1), snap(85, 0.1)}
	deep := make([]performance.Snapshot, 6)
	for i := range deep {
		deep[i] = snap(85, 0.1)
	}

	if s, d := Derive(shallow, 2).Confidence, Derive(deep, 2).Confidence; s >= d {
		t.Errorf("shallow confidence %v >= deep %v, want depth to raise it", s, d)
	}
}

func TestApplyStreamRule(t *testing.T) {
	tests := []struct {
		name           string
		snapshot       performance.Snapshot
		wantMultiplier float64
		wantDelta      float64
		wantChanged    bool
	}{
		{"strong snapshot", snap(90, 0.05), 1.2, 0.05, true},
		{"low accuracy", snap(50, 0.1), 0.8, -0.05, true},
		{"heavy misses", snap(70, 0.35), 0.8, -0.05, true},
		{"middling", snap(70, 0.2), 1, 0, false},
		{"boundary accuracy", snap(85, 0.05), 1, 0, false},
		{"empty", performance.Snapshot{}, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			multiplier, delta, changed := ApplyStreamRule(tt.snapshot)
			if multiplier != tt.wantMultiplier || delta != tt.wantDelta || changed != tt.wantChanged {
				t.Errorf("ApplyStreamRule() = (%v, %v, %v), want (%v, %v, %v)",
					multiplier, delta, changed, tt.wantMultiplier, tt.wantDelta, tt.wantChanged)
			}
		})
	}
}
