// Package adaptive turns snapshot history into difficulty guidance.
//
// Two views are offered over the same history: Evaluate produces a
// discrete decision (raise, lower, or hold the n-back level) for
// level-granular callers, and Derive produces bounded continuous
// adjustments for callers that tune match rates in place. Both are
// pure functions of the history they are handed; the controller holds
// no state of its own.
package adaptive

import (
	"github.com/louisbranch/nback-engine/internal/performance"
)

// Action is the discrete difficulty move a decision recommends.
type Action int

const (
	ActionUnspecified Action = iota
	ActionIncrease
	ActionDecrease
	ActionMaintain
)

func (a Action) String() string {
	switch a {
	case ActionUnspecified:
		return "Unspecified"
	case ActionIncrease:
		return "Increase"
	case ActionDecrease:
		return "Decrease"
	case ActionMaintain:
		return "Maintain"
	default:
		return "Unknown"
	}
}

// Urgency grades how promptly the recommended action should land.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyMedium
	UrgencyHigh
)

func (u Urgency) String() string {
	switch u {
	case UrgencyNone:
		return "None"
	case UrgencyMedium:
		return "Medium"
	case UrgencyHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Reason labels which trigger produced a decision.
type Reason string

const (
	ReasonInsufficientData Reason = "insufficient_data"
	ReasonExcellent        Reason = "excellent"
	ReasonPoor             Reason = "poor"
	ReasonDecliningTrend   Reason = "declining_trend"
	ReasonSteady           Reason = "steady"
)

// Decision is the discrete difficulty recommendation.
type Decision struct {
	ShouldAdjust bool
	Action       Action
	Urgency      Urgency
	Reason       Reason
	Confidence   float64 // 0..1
}

// evaluateWindow is how many recent snapshots the triggers consider.
const evaluateWindow = 3

// Evaluate derives a discrete difficulty decision from the snapshot
// history (oldest first). Thresholds scale with the n-back level:
// higher levels earn an increase at lower accuracy and tolerate more
// before a decrease. Fewer than three snapshots is not enough signal
// and always holds steady.
func Evaluate(history []performance.Snapshot, nLevel int) Decision {
	if len(history) < evaluateWindow {
		return Decision{
			Action: ActionMaintain,
			Reason: ReasonInsufficientData,
		}
	}

	recent := history[len(history)-evaluateWindow:]
	avgAccuracy := 0.0
	avgMissed := 0.0
	for _, s := range recent {
		avgAccuracy += s.Accuracy
		avgMissed += s.MissedRate()
	}
	avgAccuracy /= evaluateWindow
	avgMissed /= evaluateWindow

	excellentThreshold := max(85, 95-2*float64(nLevel))
	poorThreshold := max(50, 65-3*float64(nLevel))

	if avgAccuracy >= excellentThreshold && avgMissed < 0.1 {
		urgency := UrgencyMedium
		confidence := 0.7
		if allAbove(recent, excellentThreshold) {
			urgency = UrgencyHigh
			confidence = 1
		}
		return Decision{
			ShouldAdjust: true,
			Action:       ActionIncrease,
			Urgency:      urgency,
			Reason:       ReasonExcellent,
			Confidence:   confidence,
		}
	}

	if avgAccuracy <= poorThreshold || avgMissed > 0.4 {
		urgency := UrgencyMedium
		confidence := 0.7
		if avgAccuracy <= poorThreshold-10 {
			urgency = UrgencyHigh
			confidence = 1
		}
		return Decision{
			ShouldAdjust: true,
			Action:       ActionDecrease,
			Urgency:      urgency,
			Reason:       ReasonPoor,
			Confidence:   confidence,
		}
	}

	if recent[len(recent)-1].Accuracy-recent[0].Accuracy < -15 {
		return Decision{
			ShouldAdjust: true,
			Action:       ActionDecrease,
			Urgency:      UrgencyMedium,
			Reason:       ReasonDecliningTrend,
			Confidence:   0.6,
		}
	}

	return Decision{
		Action:     ActionMaintain,
		Reason:     ReasonSteady,
		Confidence: 0.5,
	}
}

func allAbove(snaps []performance.Snapshot, threshold float64) bool {
	for _, s := range snaps {
		if s.Accuracy < threshold {
			return false
		}
	}
	return true
}
