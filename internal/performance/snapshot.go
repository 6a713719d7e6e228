// Package performance folds response logs into periodic snapshots.
//
// A snapshot is a compact aggregate over a trailing window of
// classified responses. Sessions capture one every few responses and
// keep a bounded history per session; the adaptive controller reads
// that history, never the raw log.
package performance

import (
	"github.com/louisbranch/nback-engine/internal/response"
)

// Snapshot aggregates a trailing window of responses.
type Snapshot struct {
	Accuracy           float64 // percent correct, 0..100
	MeanResponseTimeMs float64 // mean over responded records only
	MissedCount        int     // matches the trainee let pass
	TotalAttempts      int     // records in the window
	CapturedAtRound    int     // round index of the newest record
	Difficulty         float64 // composite difficulty in effect, baseline 1
}

// MissedRate returns the fraction of window records that were misses.
func (s Snapshot) MissedRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.MissedCount) / float64(s.TotalAttempts)
}

// Capture folds the trailing windowSize records of the log into a
// snapshot. A windowSize of zero or less means the whole log. Accuracy
// credits hits and correctly withheld responses alike; mean response
// time covers only records where the trainee actually responded. An
// empty window yields the zero snapshot at baseline difficulty.
func Capture(log []response.Record, windowSize int) Snapshot {
	snap := Snapshot{Difficulty: 1}

	window := log
	if windowSize > 0 && len(log) > windowSize {
		window = log[len(log)-windowSize:]
	}
	if len(window) == 0 {
		return snap
	}

	correct := 0
	respondedCount := 0
	respondedTimeMs := 0
	for _, rec := range window {
		if rec.Kind.Correct() {
			correct++
		}
		if rec.Kind == response.KindMiss {
			snap.MissedCount++
		}
		if rec.Kind.Responded() {
			respondedCount++
			respondedTimeMs += rec.ResponseTimeMs
		}
	}

	snap.TotalAttempts = len(window)
	snap.Accuracy = 100 * float64(correct) / float64(len(window))
	if respondedCount > 0 {
		snap.MeanResponseTimeMs = float64(respondedTimeMs) / float64(respondedCount)
	}
	snap.CapturedAtRound = window[len(window)-1].RoundIndex

	return snap
}
