// Package analysis provides read-only diagnostics over finished runs.
//
// The analyzers recompute everything from the materialized sequence
// and the response log, never from the plan that produced them, so
// they double as an independent check on generation. Nothing here
// feeds back into generation or difficulty control.
package analysis

import (
	"math"

	"github.com/louisbranch/nback-engine/internal/response"
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// targetMatchRate is the per-channel rate the engagement score treats
// as ideal. Sequences drift from it when constraints bite.
const targetMatchRate = 0.30

// idleRunThreshold is the minimum length of a no-match run that counts
// as an idle period.
const idleRunThreshold = 3

// EngagementMetrics summarizes how stimulating a finished run was and
// how actively the trainee met it.
type EngagementMetrics struct {
	PositionMatchRate float64 // actual matches / eligible rounds
	AudioMatchRate    float64
	ActualMatchRate   float64 // mean of the two channel rates
	ResponseRate      float64 // match opportunities answered, 0..1
	IdlePeriods       int     // runs of 3+ eligible rounds with no match
	LongestIdleRun    int     // length of the longest such run
	EngagementScore   float64 // composite, 0..1
}

// CalculateEngagement recomputes engagement diagnostics from ground
// truth. Match rates come from the sequence itself, the response rate
// from the hit/miss tags in the log, and idle periods from maximal
// runs of eligible rounds where neither channel matches.
func CalculateEngagement(seq stimulus.Sequence, responses []response.Record, nLevel int) EngagementMetrics {
	var m EngagementMetrics

	eligible := seq.EligibleRounds(nLevel)
	if eligible == 0 {
		return m
	}

	var posMatches, audMatches int
	idleRun := 0
	for i := nLevel; i < len(seq); i++ {
		pos := seq.PositionMatch(i, nLevel)
		aud := seq.AudioMatch(i, nLevel)
		if pos {
			posMatches++
		}
		if aud {
			audMatches++
		}
		if pos || aud {
			m.recordIdleRun(idleRun)
			idleRun = 0
			continue
		}
		idleRun++
	}
	m.recordIdleRun(idleRun)

	m.PositionMatchRate = float64(posMatches) / float64(eligible)
	m.AudioMatchRate = float64(audMatches) / float64(eligible)
	m.ActualMatchRate = (m.PositionMatchRate + m.AudioMatchRate) / 2
	m.ResponseRate = matchResponseRate(responses)

	rateCloseness := 1 - math.Abs(m.ActualMatchRate-targetMatchRate)*2
	if rateCloseness < 0 {
		rateCloseness = 0
	}
	idleFactor := 1 - float64(m.IdlePeriods)*0.25
	if idleFactor < 0 {
		idleFactor = 0
	}
	m.EngagementScore = 0.4*rateCloseness + 0.4*m.ResponseRate + 0.2*idleFactor
	return m
}

func (m *EngagementMetrics) recordIdleRun(run int) {
	if run < idleRunThreshold {
		return
	}
	m.IdlePeriods++
	if run > m.LongestIdleRun {
		m.LongestIdleRun = run
	}
}

// matchResponseRate is the fraction of match opportunities the trainee
// answered. Hits and misses partition the match rounds; false alarms
// say nothing about opportunities and are left out.
func matchResponseRate(responses []response.Record) float64 {
	var hits, opportunities int
	for _, rec := range responses {
		switch rec.Kind {
		case response.KindHit:
			hits++
			opportunities++
		case response.KindMiss:
			opportunities++
		}
	}
	if opportunities == 0 {
		return 0
	}
	return float64(hits) / float64(opportunities)
}
