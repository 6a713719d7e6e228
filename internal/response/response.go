// Package response classifies trainee responses against ground truth.
//
// Every eligible round produces one record per channel, tagged with
// what actually happened rather than a lossy correct/incorrect bit:
// a hit, a miss, a false alarm, or a round that offered no match to
// respond to. Downstream scoring derives accuracy and response-time
// statistics from the tags without re-deriving ground truth.
package response

import (
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// Kind tags what a response record represents.
type Kind int

const (
	KindUnspecified Kind = iota
	// KindNoOpportunity marks a correctly withheld response on a
	// round with no match.
	KindNoOpportunity
	// KindHit marks a response on a matching round.
	KindHit
	// KindMiss marks a withheld response on a matching round.
	KindMiss
	// KindFalseAlarm marks a response on a round with no match.
	KindFalseAlarm
)

func (k Kind) String() string {
	switch k {
	case KindUnspecified:
		return "Unspecified"
	case KindNoOpportunity:
		return "No opportunity"
	case KindHit:
		return "Hit"
	case KindMiss:
		return "Miss"
	case KindFalseAlarm:
		return "False alarm"
	default:
		return "Unknown"
	}
}

// Correct reports whether the record represents correct behavior.
// Hits and correctly withheld responses both count; treating
// no-opportunity rounds as incorrect would punish the common case.
func (k Kind) Correct() bool {
	return k == KindHit || k == KindNoOpportunity
}

// Responded reports whether the trainee actively responded.
func (k Kind) Responded() bool {
	return k == KindHit || k == KindFalseAlarm
}

// Record is one classified response on one channel of one round.
type Record struct {
	Channel        stimulus.Channel
	Kind           Kind
	RoundIndex     int
	ResponseTimeMs int // meaningful only when Kind.Responded()
}

// Classify derives the tagged record for a round from ground truth.
// Rounds inside the warmup prefix can never be matches, so a withheld
// response there is a no-opportunity and an actual response a false
// alarm.
func Classify(seq stimulus.Sequence, nLevel, round int, ch stimulus.Channel, responded bool, responseTimeMs int) Record {
	rec := Record{
		Channel:    ch,
		RoundIndex: round,
	}

	match := seq.MatchOn(ch, round, nLevel)
	switch {
	case match && responded:
		rec.Kind = KindHit
		rec.ResponseTimeMs = responseTimeMs
	case match && !responded:
		rec.Kind = KindMiss
	case !match && responded:
		rec.Kind = KindFalseAlarm
		rec.ResponseTimeMs = responseTimeMs
	default:
		rec.Kind = KindNoOpportunity
	}
	return rec
}
