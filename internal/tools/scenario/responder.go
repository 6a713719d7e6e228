package scenario

import (
	"fmt"
	"math/rand"
)

// ResponderProfile defines parameters for simulating trainee response
// behavior. Hit and false-alarm rates are applied per channel per
// round against sequence ground truth.
type ResponderProfile struct {
	Name             string
	Description      string
	HitRate          float64 // probability of responding on a true match
	FalseAlarmRate   float64 // probability of responding with no match
	MeanResponseMs   int     // response time center
	ResponseJitterMs int     // uniform +/- spread around the center
}

var responders = map[string]ResponderProfile{
	"perfect": {
		Name:           "Perfect Recall",
		Description:    "Answers every match, never fooled; upper bound for the adaptive loop",
		HitRate:        1,
		FalseAlarmRate: 0,
		MeanResponseMs: 350, ResponseJitterMs: 80,
	},
	"steady": {
		Name:           "Steady Trainee",
		Description:    "Solid detection with occasional lapses",
		HitRate:        0.85,
		FalseAlarmRate: 0.08,
		MeanResponseMs: 520, ResponseJitterMs: 140,
	},
	"sloppy": {
		Name:           "Sloppy Trainee",
		Description:    "Misses often and guesses freely",
		HitRate:        0.55,
		FalseAlarmRate: 0.25,
		MeanResponseMs: 650, ResponseJitterMs: 220,
	},
	"absent": {
		Name:           "Absent Trainee",
		Description:    "Never responds; every match becomes a miss",
		HitRate:        0,
		FalseAlarmRate: 0,
	},
}

func lookupResponder(name string) (ResponderProfile, error) {
	p, ok := responders[name]
	if !ok {
		return ResponderProfile{}, fmt.Errorf("unsupported responder %q", name)
	}
	return p, nil
}

// respond simulates one channel of one round.
func (p ResponderProfile) respond(rng *rand.Rand, match bool) (responded bool, responseTimeMs int) {
	chance := p.FalseAlarmRate
	if match {
		chance = p.HitRate
	}
	if chance <= 0 || rng.Float64() >= chance {
		return false, 0
	}
	rt := p.MeanResponseMs
	if p.ResponseJitterMs > 0 {
		rt += rng.Intn(2*p.ResponseJitterMs+1) - p.ResponseJitterMs
	}
	return true, rt
}
