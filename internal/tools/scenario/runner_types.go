package scenario

import (
	"math/rand"

	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/session"
)

// Scenario is a parsed scenario script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action and its raw arguments.
type Step struct {
	Kind string
	Args map[string]any
}

// scenarioState carries the live session between steps. The responder
// rng is derived from the session's resolved seed so replaying a
// seeded scenario replays every response too.
type scenarioState struct {
	session *session.Session
	base    profile.Profile
	nLevel  int
	rng     *rand.Rand
}
