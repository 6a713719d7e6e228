package scenario

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// AssertionMode controls how unmet expectations are reported.
type AssertionMode string

const (
	// AssertionStrict fails the run on the first unmet expectation.
	AssertionStrict AssertionMode = "strict"
	// AssertionLogOnly logs unmet expectations and keeps the run going.
	AssertionLogOnly AssertionMode = "log-only"
)

// Assertions reports expectation failures according to its mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf reports a hard failure regardless of mode. Setup problems are
// never downgraded to logs.
func (a Assertions) Failf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return apperrors.WithMetadata(apperrors.CodeScenarioAssertion, detail,
		map[string]string{"Detail": detail})
}

// Assertf reports an unmet expectation. In log-only mode the failure
// is logged and the scenario continues.
func (a Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("assertion failed: "+format, args...)
		}
		return nil
	}
	return a.Failf(format, args...)
}
