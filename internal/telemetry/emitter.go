// Package telemetry emits engine lifecycle events to a caller-owned
// sink.
//
// The engine never persists anything itself: callers hand the emitter
// a Sink and decide what durability, batching, or transport to apply.
// A nil emitter or sink is a no-op, so telemetry can be dropped from a
// session without conditional call sites.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Canonical engine event names. The names stay stable because
// operational consumers key dashboards off these values.
const (
	// EventSessionStarted marks the creation of a training session.
	EventSessionStarted = "session.started"
	// EventSnapshotCaptured marks a performance snapshot fold.
	EventSnapshotCaptured = "snapshot.captured"
	// EventDifficultyAdjusted marks an applied difficulty change.
	EventDifficultyAdjusted = "difficulty.adjusted"
	// EventSegmentReplanned marks a mid-session segment replan.
	EventSegmentReplanned = "segment.replanned"
	// EventSessionCompleted marks the final round of a session.
	EventSessionCompleted = "session.completed"
)

// Event captures one operational observation from the engine.
type Event struct {
	Name       string
	Severity   Severity
	SessionID  string
	Round      int
	TraceID    string
	SpanID     string
	Attributes map[string]any
	Timestamp  time.Time
}

// Sink receives emitted events. Implementations own persistence,
// buffering, and transport.
type Sink interface {
	Record(ctx context.Context, evt Event) error
}

// Emitter records engine telemetry events.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates a telemetry emitter over the given sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the emitter or
// its sink is nil. Missing fields are filled in: severity defaults to
// INFO, the timestamp to the emitter clock, and the trace and span IDs
// to the active span in ctx.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.sink == nil {
		return nil
	}
	if evt.Severity == "" {
		evt.Severity = SeverityInfo
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if evt.TraceID == "" {
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			evt.TraceID = sc.TraceID().String()
			evt.SpanID = sc.SpanID().String()
		}
	}
	return e.sink.Record(ctx, evt)
}
