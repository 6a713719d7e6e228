// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Generation errors
	CodeInvalidNLevel       Code = "GENERATION_INVALID_N_LEVEL"
	CodeNoEligibleRounds    Code = "GENERATION_NO_ELIGIBLE_ROUNDS"
	CodeGridTooSmall        Code = "GENERATION_GRID_TOO_SMALL"
	CodeInvalidMatchRate    Code = "GENERATION_INVALID_MATCH_RATE"
	CodeInvalidGap          Code = "GENERATION_INVALID_MIN_GAP"
	CodeInvalidConsecutive  Code = "GENERATION_INVALID_MAX_CONSECUTIVE"
	CodeInvalidOverlapBonus Code = "GENERATION_INVALID_OVERLAP_BONUS"
	CodeInvalidSegmentSize  Code = "GENERATION_INVALID_SEGMENT_SIZE"

	// Profile errors
	CodeProfileUnknown Code = "PROFILE_UNKNOWN"
	CodeProfileInvalid Code = "PROFILE_INVALID"

	// Session errors
	CodeSessionComplete       Code = "SESSION_COMPLETE"
	CodeSessionNotStarted     Code = "SESSION_NOT_STARTED"
	CodeSessionInvalidMode    Code = "SESSION_INVALID_MODE"
	CodeSessionInvalidRound   Code = "SESSION_INVALID_ROUND"
	CodeSessionInvalidChannel Code = "SESSION_INVALID_CHANNEL"
	CodeSnapshotWindowInvalid Code = "SNAPSHOT_WINDOW_INVALID"

	// Scenario errors
	CodeScenarioParse     Code = "SCENARIO_PARSE"
	CodeScenarioAssertion Code = "SCENARIO_ASSERTION"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"

	// Storage/lookup errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidNLevel,
		CodeNoEligibleRounds,
		CodeGridTooSmall,
		CodeInvalidMatchRate,
		CodeInvalidGap,
		CodeInvalidConsecutive,
		CodeInvalidOverlapBonus,
		CodeInvalidSegmentSize,
		CodeProfileInvalid,
		CodeSessionInvalidMode,
		CodeSessionInvalidRound,
		CodeSessionInvalidChannel,
		CodeSnapshotWindowInvalid,
		CodeScenarioParse,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeSessionComplete,
		CodeSessionNotStarted,
		CodeScenarioAssertion:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeProfileUnknown:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
