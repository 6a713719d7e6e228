package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown               = "UNKNOWN"
	CodeInvalidNLevel         = "GENERATION_INVALID_N_LEVEL"
	CodeNoEligibleRounds      = "GENERATION_NO_ELIGIBLE_ROUNDS"
	CodeGridTooSmall          = "GENERATION_GRID_TOO_SMALL"
	CodeInvalidMatchRate      = "GENERATION_INVALID_MATCH_RATE"
	CodeInvalidGap            = "GENERATION_INVALID_MIN_GAP"
	CodeInvalidConsecutive    = "GENERATION_INVALID_MAX_CONSECUTIVE"
	CodeInvalidOverlapBonus   = "GENERATION_INVALID_OVERLAP_BONUS"
	CodeInvalidSegmentSize    = "GENERATION_INVALID_SEGMENT_SIZE"
	CodeProfileUnknown        = "PROFILE_UNKNOWN"
	CodeProfileInvalid        = "PROFILE_INVALID"
	CodeSessionComplete       = "SESSION_COMPLETE"
	CodeSessionNotStarted     = "SESSION_NOT_STARTED"
	CodeSessionInvalidMode    = "SESSION_INVALID_MODE"
	CodeSessionInvalidRound   = "SESSION_INVALID_ROUND"
	CodeSessionInvalidChannel = "SESSION_INVALID_CHANNEL"
	CodeSnapshotWindowInvalid = "SNAPSHOT_WINDOW_INVALID"
	CodeScenarioParse         = "SCENARIO_PARSE"
	CodeScenarioAssertion     = "SCENARIO_ASSERTION"
	CodeSeedOutOfRange        = "SEED_OUT_OF_RANGE"
	CodeNotFound              = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Generation errors
		CodeInvalidNLevel:       "N-back level must be at least 1, got {{.NLevel}}",
		CodeNoEligibleRounds:    "Sequence length {{.Length}} leaves no rounds to score at N-back level {{.NLevel}}",
		CodeGridTooSmall:        "Grid size must be at least 2, got {{.GridSize}}",
		CodeInvalidMatchRate:    "Match rate {{.Rate}} is outside the allowed range",
		CodeInvalidGap:          "Minimum gap between matches must be at least 1, got {{.MinGap}}",
		CodeInvalidConsecutive:  "Maximum consecutive matches must be at least 1, got {{.MaxConsecutive}}",
		CodeInvalidOverlapBonus: "Overlap bonus {{.Bonus}} is outside the allowed range",
		CodeInvalidSegmentSize:  "Segment size must be at least 1, got {{.SegmentSize}}",

		// Profile errors
		CodeProfileUnknown: "No difficulty profile named {{.Name}}",
		CodeProfileInvalid: "Difficulty profile is invalid",

		// Session errors
		CodeSessionComplete:       "The training session has emitted all of its rounds",
		CodeSessionNotStarted:     "No stimulus has been emitted yet",
		CodeSessionInvalidMode:    "Session mode must be batch or streaming",
		CodeSessionInvalidRound:   "Round {{.Round}} is out of range",
		CodeSessionInvalidChannel: "Responses must name the position or audio channel",
		CodeSnapshotWindowInvalid: "Snapshot window must be at least 1, got {{.Window}}",

		// Scenario errors
		CodeScenarioParse:     "Scenario script could not be loaded",
		CodeScenarioAssertion: "Scenario assertion failed: {{.Detail}}",

		// Random/seed errors
		CodeSeedOutOfRange: "Seed value is out of range",

		// Storage/lookup errors
		CodeNotFound: "The requested resource was not found",
	},
}
