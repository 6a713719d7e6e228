package stimulus

import (
	"time"

	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// AudioIndexCount is the number of distinct audio cues available.
const AudioIndexCount = 8

// Channel identifies one of the two stimulus channels.
type Channel int

const (
	ChannelUnspecified Channel = iota
	ChannelPosition
	ChannelAudio
)

func (c Channel) String() string {
	switch c {
	case ChannelUnspecified:
		return "Unspecified"
	case ChannelPosition:
		return "Position"
	case ChannelAudio:
		return "Audio"
	default:
		return "Unknown"
	}
}

var (
	// ErrInvalidNLevel indicates the n-back level is below 1.
	ErrInvalidNLevel = apperrors.New(apperrors.CodeInvalidNLevel, "n-back level must be at least 1")
	// ErrNoEligibleRounds indicates the sequence length leaves nothing to score.
	ErrNoEligibleRounds = apperrors.New(apperrors.CodeNoEligibleRounds, "sequence length must exceed the n-back level")
	// ErrGridTooSmall indicates the position grid cannot host non-matches.
	ErrGridTooSmall = apperrors.New(apperrors.CodeGridTooSmall, "grid size must be at least 2")
	// ErrInvalidMatchRate indicates a match rate outside [0, 1].
	ErrInvalidMatchRate = apperrors.New(apperrors.CodeInvalidMatchRate, "match rate must be between 0 and 1")
	// ErrInvalidGap indicates a minimum gap below 1.
	ErrInvalidGap = apperrors.New(apperrors.CodeInvalidGap, "minimum gap must be at least 1")
	// ErrInvalidConsecutive indicates a consecutive limit below 1.
	ErrInvalidConsecutive = apperrors.New(apperrors.CodeInvalidConsecutive, "maximum consecutive matches must be at least 1")
	// ErrInvalidOverlapBonus indicates an overlap bonus outside [0, 0.5].
	ErrInvalidOverlapBonus = apperrors.New(apperrors.CodeInvalidOverlapBonus, "overlap bonus must be between 0 and 0.5")
)

// Stimulus is a single dual-channel presentation round.
// Once emitted to a trainee it is immutable.
type Stimulus struct {
	PositionIndex int       // cell on the position grid, 0..gridSize^2-1
	AudioIndex    int       // audio cue, 0..AudioIndexCount-1
	EmittedAt     time.Time // when the round was stamped
}

// Sequence is an ordered run of stimuli for one session.
type Sequence []Stimulus

// PositionMatch reports whether round i repeats the position shown
// nLevel rounds earlier. The first nLevel rounds never match, and
// out-of-range queries are simply false.
func (s Sequence) PositionMatch(i, nLevel int) bool {
	if nLevel < 1 || i < nLevel || i >= len(s) {
		return false
	}
	return s[i].PositionIndex == s[i-nLevel].PositionIndex
}

// AudioMatch reports whether round i repeats the audio cue played
// nLevel rounds earlier, with the same boundary behavior as
// PositionMatch.
func (s Sequence) AudioMatch(i, nLevel int) bool {
	if nLevel < 1 || i < nLevel || i >= len(s) {
		return false
	}
	return s[i].AudioIndex == s[i-nLevel].AudioIndex
}

// MatchOn reports whether round i is a match on the given channel.
func (s Sequence) MatchOn(ch Channel, i, nLevel int) bool {
	switch ch {
	case ChannelPosition:
		return s.PositionMatch(i, nLevel)
	case ChannelAudio:
		return s.AudioMatch(i, nLevel)
	default:
		return false
	}
}

// EligibleRounds returns how many rounds of the sequence can be scored
// at the given n-back level.
func (s Sequence) EligibleRounds(nLevel int) int {
	if nLevel < 1 || len(s) <= nLevel {
		return 0
	}
	return len(s) - nLevel
}
