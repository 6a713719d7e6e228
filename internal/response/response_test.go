package response

import (
	"testing"
	"time"

	"github.com/louisbranch/nback-engine/internal/stimulus"
)

// matchSequence builds a sequence where round 2 is a position match
// and round 3 is an audio match at n-back level 2.
func matchSequence(t *testing.T) stimulus.Sequence {
	t.Helper()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	values := []struct{ pos, aud int }{
		{4, 2}, {7, 5}, {4, 3}, {1, 5}, {8, 0},
	}
	seq := make(stimulus.Sequence, 0, len(values))
	for _, v := range values {
		seq = append(seq, stimulus.Stimulus{PositionIndex: v.pos, AudioIndex: v.aud, EmittedAt: at})
	}
	return seq
}

func TestClassify(t *testing.T) {
	seq := matchSequence(t)

	tests := []struct {
		name      string
		round     int
		ch        stimulus.Channel
		responded bool
		rtMs      int
		wantKind  Kind
		wantRT    int
	}{
		{"hit on position match", 2, stimulus.ChannelPosition, true, 640, KindHit, 640},
		{"miss on position match", 2, stimulus.ChannelPosition, false, 0, KindMiss, 0},
		{"hit on audio match", 3, stimulus.ChannelAudio, true, 820, KindHit, 820},
		{"false alarm on non-match", 3, stimulus.ChannelPosition, true, 510, KindFalseAlarm, 510},
		{"no opportunity on non-match", 4, stimulus.ChannelAudio, false, 0, KindNoOpportunity, 0},
		{"warmup response is false alarm", 1, stimulus.ChannelPosition, true, 450, KindFalseAlarm, 450},
		{"warmup silence is no opportunity", 0, stimulus.ChannelAudio, false, 0, KindNoOpportunity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(seq, 2, tt.round, tt.ch, tt.responded, tt.rtMs)

			if rec.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", rec.Kind, tt.wantKind)
			}
			if rec.ResponseTimeMs != tt.wantRT {
				t.Errorf("ResponseTimeMs = %d, want %d", rec.ResponseTimeMs, tt.wantRT)
			}
			if rec.RoundIndex != tt.round {
				t.Errorf("RoundIndex = %d, want %d", rec.RoundIndex, tt.round)
			}
			if rec.Channel != tt.ch {
				t.Errorf("Channel = %v, want %v", rec.Channel, tt.ch)
			}
		})
	}
}

func TestKindCorrect(t *testing.T) {
	correct := []Kind{KindHit, KindNoOpportunity}
	incorrect := []Kind{KindMiss, KindFalseAlarm, KindUnspecified}

	for _, k := range correct {
		if !k.Correct() {
			t.Errorf("%v.Correct() = false, want true", k)
		}
	}
	for _, k := range incorrect {
		if k.Correct() {
			t.Errorf("%v.Correct() = true, want false", k)
		}
	}
}

func TestKindResponded(t *testing.T) {
	responded := []Kind{KindHit, KindFalseAlarm}
	withheld := []Kind{KindMiss, KindNoOpportunity, KindUnspecified}

	for _, k := range responded {
		if !k.Responded() {
			t.Errorf("%v.Responded() = false, want true", k)
		}
	}
	for _, k := range withheld {
		if k.Responded() {
			t.Errorf("%v.Responded() = true, want false", k)
		}
	}
}
