package performance

import (
	"testing"

	"github.com/louisbranch/nback-engine/internal/response"
	"github.com/louisbranch/nback-engine/internal/stimulus"
)

func record(round int, kind response.Kind, rtMs int) response.Record {
	return response.Record{
		Channel:        stimulus.ChannelPosition,
		Kind:           kind,
		RoundIndex:     round,
		ResponseTimeMs: rtMs,
	}
}

func TestCapture(t *testing.T) {
	log := []response.Record{
		record(2, response.KindHit, 600),
		record(3, response.KindNoOpportunity, 0),
		record(4, response.KindMiss, 0),
		record(5, response.KindFalseAlarm, 400),
		record(6, response.KindHit, 800),
	}

	snap := Capture(log, 0)

	// 3 of 5 correct: two hits plus the withheld no-opportunity.
	if want := 60.0; snap.Accuracy != want {
		t.Errorf("Accuracy = %.1f, want %.1f", snap.Accuracy, want)
	}
	// Mean over the three responded records: (600+400+800)/3.
	if want := 600.0; snap.MeanResponseTimeMs != want {
		t.Errorf("MeanResponseTimeMs = %.1f, want %.1f", snap.MeanResponseTimeMs, want)
	}
	if snap.MissedCount != 1 {
		t.Errorf("MissedCount = %d, want 1", snap.MissedCount)
	}
	if snap.TotalAttempts != 5 {
		t.Errorf("TotalAttempts = %d, want 5", snap.TotalAttempts)
	}
	if snap.CapturedAtRound != 6 {
		t.Errorf("CapturedAtRound = %d, want 6", snap.CapturedAtRound)
	}
	if snap.Difficulty != 1 {
		t.Errorf("Difficulty = %.2f, want baseline 1", snap.Difficulty)
	}
	if want := 0.2; snap.MissedRate() != want {
		t.Errorf("MissedRate() = %.2f, want %.2f", snap.MissedRate(), want)
	}
}

func TestCaptureTrailingWindow(t *testing.T) {
	log := []response.Record{
		record(2, response.KindMiss, 0),
		record(3, response.KindMiss, 0),
		record(4, response.KindHit, 500),
		record(5, response.KindHit, 700),
	}

	snap := Capture(log, 2)

	if snap.TotalAttempts != 2 {
		t.Fatalf("TotalAttempts = %d, want 2", snap.TotalAttempts)
	}
	if snap.Accuracy != 100 {
		t.Errorf("Accuracy = %.1f, want 100 over the trailing window", snap.Accuracy)
	}
	if snap.MissedCount != 0 {
		t.Errorf("MissedCount = %d, want 0", snap.MissedCount)
	}
}

func TestCaptureEmptyLog(t *testing.T) {
	snap := Capture(nil, 5)

	if snap.Accuracy != 0 || snap.TotalAttempts != 0 || snap.MissedCount != 0 {
		t.Errorf("empty log snapshot = %+v, want zero aggregates", snap)
	}
	if snap.Difficulty != 1 {
		t.Errorf("Difficulty = %.2f, want baseline 1", snap.Difficulty)
	}
	if snap.MissedRate() != 0 {
		t.Errorf("MissedRate() = %.2f, want 0", snap.MissedRate())
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(3)

	for round := 1; round <= 5; round++ {
		h.Push(Snapshot{CapturedAtRound: round})
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	all := h.All()
	for i, want := range []int{3, 4, 5} {
		if all[i].CapturedAtRound != want {
			t.Errorf("All()[%d].CapturedAtRound = %d, want %d", i, all[i].CapturedAtRound, want)
		}
	}
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory(0)
	for round := 1; round <= 4; round++ {
		h.Push(Snapshot{CapturedAtRound: round})
	}

	last := h.Last(2)
	if len(last) != 2 || last[0].CapturedAtRound != 3 || last[1].CapturedAtRound != 4 {
		t.Fatalf("Last(2) = %+v, want rounds 3 then 4", last)
	}

	if got := h.Last(99); len(got) != 4 {
		t.Errorf("Last(99) returned %d snapshots, want all 4", len(got))
	}
	if got := h.Last(0); got != nil {
		t.Errorf("Last(0) = %+v, want nil", got)
	}
}

func TestHistoryAllIsACopy(t *testing.T) {
	h := NewHistory(2)
	h.Push(Snapshot{CapturedAtRound: 1})

	all := h.All()
	all[0].CapturedAtRound = 99

	if h.All()[0].CapturedAtRound != 1 {
		t.Fatal("mutating All() result must not touch retained snapshots")
	}
}
