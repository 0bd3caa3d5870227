package engine

import "testing"

func TestTrackerScore(t *testing.T) {
	tr := NewTracker()

	tr.Record([]MergeEvent{{Power: 1}, {Power: 1}})
	tr.Record(nil)
	tr.Record([]MergeEvent{{Power: 3}})

	if got := tr.Score(); got != 12 {
		t.Errorf("Score() = %d, want 12", got)
	}
}

func TestTrackerWinIsOneShot(t *testing.T) {
	tr := NewTracker()
	to2048 := []MergeEvent{{Power: 10}}

	if tr.Record([]MergeEvent{{Power: 9}}) {
		t.Fatal("merge into 1024 should not raise the win signal")
	}
	if !tr.Record(to2048) {
		t.Fatal("first merge into 2048 should raise the win signal")
	}
	if tr.Congratulation() != Pending {
		t.Errorf("Congratulation() = %s, want pending", tr.Congratulation())
	}
	if tr.Record(to2048) {
		t.Error("second 2048 while pending should not raise the signal again")
	}

	tr.Acknowledge()
	if tr.Congratulation() != Congratulated {
		t.Errorf("Congratulation() = %s, want congratulated", tr.Congratulation())
	}
	if tr.Record(to2048) {
		t.Error("2048 after acknowledgement should not raise the signal")
	}

	tr.Reset()
	if tr.Score() != 0 || tr.Congratulation() != NotYet {
		t.Errorf("after Reset: score %d flag %s, want 0 not_yet", tr.Score(), tr.Congratulation())
	}
	if !tr.Record(to2048) {
		t.Error("win signal should be available again after Reset")
	}
}

func TestTrackerLargerMergeDoesNotWin(t *testing.T) {
	tr := NewTracker()
	if tr.Record([]MergeEvent{{Power: 11}}) {
		t.Error("merge into 4096 should not raise the win signal")
	}
}

func TestTrackerAcknowledgeWithoutWin(t *testing.T) {
	tr := NewTracker()
	tr.Acknowledge()
	if tr.Congratulation() != NotYet {
		t.Errorf("Congratulation() = %s, want not_yet", tr.Congratulation())
	}
}
