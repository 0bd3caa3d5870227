package engine

// WinPower is the power of the 2048 tile.
const WinPower Power = 11

// Congratulation tracks whether the win signal has been raised this session.
type Congratulation int

const (
	NotYet Congratulation = iota
	// Pending means the win signal was raised and not yet acknowledged.
	Pending
	Congratulated
)

func (c Congratulation) String() string {
	switch c {
	case NotYet:
		return "not_yet"
	case Pending:
		return "pending"
	case Congratulated:
		return "congratulated"
	default:
		return "unknown"
	}
}

// Tracker accumulates the score and raises the one-shot win signal.
type Tracker struct {
	score int
	state Congratulation
}

// NewTracker returns a tracker with zero score.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record adds 2^p to the score for every merge and reports whether this
// batch raised the win signal. The signal fires only while the tracker is
// in NotYet.
func (t *Tracker) Record(merges []MergeEvent) bool {
	reached := false
	for _, m := range merges {
		t.score += m.Power.Value()
		if m.Result() == WinPower {
			reached = true
		}
	}

	if reached && t.state == NotYet {
		t.state = Pending
		return true
	}
	return false
}

// Acknowledge marks a pending win signal as seen.
func (t *Tracker) Acknowledge() {
	if t.state == Pending {
		t.state = Congratulated
	}
}

// Score returns the accumulated score.
func (t *Tracker) Score() int {
	return t.score
}

// Congratulation returns the current win flag.
func (t *Tracker) Congratulation() Congratulation {
	return t.state
}

// Reset clears the score and the win flag.
func (t *Tracker) Reset() {
	t.score = 0
	t.state = NotYet
}
