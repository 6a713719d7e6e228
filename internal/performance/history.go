package performance

// DefaultHistoryLimit bounds how many snapshots a session retains.
const DefaultHistoryLimit = 20

// History is a bounded, oldest-first run of snapshots. Each session
// owns one; it is not safe for concurrent use.
type History struct {
	limit int
	snaps []Snapshot
}

// NewHistory creates a history bounded at limit snapshots. A limit of
// zero or less falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push appends a snapshot, evicting the oldest when full.
func (h *History) Push(s Snapshot) {
	if len(h.snaps) == h.limit {
		copy(h.snaps, h.snaps[1:])
		h.snaps[len(h.snaps)-1] = s
		return
	}
	h.snaps = append(h.snaps, s)
}

// Len returns how many snapshots are retained.
func (h *History) Len() int {
	return len(h.snaps)
}

// All returns a copy of the retained snapshots, oldest first.
func (h *History) All() []Snapshot {
	out := make([]Snapshot, len(h.snaps))
	copy(out, h.snaps)
	return out
}

// Last returns a copy of the most recent n snapshots, oldest first.
// Asking for more than is retained returns everything.
func (h *History) Last(n int) []Snapshot {
	if n <= 0 {
		return nil
	}
	if n > len(h.snaps) {
		n = len(h.snaps)
	}
	out := make([]Snapshot, n)
	copy(out, h.snaps[len(h.snaps)-n:])
	return out
}
