package subtitle

import "time"

// Index answers "which entry is active at this position" over a sorted
// entry list. Positions from normal playback arrive in increasing order,
// so a moving cursor makes the steady-state lookup O(1); a backward seek
// resets the cursor and re-scans.
//
// An entry is active while start <= pos < end (end-exclusive).
//
// The cursor makes Index single-caller; the owning manager serializes
// access and swaps in a fresh Index on track switch.
type Index struct {
	entries []Entry
	cursor  int
	lastPos time.Duration
	offset  time.Duration
}

// NewIndex creates an index over entries, which must be sorted ascending
// by start time (as produced by the parsers).
func NewIndex(entries []Entry) *Index {
	return &Index{entries: entries, lastPos: -1 << 62}
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entries returns the underlying entry list. Callers must not mutate it.
func (x *Index) Entries() []Entry {
	return x.entries
}

// SetOffset sets the sync offset added to every queried position.
// Entries themselves are never shifted.
func (x *Index) SetOffset(d time.Duration) {
	x.offset = d
	// Force a re-scan on the next query; the adjusted position may have
	// moved backward relative to the cursor.
	x.lastPos = -1 << 62
	x.cursor = 0
}

// Offset returns the current sync offset.
func (x *Index) Offset() time.Duration {
	return x.offset
}

// EntryAt returns the entry active at the given playback position, or nil
// when none is. The position is translated by the sync offset first.
func (x *Index) EntryAt(pos time.Duration) *Entry {
	if len(x.entries) == 0 {
		return nil
	}
	pos += x.offset
	if pos < x.lastPos {
		// Backward seek: the forward-only scan is just an optimization,
		// restart it from the top.
		x.cursor = 0
	}
	x.lastPos = pos

	// Skip entries that have fully passed.
	for x.cursor < len(x.entries) && x.entries[x.cursor].End <= pos {
		x.cursor++
	}
	if x.cursor >= len(x.entries) {
		return nil
	}
	if e := &x.entries[x.cursor]; e.Start <= pos && pos < e.End {
		return e
	}
	return nil
}
