package playlist

import "math/rand"

// RepeatMode defines what happens when playback advances past the last item.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// PlayingQueue wraps a Playlist with playback position, shuffle and repeat
// state.
//
// Invariants: currentIndex is a valid index whenever the queue is
// non-empty (0 when empty); the shuffle order, when enabled, is a
// permutation of all item indices with the current index first. Every
// mutation renumbers currentIndex and regenerates the shuffle order
// together, so no caller observes one without the other.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int
	repeatMode   RepeatMode
	shuffle      bool
	order        []int // shuffle permutation over item indices, nil when off
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist: NewPlaylist(),
	}
}

// Current returns the currently playing item, or nil if the queue is empty.
func (q *PlayingQueue) Current() *Item {
	return q.playlist.Item(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing item.
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Items returns all items in the queue.
func (q *PlayingQueue) Items() []Item {
	return q.playlist.Items()
}

// Item returns the item at the given index, or nil if out of bounds.
func (q *PlayingQueue) Item(index int) *Item {
	return q.playlist.Item(index)
}

// Len returns the number of items in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no items.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// Replace replaces the whole queue and clamps startIndex into it.
// Returns the item at the resulting index, or nil for an empty queue.
func (q *PlayingQueue) Replace(items []Item, startIndex int) *Item {
	q.playlist.Clear()
	q.playlist.Add(items...)
	q.currentIndex = clampIndex(startIndex, q.playlist.Len())
	q.regenerateOrder()
	return q.Current()
}

// Add appends items without changing what is playing. The shuffle order
// is regenerated rather than patched; a length change invalidates it.
func (q *PlayingQueue) Add(items ...Item) {
	q.playlist.Add(items...)
	q.regenerateOrder()
}

// InsertAt inserts an item at the given index (clamped into [0, len]).
// Inserting at or before the current index shifts it by one so the
// playing item stays the same item.
func (q *PlayingQueue) InsertAt(index int, item Item) {
	wasEmpty := q.playlist.Len() == 0
	index = q.playlist.InsertAt(index, item)
	if !wasEmpty && index <= q.currentIndex {
		q.currentIndex++
	}
	q.regenerateOrder()
}

// RemoveAt removes the item at the given index. currentChanged reports
// that the playing item was removed: the item that slid into its slot
// becomes current, clamped at the tail, and the caller should reload.
func (q *PlayingQueue) RemoveAt(index int) (ok, currentChanged bool) {
	if !q.playlist.Remove(index) {
		return false, false
	}
	switch {
	case q.playlist.Len() == 0:
		q.currentIndex = 0
		currentChanged = true
	case index < q.currentIndex:
		q.currentIndex--
	case index == q.currentIndex:
		if q.currentIndex >= q.playlist.Len() {
			q.currentIndex = q.playlist.Len() - 1
		}
		currentChanged = true
	}
	q.regenerateOrder()
	return true, currentChanged
}

// Move reorders the queue. The current index follows the item that was
// playing, whichever side of the move it is on.
func (q *PlayingQueue) Move(from, to int) bool {
	if !q.playlist.Move(from, to) {
		return false
	}
	switch {
	case from == q.currentIndex:
		q.currentIndex = to
	case from < q.currentIndex && to >= q.currentIndex:
		q.currentIndex--
	case from > q.currentIndex && to <= q.currentIndex:
		q.currentIndex++
	}
	q.regenerateOrder()
	return true
}

// Clear removes all items and resets the position.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = 0
	q.order = nil
}

// JumpTo sets the current index to the specified position.
// Returns the item at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Item {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Next moves to the next item with wraparound, following the shuffle
// order when enabled. User navigation ignores the repeat mode.
// Returns nil on an empty queue.
func (q *PlayingQueue) Next() *Item {
	return q.step(1)
}

// Previous moves to the previous item with wraparound, following the
// shuffle order when enabled. Returns nil on an empty queue.
func (q *PlayingQueue) Previous() *Item {
	return q.step(-1)
}

func (q *PlayingQueue) step(delta int) *Item {
	n := q.playlist.Len()
	if n == 0 {
		return nil
	}
	if q.shuffle {
		pos := q.orderPos(q.currentIndex)
		q.currentIndex = q.order[((pos+delta)%n+n)%n]
	} else {
		q.currentIndex = ((q.currentIndex+delta)%n + n) % n
	}
	return q.Current()
}

// Advance is the end-of-track transition and consults the repeat mode:
// RepeatOne replays the current item, RepeatAll wraps past the end, and
// RepeatOff returns nil at the end of the active order to stop playback.
func (q *PlayingQueue) Advance() *Item {
	n := q.playlist.Len()
	if n == 0 {
		return nil
	}
	if q.repeatMode == RepeatOne {
		return q.Current()
	}
	atEnd := q.currentIndex == n-1
	if q.shuffle {
		atEnd = q.orderPos(q.currentIndex) == n-1
	}
	if atEnd && q.repeatMode == RepeatOff {
		return nil
	}
	return q.step(1)
}

// SetShuffle toggles shuffle mode. Turning it on generates a fresh
// permutation with the current index first, so advancing moves into new
// territory; turning it off resumes insertion order.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	q.shuffle = enabled
	q.regenerateOrder()
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// ToggleShuffle flips shuffle mode and returns the new value.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// Order returns a copy of the shuffle permutation, or nil when shuffle
// is off.
func (q *PlayingQueue) Order() []int {
	if q.order == nil {
		return nil
	}
	order := make([]int, len(q.order))
	copy(order, q.order)
	return order
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeatMode = mode
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeatMode
}

// CycleRepeatMode advances Off -> All -> One -> Off and returns the new mode.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	switch q.repeatMode {
	case RepeatOff:
		q.repeatMode = RepeatAll
	case RepeatAll:
		q.repeatMode = RepeatOne
	default:
		q.repeatMode = RepeatOff
	}
	return q.repeatMode
}

// regenerateOrder rebuilds the shuffle permutation after any structural
// change. The current index always ends up first.
func (q *PlayingQueue) regenerateOrder() {
	n := q.playlist.Len()
	if !q.shuffle || n == 0 {
		q.order = nil
		return
	}
	q.order = rand.Perm(n)
	for i, idx := range q.order {
		if idx == q.currentIndex {
			q.order[0], q.order[i] = q.order[i], q.order[0]
			break
		}
	}
}

func (q *PlayingQueue) orderPos(index int) int {
	for i, idx := range q.order {
		if idx == index {
			return i
		}
	}
	return 0
}

func clampIndex(index, length int) int {
	if length == 0 || index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}
