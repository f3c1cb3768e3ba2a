// Package playlist implements the ordered playback queue and its
// shuffle/repeat state machine.
package playlist

import "time"

// Item references a playable media item. The queue owns ordering and
// position; full metadata stays with the library.
type Item struct {
	ID       int64  // library media ID (0 if from filesystem)
	Path     string // file path for playback
	Title    string
	Duration time.Duration
}

// Playlist holds an ordered collection of items.
type Playlist struct {
	items []Item
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		items: make([]Item, 0),
	}
}

// Add appends items to the playlist.
func (p *Playlist) Add(items ...Item) {
	p.items = append(p.items, items...)
}

// InsertAt inserts an item, clamping the index into [0, len].
// Returns the index actually used.
func (p *Playlist) InsertAt(index int, item Item) int {
	if index < 0 {
		index = 0
	}
	if index > len(p.items) {
		index = len(p.items)
	}
	p.items = append(p.items[:index], append([]Item{item}, p.items[index:]...)...)
	return index
}

// Remove removes the item at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.items) {
		return false
	}
	p.items = append(p.items[:index], p.items[index+1:]...)
	return true
}

// Clear removes all items from the playlist.
func (p *Playlist) Clear() {
	p.items = p.items[:0]
}

// Items returns a copy of all items.
func (p *Playlist) Items() []Item {
	result := make([]Item, len(p.items))
	copy(result, p.items)
	return result
}

// Item returns the item at the given index, or nil if out of bounds.
func (p *Playlist) Item(index int) *Item {
	if index < 0 || index >= len(p.items) {
		return nil
	}
	return &p.items[index]
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	return len(p.items)
}

// Move moves the item at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.items) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.items) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	item := p.items[fromIndex]
	// Remove from old position
	p.items = append(p.items[:fromIndex], p.items[fromIndex+1:]...)
	// Insert at new position
	p.items = append(p.items[:toIndex], append([]Item{item}, p.items[toIndex:]...)...)
	return true
}
