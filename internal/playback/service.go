package playback

import (
	"time"

	"github.com/reelplayer/reel/internal/playlist"
)

// Service defines the playback service contract: the queue controller
// plus the thin driver layer over the decode engine.
type Service interface {
	// Playback control
	Play() error
	Pause()
	Stop()
	Toggle()
	Next()
	Previous()
	SeekTo(pos time.Duration)

	// Queue mutation. Out-of-range indices are clamped or ignored, never
	// an error: queue operations degrade gracefully mid-session.
	SetQueue(items []playlist.Item, startIndex int)
	AddItems(items ...playlist.Item)
	InsertAt(index int, item playlist.Item)
	RemoveAt(index int)
	MoveItem(from, to int)
	ClearQueue()
	PlayAt(index int)

	// State queries
	State() State
	IsPlaying() bool
	IsPaused() bool
	IsStopped() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentItem() *playlist.Item

	// Queue queries
	QueueItems() []playlist.Item
	QueueIndex() int
	QueueLen() int
	QueueIsEmpty() bool

	// Queue history
	Undo() bool
	Redo() bool

	// Mode control
	RepeatMode() playlist.RepeatMode
	SetRepeatMode(mode playlist.RepeatMode)
	CycleRepeatMode() playlist.RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool
	ShuffleOrder() []int

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
