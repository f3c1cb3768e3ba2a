package playback

import (
	"time"

	"github.com/reelplayer/reel/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different item.
//
// Queue navigation without playback does not emit; only a committed play
// does. Rapid navigation therefore collapses to a single notification for
// the item that actually starts.
type TrackChange struct {
	Previous      *playlist.Item
	Current       *playlist.Item
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or position change.
type QueueChange struct {
	Items []playlist.Item
	Index int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode playlist.RepeatMode
	Shuffle    bool
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // item path if applicable
	Err       error
}
