package subtitle

import "time"

// TracksChange is emitted when the available track list changes.
type TracksChange struct {
	MediaID string
	Tracks  []Track
}

// SelectionChange is emitted when the loaded track changes.
// Current is nil when subtitles are disabled.
type SelectionChange struct {
	Current *Track
	Entries int
}

// OffsetChange is emitted when the sync offset changes.
type OffsetChange struct {
	Offset time.Duration
}

// ConfigChange is emitted when display preferences change.
type ConfigChange struct {
	Config Config
}
