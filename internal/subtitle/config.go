package subtitle

// Config holds subtitle display and behavior preferences for a playback
// session. One live instance is owned by the Manager; the renderer reads
// it through state snapshots.
type Config struct {
	FontSize           int
	TextColor          string // hex RGB
	BackgroundColor    string // hex RGB, empty for transparent
	MarginBottom       int    // pixels from the bottom edge
	PreferredLanguages []string
	AutoLoad           bool
}

// DefaultConfig returns the built-in preferences.
func DefaultConfig() Config {
	return Config{
		FontSize:     22,
		TextColor:    "FFFFFF",
		MarginBottom: 48,
		AutoLoad:     true,
	}
}
