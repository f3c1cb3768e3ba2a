// Package subtitle provides multi-format subtitle parsing and
// time-indexed retrieval for playback.
package subtitle

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is a single timed subtitle cue.
// Entries are immutable once produced by a parser.
type Entry struct {
	Start time.Duration
	End   time.Duration
	Text  string
	Style *Style // nil means track default styling
}

// Style is an optional per-entry styling override.
type Style struct {
	Bold   bool
	Italic bool
	Color  string // hex RGB like "FFCC00", empty means default
}

// Format identifies a subtitle file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSRT
	FormatVTT
	FormatASS
	FormatSSA
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "SRT"
	case FormatVTT:
		return "VTT"
	case FormatASS:
		return "ASS"
	case FormatSSA:
		return "SSA"
	default:
		return "Unknown"
	}
}

// FormatFromName parses a format name as produced by String.
func FormatFromName(name string) Format {
	switch strings.ToUpper(name) {
	case "SRT":
		return FormatSRT
	case "VTT":
		return FormatVTT
	case "ASS":
		return FormatASS
	case "SSA":
		return FormatSSA
	default:
		return FormatUnknown
	}
}

// formatByExt maps file extensions to subtitle formats.
var formatByExt = map[string]Format{
	".srt": FormatSRT,
	".vtt": FormatVTT,
	".ass": FormatASS,
	".ssa": FormatSSA,
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) Format {
	return formatByExt[strings.ToLower(filepath.Ext(path))]
}

// IsSubtitlePath returns true if the path has a known subtitle extension.
func IsSubtitlePath(path string) bool {
	return FormatFromPath(path) != FormatUnknown
}

// Track describes one subtitle track available for a media item.
type Track struct {
	ID       string
	Title    string
	Language string // ISO 639-1 code, empty if unknown
	External bool
	Source   string // file path for external tracks, stream locator for embedded
	Format   Format
	Default  bool
}
