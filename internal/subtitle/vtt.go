package subtitle

import (
	"regexp"
	"strings"
)

// vttTimeRe matches a WebVTT cue timing line. Hours are optional, the
// millisecond separator is a dot, and trailing cue settings are allowed.
var vttTimeRe = regexp.MustCompile(
	`^(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})`)

// ParseVTT parses WebVTT text into a list of entries sorted by start time.
// The WEBVTT magic header, NOTE/STYLE/REGION blocks and malformed cues are
// all skipped individually.
func ParseVTT(text string) ([]Entry, error) {
	var entries []Entry
	for i, block := range splitBlocks(text) {
		if i == 0 && strings.HasPrefix(block[0], "WEBVTT") {
			continue
		}
		switch {
		case strings.HasPrefix(block[0], "NOTE"),
			strings.HasPrefix(block[0], "STYLE"),
			strings.HasPrefix(block[0], "REGION"):
			continue
		}
		if e, ok := parseVTTCue(block); ok {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func parseVTTCue(lines []string) (Entry, bool) {
	// An optional cue identifier precedes the timing line.
	i := 0
	if !strings.Contains(lines[i], "-->") && i+1 < len(lines) {
		i++
	}
	m := vttTimeRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return Entry{}, false
	}
	// The two-field form "MM:SS.mmm" leaves the hours group empty.
	start := clockTime(orZero(m[1]), m[2], m[3], millis(m[4]))
	end := clockTime(orZero(m[5]), m[6], m[7], millis(m[8]))
	if end <= start {
		return Entry{}, false
	}
	text := strings.Join(lines[i+1:], "\n")
	if strings.TrimSpace(text) == "" {
		return Entry{}, false
	}
	return Entry{Start: start, End: end, Text: text}, true
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
