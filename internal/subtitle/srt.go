package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// srtTimeRe matches a SubRip time range like "00:02:16,612 --> 00:02:19,376".
var srtTimeRe = regexp.MustCompile(
	`^(\d+):(\d{2}):(\d{2}),(\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2}),(\d{1,3})`)

// ParseSRT parses SubRip text into a list of entries sorted by start time.
// Blocks that fail to parse are skipped, not fatal.
func ParseSRT(text string) ([]Entry, error) {
	var entries []Entry
	for _, block := range splitBlocks(text) {
		if e, ok := parseSRTBlock(block); ok {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func parseSRTBlock(lines []string) (Entry, bool) {
	// The first line is the sequence number. It is not validated, and some
	// files omit it entirely.
	i := 0
	if !strings.Contains(lines[i], "-->") && i+1 < len(lines) {
		i++
	}
	m := srtTimeRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return Entry{}, false
	}
	start := clockTime(m[1], m[2], m[3], millis(m[4]))
	end := clockTime(m[5], m[6], m[7], millis(m[8]))
	if end <= start {
		return Entry{}, false
	}
	text := strings.Join(lines[i+1:], "\n")
	if strings.TrimSpace(text) == "" {
		return Entry{}, false
	}
	return Entry{Start: start, End: end, Text: text}, true
}

// millis converts a fractional field of 1-3 digits to milliseconds.
func millis(s string) int {
	for len(s) < 3 {
		s += "0"
	}
	ms, _ := strconv.Atoi(s)
	return ms
}

// clockTime builds a duration from hour/minute/second strings plus
// milliseconds. The fields are already digit-only from the regexp match.
func clockTime(h, m, s string, ms int) time.Duration {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ms)*time.Millisecond
}
