package subtitle

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// assDefaultFormat is the v4+ field order, used when no Format line
// precedes the first Dialogue line.
var assDefaultFormat = []string{
	"layer", "start", "end", "style", "name",
	"marginl", "marginr", "marginv", "effect", "text",
}

// assTimeRe matches "H:MM:SS.cc" (centiseconds).
var assTimeRe = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[.:](\d{1,2})$`)

// assColorRe matches inline color overrides like \c&H0000FF& or \1c&HFF00&.
var assColorRe = regexp.MustCompile(`\\1?c&H([0-9A-Fa-f]{2,6})&`)

// ParseASS parses ASS/SSA text into a list of entries sorted by start time.
// Only the [Events] section matters; its Format line defines the Dialogue
// field order. Dialogue lines that cannot be mapped to it are skipped.
func ParseASS(text string) ([]Entry, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inEvents := false
	fields := assDefaultFormat
	var entries []Entry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			inEvents = strings.EqualFold(line, "[events]")
		case !inEvents:
		case strings.HasPrefix(line, "Format:"):
			fields = parseASSFormat(strings.TrimPrefix(line, "Format:"))
		case strings.HasPrefix(line, "Dialogue:"):
			if e, ok := parseDialogue(strings.TrimPrefix(line, "Dialogue:"), fields); ok {
				entries = append(entries, e)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func parseASSFormat(s string) []string {
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.ToLower(strings.TrimSpace(p)))
	}
	return fields
}

// parseDialogue splits a Dialogue line using the current field order. The
// split is bounded by the field count so the Text field keeps literal commas.
func parseDialogue(s string, fields []string) (Entry, bool) {
	values := strings.SplitN(s, ",", len(fields))
	if len(values) != len(fields) {
		return Entry{}, false
	}
	var startStr, endStr, raw string
	for i, name := range fields {
		switch name {
		case "start":
			startStr = strings.TrimSpace(values[i])
		case "end":
			endStr = strings.TrimSpace(values[i])
		case "text":
			raw = values[i]
		}
	}
	start, ok := parseASSTime(startStr)
	if !ok {
		return Entry{}, false
	}
	end, ok := parseASSTime(endStr)
	if !ok || end <= start {
		return Entry{}, false
	}
	text, style := cleanASSText(raw)
	if strings.TrimSpace(text) == "" {
		return Entry{}, false
	}
	return Entry{Start: start, End: end, Text: text, Style: style}, true
}

func parseASSTime(s string) (time.Duration, bool) {
	m := assTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	cs := m[4]
	if len(cs) == 1 {
		cs += "0"
	}
	c, _ := strconv.Atoi(cs)
	return clockTime(m[1], m[2], m[3], c*10), true
}

// cleanASSText strips {...} override blocks from dialogue text and expands
// the \N, \n and \h escapes. Stripped overrides are kept for styling.
func cleanASSText(raw string) (string, *Style) {
	var b strings.Builder
	var tag strings.Builder
	var overrides []string
	depth := 0
	rs := []rune(raw)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
				overrides = append(overrides, tag.String())
				tag.Reset()
			}
		case depth > 0:
			tag.WriteRune(c)
		case c == '\\' && i+1 < len(rs):
			switch rs[i+1] {
			case 'N', 'n':
				b.WriteByte('\n')
				i++
			case 'h':
				b.WriteByte(' ')
				i++
			default:
				b.WriteRune(c)
			}
		default:
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String()), styleFromOverrides(overrides)
}

func styleFromOverrides(overrides []string) *Style {
	if len(overrides) == 0 {
		return nil
	}
	joined := strings.Join(overrides, `\`)
	var st Style
	found := false
	if strings.Contains(joined, `\b1`) {
		st.Bold = true
		found = true
	}
	if strings.Contains(joined, `\i1`) {
		st.Italic = true
		found = true
	}
	if m := assColorRe.FindStringSubmatch(joined); m != nil {
		st.Color = rgbFromASS(m[1])
		found = true
	}
	if !found {
		return nil
	}
	return &st
}

// rgbFromASS converts the ASS &HBBGGRR& channel order to RRGGBB.
func rgbFromASS(hex string) string {
	for len(hex) < 6 {
		hex = "0" + hex
	}
	hex = strings.ToUpper(hex)
	return hex[4:6] + hex[2:4] + hex[0:2]
}
