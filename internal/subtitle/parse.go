package subtitle

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// parsers maps formats to their structural parser.
// SSA files use the same section layout as ASS.
var parsers = map[Format]func(string) ([]Entry, error){
	FormatSRT: ParseSRT,
	FormatVTT: ParseVTT,
	FormatASS: ParseASS,
	FormatSSA: ParseASS,
}

// Parse decodes data using the named charset and parses it as the given
// format. The charset comes from a best-effort sniffer upstream; a charset
// that cannot be decoded fails the whole parse, structural problems inside
// the file never do.
func Parse(data []byte, charset string, format Format) ([]Entry, error) {
	text, err := decodeText(data, charset)
	if err != nil {
		return nil, err
	}
	parse, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser for subtitle format %s", format)
	}
	return parse(text)
}

// decodeText converts raw bytes to a string using the named charset.
func decodeText(data []byte, charset string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	var enc encoding.Encoding
	switch name {
	case "", "utf-8", "utf8":
		return string(stripUTF8BOM(data)), nil
	case "utf-16le":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		var err error
		enc, err = ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return "", fmt.Errorf("unsupported charset %q", charset)
		}
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(out), nil
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// splitBlocks splits subtitle text into blocks separated by blank lines.
// Lines within a block keep their order; carriage returns are stripped.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// sortEntries orders entries by start time. Source order is not trusted,
// but entries with equal starts keep it.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})
}
