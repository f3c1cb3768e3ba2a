// subdump parses a subtitle file and prints its cues, a quick check
// for timing and encoding problems in a subtitle track.
//
// Usage:
//
//	subdump [-at position] file.srt
//
// With -at, only the cue active at that position is printed.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/reelplayer/reel/internal/errmsg"
	"github.com/reelplayer/reel/internal/media"
	"github.com/reelplayer/reel/internal/subtitle"
)

func main() {
	at := flag.Duration("at", -1, "print only the cue active at this position (e.g. 1m30s)")
	offset := flag.Duration("offset", 0, "sync offset to apply (e.g. -2s)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: subdump [-at position] [-offset shift] <subtitle file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	format := subtitle.FormatFromPath(path)
	if format == subtitle.FormatUnknown {
		fmt.Fprintf(os.Stderr, "subdump: unrecognized subtitle extension: %s\n", path)
		os.Exit(1)
	}

	source := media.NewFilesystemSource(afero.NewOsFs())
	data, err := source.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpMediaOpen, path, err))
		os.Exit(1)
	}

	entries, err := subtitle.Parse(data, source.DetectEncoding(data), format)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpSubtitleParse, path, err))
		os.Exit(1)
	}

	if *at >= 0 {
		index := subtitle.NewIndex(entries)
		index.SetOffset(*offset)
		e := index.EntryAt(*at)
		if e == nil {
			fmt.Printf("no cue active at %s\n", *at)
			return
		}
		printEntry(*e)
		return
	}

	fmt.Printf("%s: %d cues (%s)\n", path, len(entries), format)
	for _, e := range entries {
		printEntry(e)
	}
}

func printEntry(e subtitle.Entry) {
	fmt.Printf("%s --> %s\n%s\n\n", formatTime(e.Start), formatTime(e.End), e.Text)
}

func formatTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
