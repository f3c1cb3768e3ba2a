package subtitle

import (
	"testing"
	"time"
)

func TestParseSRT(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:03,500
Hello there.

2
00:00:04,200 --> 00:00:06,000
Second line,
continued here.
`
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Start != time.Second || entries[0].End != 3500*time.Millisecond {
		t.Errorf("entry 0 timing = %v-%v", entries[0].Start, entries[0].End)
	}
	if entries[0].Text != "Hello there." {
		t.Errorf("entry 0 text = %q", entries[0].Text)
	}
	if entries[1].Text != "Second line,\ncontinued here." {
		t.Errorf("entry 1 text = %q", entries[1].Text)
	}
}

func TestParseSRTWithoutSequenceNumbers(t *testing.T) {
	input := `00:00:01,000 --> 00:00:02,000
No index line here.
`
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "No index line here." {
		t.Errorf("text = %q", entries[0].Text)
	}
}

func TestParseSRTShortMillis(t *testing.T) {
	// Some files write fewer than three fractional digits.
	input := `1
00:00:01,5 --> 00:00:02,25
Short fractions.
`
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Start != 1500*time.Millisecond {
		t.Errorf("start = %v, want 1.5s", entries[0].Start)
	}
	if entries[0].End != 2250*time.Millisecond {
		t.Errorf("end = %v, want 2.25s", entries[0].End)
	}
}

func TestParseSRTSkipsMalformedBlocks(t *testing.T) {
	input := `1
not a timing line
Broken block.

2
00:00:05,000 --> 00:00:04,000
End before start.

3
00:00:06,000 --> 00:00:07,000

4
00:00:08,000 --> 00:00:09,000
Survivor.
`
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "Survivor." {
		t.Errorf("text = %q", entries[0].Text)
	}
}

func TestParseSRTSortsByStart(t *testing.T) {
	input := `1
00:01:00,000 --> 00:01:02,000
Later.

2
00:00:10,000 --> 00:00:12,000
Earlier.
`
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "Earlier." || entries[1].Text != "Later." {
		t.Errorf("entries not sorted by start: %q, %q", entries[0].Text, entries[1].Text)
	}
}

func TestParseSRTCRLF(t *testing.T) {
	input := "1\r\n00:00:01,000 --> 00:00:02,000\r\nWindows line endings.\r\n\r\n"
	entries, err := ParseSRT(input)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "Windows line endings." {
		t.Errorf("text = %q", entries[0].Text)
	}
}

func TestParseSRTEmpty(t *testing.T) {
	entries, err := ParseSRT("")
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
