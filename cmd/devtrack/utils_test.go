package main

import (
	"testing"
	"time"
)

func TestParseSeq(t *testing.T) {
	if seq, err := parseSeq("42", "task"); err != nil || seq != 42 {
		t.Fatalf("expected 42, got %d (%v)", seq, err)
	}
	if seq, err := parseSeq("#7", "bug"); err != nil || seq != 7 {
		t.Fatalf("expected hash prefix accepted, got %d (%v)", seq, err)
	}
	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := parseSeq(bad, "task"); err == nil {
			t.Fatalf("expected %q rejected", bad)
		}
	}
}

func TestParseDateFlag(t *testing.T) {
	if got, err := parseDateFlag(""); err != nil || got != nil {
		t.Fatalf("expected nil for empty input, got %v (%v)", got, err)
	}

	got, err := parseDateFlag("2026-03-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = parseDateFlag("2026-03-01T12:30:00Z")
	if err != nil {
		t.Fatalf("parse stamp: %v", err)
	}
	if got.Hour() != 12 {
		t.Fatalf("expected RFC 3339 accepted, got %v", got)
	}

	if _, err := parseDateFlag("tomorrow"); err == nil {
		t.Fatal("expected invalid date rejected")
	}
}

func TestSplitCommaList(t *testing.T) {
	got := splitCommaList(" a, b ,,c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected trimmed parts, got %v", got)
	}
	if got := splitCommaList("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}
