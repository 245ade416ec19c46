package ingest

import (
	"testing"

	"devtrack/internal/models"
)

func TestParseBugsTable(t *testing.T) {
	input := `# Release blockers

| title | severity | description |
|-------|----------|-------------|
| Login crashes | critical | Happens on every submit |
| Footer misaligned |  | Only on mobile |
`
	drafts, err := ParseBugs(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Title != "Login crashes" || drafts[0].Severity != models.SeverityCritical {
		t.Fatalf("unexpected first draft: %+v", drafts[0])
	}
	if drafts[0].Description != "Happens on every submit" {
		t.Fatalf("unexpected description: %q", drafts[0].Description)
	}
	if drafts[1].Severity != "" {
		t.Fatalf("expected empty severity to stay unset, got %q", drafts[1].Severity)
	}
}

func TestParseBugsListWithFrontMatter(t *testing.T) {
	input := `---
severity: minor
tags: [ui, intake]
---
- Tooltip flickers
- Modal won't close :: critical :: Blocks checkout
* Button label typo :: :: Says "Sumbit"
`
	drafts, err := ParseBugs(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}

	if drafts[0].Severity != models.SeverityMinor {
		t.Fatalf("expected front-matter severity default, got %q", drafts[0].Severity)
	}
	if len(drafts[0].Tags) != 2 || drafts[0].Tags[0] != "ui" {
		t.Fatalf("expected front-matter tags, got %v", drafts[0].Tags)
	}

	if drafts[1].Severity != models.SeverityCritical || drafts[1].Description != "Blocks checkout" {
		t.Fatalf("expected row override, got %+v", drafts[1])
	}

	if drafts[2].Severity != models.SeverityMinor || drafts[2].Description != `Says "Sumbit"` {
		t.Fatalf("expected default severity with description, got %+v", drafts[2])
	}
}

func TestParseBugsCarriesBadSeverity(t *testing.T) {
	// Validation is the batch path's job; the parser hands bad values
	// through so they fail per item.
	drafts, err := ParseBugs("- Something broke :: catastrophic")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(drafts) != 1 || string(drafts[0].Severity) != "catastrophic" {
		t.Fatalf("expected severity carried as written, got %+v", drafts)
	}
}

func TestParseBugsUnclosedFrontMatter(t *testing.T) {
	if _, err := ParseBugs("---\nseverity: minor\n- Orphan"); err == nil {
		t.Fatal("expected error for unterminated front matter")
	}
}

func TestParseBugsIgnoresProse(t *testing.T) {
	drafts, err := ParseBugs("Some heading\n\nPlain prose line.\n- Real bug\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "Real bug" {
		t.Fatalf("expected only the list item, got %+v", drafts)
	}
}
