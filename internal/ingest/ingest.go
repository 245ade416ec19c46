// Package ingest parses bulk bug-report documents into drafts for the
// batch creation path. A document is optional YAML front matter holding
// defaults, followed by either a markdown pipe table or a list of
// `- title :: severity :: description` lines.
package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"devtrack/internal/models"
	"devtrack/internal/tracker"
)

var (
	listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	tableDivider  = regexp.MustCompile(`^\s*\|[\s|:\-]+\|\s*$`)
)

// Defaults are document-wide values from the front matter, applied to
// every row that doesn't override them.
type Defaults struct {
	Severity string   `yaml:"severity"`
	Tags     []string `yaml:"tags"`
}

// ParseBugs turns a document into bug drafts. Row values are carried
// as written; validation happens per item in the batch creation path,
// so one bad row surfaces as one per-item failure.
func ParseBugs(input string) ([]tracker.BugDraft, error) {
	defaults, content, err := splitFrontMatter(input)
	if err != nil {
		return nil, err
	}

	var drafts []tracker.BugDraft
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "|"):
			if tableDivider.MatchString(trimmed) {
				continue
			}
			draft, ok := parseTableRow(trimmed, defaults)
			if ok {
				drafts = append(drafts, draft)
			}
		default:
			match := listItemRegex.FindStringSubmatch(line)
			if len(match) == 2 {
				draft, ok := parseListItem(match[1], defaults)
				if ok {
					drafts = append(drafts, draft)
				}
			}
		}
	}
	return drafts, nil
}

func splitFrontMatter(input string) (Defaults, string, error) {
	var defaults Defaults
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return defaults, "", fmt.Errorf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &defaults); err != nil {
			return defaults, "", fmt.Errorf("parse front matter: %w", err)
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	return defaults, content, nil
}

// parseTableRow reads `| title | severity | description |`. The header
// row is recognized by its first cell and skipped.
func parseTableRow(line string, defaults Defaults) (tracker.BugDraft, bool) {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	if len(cells) == 0 || cells[0] == "" {
		return tracker.BugDraft{}, false
	}
	if strings.EqualFold(cells[0], "title") {
		return tracker.BugDraft{}, false
	}

	draft := tracker.BugDraft{Title: cells[0], Tags: defaults.Tags}
	if len(cells) > 1 && cells[1] != "" {
		draft.Severity = models.BugSeverity(strings.ToLower(cells[1]))
	} else {
		draft.Severity = models.BugSeverity(strings.ToLower(defaults.Severity))
	}
	if len(cells) > 2 {
		draft.Description = cells[2]
	}
	return draft, true
}

// parseListItem reads `title :: severity :: description`; the severity
// and description segments are optional.
func parseListItem(item string, defaults Defaults) (tracker.BugDraft, bool) {
	parts := strings.SplitN(item, "::", 3)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return tracker.BugDraft{}, false
	}

	draft := tracker.BugDraft{Title: parts[0], Tags: defaults.Tags}
	if len(parts) > 1 && parts[1] != "" {
		draft.Severity = models.BugSeverity(strings.ToLower(parts[1]))
	} else {
		draft.Severity = models.BugSeverity(strings.ToLower(defaults.Severity))
	}
	if len(parts) > 2 {
		draft.Description = parts[2]
	}
	return draft, true
}
