package main

import (
	"devtrack/internal/tracker"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	switch tracker.Kind(err) {
	case tracker.KindDenied:
		lines = append(lines,
			"hint: check your role with: devtrack team show --member <id>",
			"hint: roles are assigned by a guild admin via: devtrack team set-role",
		)
	case tracker.KindConflict:
		lines = append(lines, "hint: the entity is already in the requested state, or a limit was hit; inspect it with show.")
	case tracker.KindUnavailable:
		lines = append(lines,
			"hint: the database could not be reached; check --db or DEVTRACK_DB.",
			"hint: another process may be holding the database; retry shortly.",
		)
	case tracker.KindInvariant:
		lines = append(lines, "hint: stored data looks corrupt; run: devtrack migrate status")
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
