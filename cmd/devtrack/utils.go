package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func parseSeq(arg, what string) (int64, error) {
	value := strings.TrimPrefix(strings.TrimSpace(arg), "#")
	seq, err := strconv.ParseInt(value, 10, 64)
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("invalid %s number %q", what, arg)
	}
	return seq, nil
}

func parsePosition(arg string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || position < 1 {
		return 0, fmt.Errorf("invalid item position %q", arg)
	}
	return position, nil
}

// parseDateFlag accepts either a bare date or a full RFC 3339 stamp.
func parseDateFlag(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", value)
	}
	t = t.UTC()
	return &t, nil
}

func splitCommaList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// resolveProjectSeq returns the explicit project number, or the guild's
// active project when none was given.
func (env *cliEnv) resolveProjectSeq(ctx context.Context, seq int64) (int64, error) {
	if seq != 0 {
		return seq, nil
	}
	project, err := env.svc.ActiveProject(ctx, env.guild)
	if err != nil {
		return 0, err
	}
	if project == nil {
		return 0, fmt.Errorf("no project given and no active project set; pass --project or run: devtrack project use")
	}
	return project.Seq, nil
}
