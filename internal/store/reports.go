package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devtrack/internal/models"
)

// TaskStatusCounts groups a project's tasks by status.
func (s *Store) TaskStatusCounts(ctx context.Context, projectID int64) (map[models.TaskStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM tasks WHERE project_id = ? GROUP BY status",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.TaskStatus]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[models.TaskStatus(status)] = count
	}
	return counts, rows.Err()
}

// OpenBugSeverityCounts groups a project's open bugs by severity.
func (s *Store) OpenBugSeverityCounts(ctx context.Context, projectID int64) (map[models.BugSeverity]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT severity, COUNT(*) FROM bugs WHERE project_id = ? AND status != ? GROUP BY severity",
		projectID, string(models.BugClosed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.BugSeverity]int{}
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		counts[models.BugSeverity(severity)] = count
	}
	return counts, rows.Err()
}

// CountTasksInProgress returns the number of in-progress tasks in a
// project. Feeds the WIP gate.
func (s *Store) CountTasksInProgress(ctx context.Context, projectID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE project_id = ? AND status = ?",
		projectID, string(models.TaskInProgress)).Scan(&count)
	return count, err
}

// CountActiveTasksAssigned counts a member's tasks outside done/backlog.
func (s *Store) CountActiveTasksAssigned(ctx context.Context, guildID, userID string) (int, error) {
	statuses := models.ActiveTaskStatusStrings()
	args := []any{guildID, userID}
	for _, status := range statuses {
		args = append(args, status)
	}

	var count int
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM tasks WHERE guild_id = ? AND assignee = ? AND status IN (%s)",
		placeholders(len(statuses)))
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// CountOpenBugsAssigned counts a member's non-closed bugs.
func (s *Store) CountOpenBugsAssigned(ctx context.Context, guildID, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bugs WHERE guild_id = ? AND assignee = ? AND status != ?",
		guildID, userID, string(models.BugClosed)).Scan(&count)
	return count, err
}

// ListStaleTasks returns active tasks not updated since cutoff, oldest
// first.
func (s *Store) ListStaleTasks(ctx context.Context, guildID string, cutoff time.Time, limit int) ([]models.Task, error) {
	statuses := models.ActiveTaskStatusStrings()
	args := []any{guildID, formatTime(cutoff)}
	for _, status := range statuses {
		args = append(args, status)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE guild_id = ? AND updated_at < ? AND status IN (%s)
		ORDER BY updated_at ASC
	`, taskColumns, placeholders(len(statuses)))
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// ListStaleBugs returns open bugs not updated since cutoff, oldest
// first.
func (s *Store) ListStaleBugs(ctx context.Context, guildID string, cutoff time.Time, limit int) ([]models.Bug, error) {
	args := []any{guildID, formatTime(cutoff), string(models.BugClosed)}

	query := strings.TrimSpace(fmt.Sprintf(`
		SELECT %s FROM bugs
		WHERE guild_id = ? AND updated_at < ? AND status != ?
		ORDER BY updated_at ASC
	`, bugColumns))
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bugs []models.Bug
	for rows.Next() {
		bug, err := scanBug(rows)
		if err != nil {
			return nil, err
		}
		bugs = append(bugs, *bug)
	}
	return bugs, rows.Err()
}
