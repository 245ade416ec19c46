package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"devtrack/internal/models"
)

const bugColumns = "id, guild_id, seq, project_id, title, description, severity, status, assignee, reporter, tags, created_at, updated_at"

// BugFilter narrows ListBugs results. All conditions are conjunctive.
type BugFilter struct {
	ProjectID  int64
	Statuses   []models.BugStatus
	Severities []models.BugSeverity
	Assignee   string
	Limit      int
}

// CreateBug inserts a bug row. Seq must already be allocated.
func (s *Store) CreateBug(ctx context.Context, bug *models.Bug) error {
	if bug == nil {
		return fmt.Errorf("bug is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO bugs (guild_id, seq, project_id, title, description, severity, status, assignee, reporter, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		bug.GuildID,
		bug.Seq,
		bug.ProjectID,
		bug.Title,
		nullIfEmpty(bug.Description),
		string(bug.Severity),
		string(bug.Status),
		nullIfEmpty(bug.Assignee),
		nullIfEmpty(bug.Reporter),
		joinTags(bug.Tags),
		formatTime(bug.CreatedAt),
		formatTime(bug.UpdatedAt),
	).Scan(&bug.ID)
}

// GetBugBySeq returns a bug by guild-sequence number, or nil.
func (s *Store) GetBugBySeq(ctx context.Context, guildID string, seq int64) (*models.Bug, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bugColumns+" FROM bugs WHERE guild_id = ? AND seq = ?",
		guildID, seq)
	return scanBug(row)
}

// ListBugs returns bugs for a guild matching the filter, most recent
// created first.
func (s *Store) ListBugs(ctx context.Context, guildID string, filter BugFilter) ([]models.Bug, error) {
	where := []string{"guild_id = ?"}
	args := []any{guildID}

	if filter.ProjectID != 0 {
		where = append(where, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if len(filter.Statuses) > 0 {
		where = append(where, fmt.Sprintf("status IN (%s)", placeholders(len(filter.Statuses))))
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	if len(filter.Severities) > 0 {
		where = append(where, fmt.Sprintf("severity IN (%s)", placeholders(len(filter.Severities))))
		for _, severity := range filter.Severities {
			args = append(args, string(severity))
		}
	}
	if filter.Assignee != "" {
		where = append(where, "assignee = ?")
		args = append(args, filter.Assignee)
	}

	query := fmt.Sprintf("SELECT %s FROM bugs WHERE %s ORDER BY created_at DESC, seq DESC",
		bugColumns, strings.Join(where, " AND "))
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
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

// ListOpenBugs returns every non-closed bug in a project, used by the
// duplicate scan.
func (s *Store) ListOpenBugs(ctx context.Context, projectID int64) ([]models.Bug, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bugColumns+" FROM bugs WHERE project_id = ? AND status != ? ORDER BY seq ASC",
		projectID, string(models.BugClosed))
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

// UpdateBugStatus sets a bug's status and refreshes updated_at.
func (s *Store) UpdateBugStatus(ctx context.Context, id int64, status models.BugStatus, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bugs SET status = ?, updated_at = ? WHERE id = ?",
		string(status), formatTime(now), id)
	return err
}

// AssignBug sets a bug's assignee and refreshes updated_at. An empty
// assignee clears the field.
func (s *Store) AssignBug(ctx context.Context, id int64, assignee string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bugs SET assignee = ?, updated_at = ? WHERE id = ?",
		nullIfEmpty(assignee), formatTime(now), id)
	return err
}

// DeleteBug removes a bug; task links cascade.
func (s *Store) DeleteBug(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bugs WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanBug(scanner interface{ Scan(dest ...any) error }) (*models.Bug, error) {
	var bug models.Bug
	var description, assignee, reporter, tags sql.NullString
	var severity, status string
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&bug.ID,
		&bug.GuildID,
		&bug.Seq,
		&bug.ProjectID,
		&bug.Title,
		&description,
		&severity,
		&status,
		&assignee,
		&reporter,
		&tags,
		&createdAt,
		&updatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	bug.Description = description.String
	bug.Severity = models.BugSeverity(severity)
	bug.Status = models.BugStatus(status)
	bug.Assignee = assignee.String
	bug.Reporter = reporter.String
	bug.Tags = splitTags(tags)

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	bug.CreatedAt = parsedCreated
	bug.UpdatedAt = parsedUpdated

	return &bug, nil
}
