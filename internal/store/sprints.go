package store

import (
	"context"
	"database/sql"
	"fmt"

	"devtrack/internal/models"
)

// CreateSprint inserts a sprint row. Seq must already be allocated.
func (s *Store) CreateSprint(ctx context.Context, sprint *models.Sprint) error {
	if sprint == nil {
		return fmt.Errorf("sprint is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO sprints (guild_id, seq, project_id, name, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		sprint.GuildID,
		sprint.Seq,
		sprint.ProjectID,
		sprint.Name,
		nullTime(sprint.StartAt),
		nullTime(sprint.EndAt),
		formatTime(sprint.CreatedAt),
	).Scan(&sprint.ID)
}

// GetSprintBySeq returns a sprint by guild-sequence number, or nil.
func (s *Store) GetSprintBySeq(ctx context.Context, guildID string, seq int64) (*models.Sprint, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, guild_id, seq, project_id, name, start_at, end_at, created_at
		FROM sprints WHERE guild_id = ? AND seq = ?
	`, guildID, seq)
	return scanSprint(row)
}

// ListSprints returns sprints for a project, most recent first.
func (s *Store) ListSprints(ctx context.Context, projectID int64) ([]models.Sprint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, seq, project_id, name, start_at, end_at, created_at
		FROM sprints WHERE project_id = ?
		ORDER BY created_at DESC, seq DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		sprint, err := scanSprint(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, *sprint)
	}
	return sprints, rows.Err()
}

// DeleteSprint removes a sprint; tasks assigned to it keep their row
// with sprint_id cleared.
func (s *Store) DeleteSprint(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sprints WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanSprint(scanner interface{ Scan(dest ...any) error }) (*models.Sprint, error) {
	var sprint models.Sprint
	var startAt, endAt sql.NullString
	var createdAt string

	if err := scanner.Scan(
		&sprint.ID,
		&sprint.GuildID,
		&sprint.Seq,
		&sprint.ProjectID,
		&sprint.Name,
		&startAt,
		&endAt,
		&createdAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if sprint.StartAt, err = parseNullTime(startAt); err != nil {
		return nil, err
	}
	if sprint.EndAt, err = parseNullTime(endAt); err != nil {
		return nil, err
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sprint.CreatedAt = parsed

	return &sprint, nil
}
