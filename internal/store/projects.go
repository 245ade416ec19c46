package store

import (
	"context"
	"database/sql"
	"fmt"

	"devtrack/internal/models"
)

// CreateProject inserts a project row. Seq must already be allocated.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO projects (guild_id, seq, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`,
		project.GuildID,
		project.Seq,
		project.Name,
		nullIfEmpty(project.Description),
		formatTime(project.CreatedAt),
	).Scan(&project.ID)
}

// GetProjectBySeq returns a project by guild-sequence number, or nil.
func (s *Store) GetProjectBySeq(ctx context.Context, guildID string, seq int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, guild_id, seq, name, description, created_at
		FROM projects WHERE guild_id = ? AND seq = ?
	`, guildID, seq)
	return scanProject(row)
}

// GetProjectByName returns a project by its guild-unique name, or nil.
func (s *Store) GetProjectByName(ctx context.Context, guildID, name string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, guild_id, seq, name, description, created_at
		FROM projects WHERE guild_id = ? AND name = ?
	`, guildID, name)
	return scanProject(row)
}

// ListProjects returns all projects for a guild, most recent first.
func (s *Store) ListProjects(ctx context.Context, guildID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, seq, name, description, created_at
		FROM projects WHERE guild_id = ?
		ORDER BY created_at DESC, seq DESC
	`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project. Tasks, bugs and sprints under it are
// cascade-deleted by the schema in the same statement; checklists that
// pointed at one of its tasks keep their row with task_id cleared.
func (s *Store) DeleteProject(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanProject(scanner interface{ Scan(dest ...any) error }) (*models.Project, error) {
	var project models.Project
	var description sql.NullString
	var createdAt string

	if err := scanner.Scan(
		&project.ID,
		&project.GuildID,
		&project.Seq,
		&project.Name,
		&description,
		&createdAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	project.Description = description.String

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	project.CreatedAt = parsed

	return &project, nil
}
