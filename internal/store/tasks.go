package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"devtrack/internal/models"
)

const taskColumns = "id, guild_id, seq, project_id, sprint_id, title, description, status, priority, assignee, creator, created_at, updated_at"

// TaskFilter narrows ListTasks results. All conditions are conjunctive.
type TaskFilter struct {
	ProjectID  int64
	SprintID   int64
	Statuses   []models.TaskStatus
	Priorities []models.TaskPriority
	Assignee   string
	Limit      int
}

// CreateTask inserts a task row. Seq must already be allocated.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (guild_id, seq, project_id, sprint_id, title, description, status, priority, assignee, creator, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		task.GuildID,
		task.Seq,
		task.ProjectID,
		nullIfZero(task.SprintID),
		task.Title,
		nullIfEmpty(task.Description),
		string(task.Status),
		string(task.Priority),
		nullIfEmpty(task.Assignee),
		nullIfEmpty(task.Creator),
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	).Scan(&task.ID)
}

// GetTaskBySeq returns a task by guild-sequence number, or nil.
func (s *Store) GetTaskBySeq(ctx context.Context, guildID string, seq int64) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE guild_id = ? AND seq = ?",
		guildID, seq)
	return scanTask(row)
}

// ListTasks returns tasks for a guild matching the filter, most recent
// created first.
func (s *Store) ListTasks(ctx context.Context, guildID string, filter TaskFilter) ([]models.Task, error) {
	where := []string{"guild_id = ?"}
	args := []any{guildID}

	if filter.ProjectID != 0 {
		where = append(where, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.SprintID != 0 {
		where = append(where, "sprint_id = ?")
		args = append(args, filter.SprintID)
	}
	if len(filter.Statuses) > 0 {
		where = append(where, fmt.Sprintf("status IN (%s)", placeholders(len(filter.Statuses))))
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	if len(filter.Priorities) > 0 {
		where = append(where, fmt.Sprintf("priority IN (%s)", placeholders(len(filter.Priorities))))
		for _, priority := range filter.Priorities {
			args = append(args, string(priority))
		}
	}
	if filter.Assignee != "" {
		where = append(where, "assignee = ?")
		args = append(args, filter.Assignee)
	}

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s ORDER BY created_at DESC, seq DESC",
		taskColumns, strings.Join(where, " AND "))
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
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

// UpdateTaskStatus sets a task's status and refreshes updated_at.
func (s *Store) UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?",
		string(status), formatTime(now), id)
	return err
}

// AssignTask sets a task's assignee and refreshes updated_at. An empty
// assignee clears the field.
func (s *Store) AssignTask(ctx context.Context, id int64, assignee string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET assignee = ?, updated_at = ? WHERE id = ?",
		nullIfEmpty(assignee), formatTime(now), id)
	return err
}

// SetTaskSprint moves a task into a sprint (0 clears the link) and
// refreshes updated_at.
func (s *Store) SetTaskSprint(ctx context.Context, id, sprintID int64, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET sprint_id = ?, updated_at = ? WHERE id = ?",
		nullIfZero(sprintID), formatTime(now), id)
	return err
}

// DeleteTask removes a task; comments and links cascade, checklist
// references are cleared.
func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanTask(scanner interface{ Scan(dest ...any) error }) (*models.Task, error) {
	var task models.Task
	var sprintID sql.NullInt64
	var description, assignee, creator sql.NullString
	var status, priority string
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&task.ID,
		&task.GuildID,
		&task.Seq,
		&task.ProjectID,
		&sprintID,
		&task.Title,
		&description,
		&status,
		&priority,
		&assignee,
		&creator,
		&createdAt,
		&updatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	task.SprintID = sprintID.Int64
	task.Description = description.String
	task.Status = models.TaskStatus(status)
	task.Priority = models.TaskPriority(priority)
	task.Assignee = assignee.String
	task.Creator = creator.String

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = parsedCreated
	task.UpdatedAt = parsedUpdated

	return &task, nil
}
