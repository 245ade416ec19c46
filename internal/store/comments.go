package store

import (
	"context"
	"fmt"

	"devtrack/internal/models"
)

// AddTaskComment appends a comment to a task.
func (s *Store) AddTaskComment(ctx context.Context, comment *models.TaskComment) error {
	if comment == nil {
		return fmt.Errorf("comment is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO task_comments (task_id, author, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`,
		comment.TaskID,
		comment.Author,
		comment.Content,
		formatTime(comment.CreatedAt),
	).Scan(&comment.ID)
}

// ListTaskComments returns a task's comments in creation order.
func (s *Store) ListTaskComments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, author, content, created_at
		FROM task_comments WHERE task_id = ?
		ORDER BY created_at ASC, id ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.TaskComment
	for rows.Next() {
		var comment models.TaskComment
		var createdAt string
		if err := rows.Scan(&comment.ID, &comment.TaskID, &comment.Author, &comment.Content, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		comment.CreatedAt = parsed
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// LinkTaskBug associates a task with a bug. Re-linking an existing pair
// is a no-op.
func (s *Store) LinkTaskBug(ctx context.Context, taskID, bugID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO task_bug_links (task_id, bug_id) VALUES (?, ?)",
		taskID, bugID)
	return err
}

// UnlinkTaskBug removes an association.
func (s *Store) UnlinkTaskBug(ctx context.Context, taskID, bugID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM task_bug_links WHERE task_id = ? AND bug_id = ?",
		taskID, bugID)
	return err
}

// ListBugsForTask returns bugs linked to a task, ordered by seq.
func (s *Store) ListBugsForTask(ctx context.Context, taskID int64) ([]models.Bug, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.guild_id, b.seq, b.project_id, b.title, b.description, b.severity, b.status, b.assignee, b.reporter, b.tags, b.created_at, b.updated_at
		FROM bugs b
		JOIN task_bug_links l ON l.bug_id = b.id
		WHERE l.task_id = ?
		ORDER BY b.seq ASC
	`, taskID)
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

// ListTasksForBug returns tasks linked to a bug, ordered by seq.
func (s *Store) ListTasksForBug(ctx context.Context, bugID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.guild_id, t.seq, t.project_id, t.sprint_id, t.title, t.description, t.status, t.priority, t.assignee, t.creator, t.created_at, t.updated_at
		FROM tasks t
		JOIN task_bug_links l ON l.task_id = t.id
		WHERE l.bug_id = ?
		ORDER BY t.seq ASC
	`, bugID)
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
