package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"devtrack/internal/models"
)

// CreateChecklist inserts a checklist row. Seq must already be allocated.
func (s *Store) CreateChecklist(ctx context.Context, checklist *models.Checklist) error {
	if checklist == nil {
		return fmt.Errorf("checklist is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO checklists (guild_id, seq, task_id, name, created_by, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		checklist.GuildID,
		checklist.Seq,
		nullIfZero(checklist.TaskID),
		checklist.Name,
		nullIfEmpty(checklist.CreatedBy),
		boolToInt(checklist.Archived),
		formatTime(checklist.CreatedAt),
	).Scan(&checklist.ID)
}

// GetChecklistBySeq returns a checklist by guild-sequence number, or nil.
func (s *Store) GetChecklistBySeq(ctx context.Context, guildID string, seq int64) (*models.Checklist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, guild_id, seq, task_id, name, created_by, archived, created_at
		FROM checklists WHERE guild_id = ? AND seq = ?
	`, guildID, seq)
	return scanChecklist(row)
}

// ListChecklists returns a guild's checklists filtered by archive flag,
// most recent first.
func (s *Store) ListChecklists(ctx context.Context, guildID string, archived bool) ([]models.Checklist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, seq, task_id, name, created_by, archived, created_at
		FROM checklists WHERE guild_id = ? AND archived = ?
		ORDER BY created_at DESC, seq DESC
	`, guildID, boolToInt(archived))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []models.Checklist
	for rows.Next() {
		checklist, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, *checklist)
	}
	return checklists, rows.Err()
}

// SetChecklistArchived flips the archive flag.
func (s *Store) SetChecklistArchived(ctx context.Context, id int64, archived bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE checklists SET archived = ? WHERE id = ?",
		boolToInt(archived), id)
	return err
}

// DeleteChecklist removes a checklist; its items cascade with it.
func (s *Store) DeleteChecklist(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM checklists WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// AddChecklistItem appends an item at the end of a checklist.
func (s *Store) AddChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO checklist_items (checklist_id, position, text, completed, toggled_by, toggled_at)
		VALUES (
			?,
			COALESCE((SELECT MAX(position) FROM checklist_items WHERE checklist_id = ?), 0) + 1,
			?, 0, NULL, NULL
		)
		RETURNING id, position
	`, item.ChecklistID, item.ChecklistID, item.Text).Scan(&item.ID, &item.Position)
}

// GetChecklistItem returns an item by internal id, or nil.
func (s *Store) GetChecklistItem(ctx context.Context, id int64) (*models.ChecklistItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, checklist_id, position, text, completed, toggled_by, toggled_at
		FROM checklist_items WHERE id = ?
	`, id)
	return scanChecklistItem(row)
}

// ListChecklistItems returns a checklist's items in order.
func (s *Store) ListChecklistItems(ctx context.Context, checklistID int64) ([]models.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, checklist_id, position, text, completed, toggled_by, toggled_at
		FROM checklist_items WHERE checklist_id = ?
		ORDER BY position ASC
	`, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ToggleChecklistItem flips an item's completed flag and records who
// toggled it. Returns the new state.
func (s *Store) ToggleChecklistItem(ctx context.Context, id int64, toggledBy string, now time.Time) (bool, error) {
	var completed int
	err := s.db.QueryRowContext(ctx, `
		UPDATE checklist_items
		SET completed = 1 - completed, toggled_by = ?, toggled_at = ?
		WHERE id = ?
		RETURNING completed
	`, toggledBy, formatTime(now), id).Scan(&completed)
	if err != nil {
		return false, err
	}
	return completed == 1, nil
}

// RemoveChecklistItem deletes a single item.
func (s *Store) RemoveChecklistItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanChecklist(scanner interface{ Scan(dest ...any) error }) (*models.Checklist, error) {
	var checklist models.Checklist
	var taskID sql.NullInt64
	var createdBy sql.NullString
	var archived int
	var createdAt string

	if err := scanner.Scan(
		&checklist.ID,
		&checklist.GuildID,
		&checklist.Seq,
		&taskID,
		&checklist.Name,
		&createdBy,
		&archived,
		&createdAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	checklist.TaskID = taskID.Int64
	checklist.CreatedBy = createdBy.String
	checklist.Archived = archived == 1

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	checklist.CreatedAt = parsed

	return &checklist, nil
}

func scanChecklistItem(scanner interface{ Scan(dest ...any) error }) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	var completed int
	var toggledBy, toggledAt sql.NullString

	if err := scanner.Scan(
		&item.ID,
		&item.ChecklistID,
		&item.Position,
		&item.Text,
		&completed,
		&toggledBy,
		&toggledAt,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	item.Completed = completed == 1
	item.ToggledBy = toggledBy.String

	var err error
	if item.ToggledAt, err = parseNullTime(toggledAt); err != nil {
		return nil, err
	}

	return &item, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
