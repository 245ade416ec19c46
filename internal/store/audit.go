package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"devtrack/internal/models"
)

// AppendAudit records one audit entry. The trail is append-only; no
// update or delete paths exist.
func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO audit_log (guild_id, action, entity_kind, entity_id, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		entry.GuildID,
		entry.Action,
		string(entry.EntityKind),
		entry.EntityID,
		entry.Actor,
		nullIfEmpty(entry.Detail),
		formatTime(entry.CreatedAt),
	).Scan(&entry.ID)
}

// ListAudit returns audit entries newest first, optionally filtered by
// entity kind and internal entity id.
func (s *Store) ListAudit(ctx context.Context, guildID string, kind models.EntityKind, entityID int64, limit int) ([]models.AuditEntry, error) {
	where := []string{"guild_id = ?"}
	args := []any{guildID}

	if kind != "" {
		where = append(where, "entity_kind = ?")
		args = append(args, string(kind))
	}
	if entityID != 0 {
		where = append(where, "entity_id = ?")
		args = append(args, entityID)
	}

	query := fmt.Sprintf(`
		SELECT id, guild_id, action, entity_kind, entity_id, actor, detail, created_at
		FROM audit_log WHERE %s
		ORDER BY created_at DESC, id DESC
	`, strings.Join(where, " AND "))
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		var kind, createdAt string
		var detail sql.NullString
		if err := rows.Scan(&entry.ID, &entry.GuildID, &entry.Action, &kind, &entry.EntityID, &entry.Actor, &detail, &createdAt); err != nil {
			return nil, err
		}
		entry.EntityKind = models.EntityKind(kind)
		entry.Detail = detail.String
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		entry.CreatedAt = parsed
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
