package store

import (
	"context"

	"devtrack/internal/models"
)

// NextSeq allocates the next guild-sequence number for a (guild, kind)
// pair. The counter row is created at 1 on first use and incremented
// atomically afterwards; the UPSERT is the sole mutual-exclusion
// mechanism, so concurrent callers always receive distinct values.
// A number handed out here is never reissued, even if the entity insert
// that follows fails.
func (s *Store) NextSeq(ctx context.Context, guildID string, kind models.EntityKind) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO guild_counters (guild_id, kind, next_seq)
		VALUES (?, ?, 2)
		ON CONFLICT(guild_id, kind) DO UPDATE SET next_seq = next_seq + 1
		RETURNING next_seq - 1
	`, guildID, string(kind)).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// PeekSeq returns the next value the allocator would hand out without
// consuming it. Intended for diagnostics only.
func (s *Store) PeekSeq(ctx context.Context, guildID string, kind models.EntityKind) (int64, error) {
	var next int64
	err := s.db.QueryRowContext(ctx,
		"SELECT next_seq FROM guild_counters WHERE guild_id = ? AND kind = ?",
		guildID, string(kind),
	).Scan(&next)
	if err != nil {
		if isNoRows(err) {
			return 1, nil
		}
		return 0, err
	}
	return next, nil
}
