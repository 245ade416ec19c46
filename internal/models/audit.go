package models

import "time"

// AuditEntry is one append-only record of a mutation. EntityID refers
// to the internal storage key, not the guild-sequence number.
type AuditEntry struct {
	ID         int64      `json:"-"`
	GuildID    string     `json:"guild_id"`
	Action     string     `json:"action"`
	EntityKind EntityKind `json:"entity_kind"`
	EntityID   int64      `json:"entity_id"`
	Actor      string     `json:"actor"`
	Detail     string     `json:"detail,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
