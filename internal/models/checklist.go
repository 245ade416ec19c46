package models

import "time"

// Checklist is an ordered list of items, optionally linked to a task.
// The link is cleared, not cascaded, when the task goes away.
type Checklist struct {
	ID        int64     `json:"-"`
	GuildID   string    `json:"guild_id"`
	Seq       int64     `json:"seq"`
	TaskID    int64     `json:"-"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// ChecklistItem is a single entry owned by exactly one checklist.
type ChecklistItem struct {
	ID          int64      `json:"-"`
	ChecklistID int64      `json:"-"`
	Position    int        `json:"position"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	ToggledBy   string     `json:"toggled_by,omitempty"`
	ToggledAt   *time.Time `json:"toggled_at,omitempty"`
}
