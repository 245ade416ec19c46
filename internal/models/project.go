package models

import "time"

// Project is the root of the tracker graph for a guild.
type Project struct {
	ID          int64     `json:"-"`
	GuildID     string    `json:"guild_id"`
	Seq         int64     `json:"seq"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sprint is a time-boxed slice of a project.
type Sprint struct {
	ID        int64      `json:"-"`
	GuildID   string     `json:"guild_id"`
	Seq       int64      `json:"seq"`
	ProjectID int64      `json:"-"`
	Name      string     `json:"name"`
	StartAt   *time.Time `json:"start_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
