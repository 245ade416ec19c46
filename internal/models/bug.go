package models

import "time"

// Bug represents a reported defect inside a project.
type Bug struct {
	ID          int64       `json:"-"`
	GuildID     string      `json:"guild_id"`
	Seq         int64       `json:"seq"`
	ProjectID   int64       `json:"-"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Severity    BugSeverity `json:"severity"`
	Status      BugStatus   `json:"status"`
	Assignee    string      `json:"assignee,omitempty"`
	Reporter    string      `json:"reporter,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Open reports whether the bug is in any status other than closed.
func (b Bug) Open() bool {
	return b.Status != BugClosed
}
