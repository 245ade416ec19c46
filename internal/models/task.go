package models

import "time"

// Task represents a unit of planned work inside a project.
type Task struct {
	ID          int64        `json:"-"`
	GuildID     string       `json:"guild_id"`
	Seq         int64        `json:"seq"`
	ProjectID   int64        `json:"-"`
	SprintID    int64        `json:"-"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Assignee    string       `json:"assignee,omitempty"`
	Creator     string       `json:"creator,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskComment is an append-only comment on a task.
type TaskComment struct {
	ID        int64     `json:"-"`
	TaskID    int64     `json:"-"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
