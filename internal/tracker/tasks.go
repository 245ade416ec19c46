package tracker

import (
	"context"
	"fmt"
	"strings"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// TaskDraft carries the caller-supplied fields of a new task. Zero
// values fall back to the defaults (backlog, medium).
type TaskDraft struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Assignee    string
}

// CreateTask adds a task to a project. Requires developer.
func (s *Service) CreateTask(ctx context.Context, guildID string, actor Actor, projectSeq int64, draft TaskDraft) (*models.Task, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}
	return s.createTask(ctx, guildID, actor, project.ID, draft)
}

// BatchCreateTasks creates one task per title in a project, reporting
// per-item results. Requires developer once for the whole batch.
func (s *Service) BatchCreateTasks(ctx context.Context, guildID string, actor Actor, projectSeq int64, titles []string) ([]BatchResult, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, 0, len(titles))
	for i, title := range titles {
		result := BatchResult{Index: i, Name: title}
		task, err := s.createTask(ctx, guildID, actor, project.ID, TaskDraft{Title: title})
		if err != nil {
			result.Err = err
		} else {
			result.Seq = task.Seq
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) createTask(ctx context.Context, guildID string, actor Actor, projectID int64, draft TaskDraft) (*models.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, invalid("task title is required")
	}
	priority := draft.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !models.IsValidPriority(priority) {
		return nil, invalid("invalid priority: %s", priority)
	}

	seq, err := s.store.NextSeq(ctx, guildID, models.KindTask)
	if err != nil {
		return nil, unavailable(err, "allocate task number")
	}

	now := s.now()
	task := &models.Task{
		GuildID:     guildID,
		Seq:         seq,
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Status:      models.DefaultTaskStatus,
		Priority:    priority,
		Assignee:    draft.Assignee,
		Creator:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, unavailable(err, "create task")
	}

	s.audit(ctx, guildID, "create", models.KindTask, task.ID, actor, "Created task: "+title)
	return task, nil
}

// GetTask returns a task by guild-sequence number.
func (s *Service) GetTask(ctx context.Context, guildID string, seq int64) (*models.Task, error) {
	task, err := s.store.GetTaskBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load task")
	}
	if task == nil {
		return nil, notFound("task #%d not found", seq)
	}
	return task, nil
}

// ListTasks returns a guild's tasks matching the filter.
func (s *Service) ListTasks(ctx context.Context, guildID string, filter store.TaskFilter) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx, guildID, filter)
	if err != nil {
		return nil, unavailable(err, "list tasks")
	}
	return tasks, nil
}

// SetTaskStatus moves a task to a new status. Requires developer.
// Re-applying the current status is a conflict and leaves updated_at
// alone. Moving into in_progress is refused once the project has
// reached the guild's WIP limit.
func (s *Service) SetTaskStatus(ctx context.Context, guildID string, actor Actor, seq int64, status models.TaskStatus) (*models.Task, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}
	if !models.IsValidTaskStatus(status) {
		return nil, invalid("invalid task status: %s", status)
	}

	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	if task.Status == status {
		return nil, conflict("task #%d is already %s", seq, status)
	}
	if status == models.TaskInProgress {
		if err := s.checkWIP(ctx, guildID, task.ProjectID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	if err := s.store.UpdateTaskStatus(ctx, task.ID, status, now); err != nil {
		return nil, unavailable(err, "update task status")
	}

	detail := fmt.Sprintf("Task #%d: %s -> %s", seq, task.Status, status)
	s.audit(ctx, guildID, "update_status", models.KindTask, task.ID, actor, detail)

	task.Status = status
	task.UpdatedAt = now
	return task, nil
}

func (s *Service) checkWIP(ctx context.Context, guildID string, projectID int64) error {
	limit, err := s.intSetting(ctx, guildID, "wip_limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return nil
	}
	count, err := s.store.CountTasksInProgress(ctx, projectID)
	if err != nil {
		return unavailable(err, "count in-progress tasks")
	}
	if count >= limit {
		return conflict("project already has %d tasks in progress (limit %d)", count, limit)
	}
	return nil
}

// AssignTask sets or clears a task's assignee. Requires developer.
func (s *Service) AssignTask(ctx context.Context, guildID string, actor Actor, seq int64, assignee string) (*models.Task, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.AssignTask(ctx, task.ID, assignee, now); err != nil {
		return nil, unavailable(err, "assign task")
	}

	detail := fmt.Sprintf("Task #%d assigned to %s", seq, assignee)
	if assignee == "" {
		detail = fmt.Sprintf("Task #%d unassigned", seq)
	}
	s.audit(ctx, guildID, "assign", models.KindTask, task.ID, actor, detail)

	task.Assignee = assignee
	task.UpdatedAt = now
	return task, nil
}

// MoveTaskToSprint places a task in a sprint, or clears the link when
// sprintSeq is 0. Requires developer. The sprint must belong to the
// task's project.
func (s *Service) MoveTaskToSprint(ctx context.Context, guildID string, actor Actor, seq, sprintSeq int64) (*models.Task, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}

	var sprintID int64
	detail := fmt.Sprintf("Task #%d removed from sprint", seq)
	if sprintSeq != 0 {
		sprint, err := s.GetSprint(ctx, guildID, sprintSeq)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != task.ProjectID {
			return nil, conflict("sprint #%d belongs to a different project", sprintSeq)
		}
		sprintID = sprint.ID
		detail = fmt.Sprintf("Task #%d moved to sprint %s", seq, sprint.Name)
	}

	now := s.now()
	if err := s.store.SetTaskSprint(ctx, task.ID, sprintID, now); err != nil {
		return nil, unavailable(err, "move task")
	}

	s.audit(ctx, guildID, "assign", models.KindTask, task.ID, actor, detail)

	task.SprintID = sprintID
	task.UpdatedAt = now
	return task, nil
}

// CommentTask appends a comment to a task. Any ranked member may
// comment.
func (s *Service) CommentTask(ctx context.Context, guildID string, actor Actor, seq int64, content string) (*models.TaskComment, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleViewer); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment content is required")
	}

	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:    task.ID,
		Author:    actor.ID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.AddTaskComment(ctx, comment); err != nil {
		return nil, unavailable(err, "add comment")
	}

	s.audit(ctx, guildID, "create", models.KindComment, comment.ID, actor, fmt.Sprintf("Comment on task #%d", seq))
	return comment, nil
}

// TaskComments returns a task's comments in creation order.
func (s *Service) TaskComments(ctx context.Context, guildID string, seq int64) ([]models.TaskComment, error) {
	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.ListTaskComments(ctx, task.ID)
	if err != nil {
		return nil, unavailable(err, "list comments")
	}
	return comments, nil
}

// LinkTaskBug associates a task with a bug; re-linking is a no-op.
// Requires developer.
func (s *Service) LinkTaskBug(ctx context.Context, guildID string, actor Actor, taskSeq, bugSeq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return err
	}

	task, err := s.GetTask(ctx, guildID, taskSeq)
	if err != nil {
		return err
	}
	bug, err := s.GetBug(ctx, guildID, bugSeq)
	if err != nil {
		return err
	}
	if err := s.store.LinkTaskBug(ctx, task.ID, bug.ID); err != nil {
		return unavailable(err, "link task and bug")
	}

	s.audit(ctx, guildID, "assign", models.KindTask, task.ID, actor,
		fmt.Sprintf("Linked task #%d to bug #%d", taskSeq, bugSeq))
	return nil
}

// UnlinkTaskBug removes a task-bug association. Requires developer.
func (s *Service) UnlinkTaskBug(ctx context.Context, guildID string, actor Actor, taskSeq, bugSeq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return err
	}

	task, err := s.GetTask(ctx, guildID, taskSeq)
	if err != nil {
		return err
	}
	bug, err := s.GetBug(ctx, guildID, bugSeq)
	if err != nil {
		return err
	}
	if err := s.store.UnlinkTaskBug(ctx, task.ID, bug.ID); err != nil {
		return unavailable(err, "unlink task and bug")
	}

	s.audit(ctx, guildID, "assign", models.KindTask, task.ID, actor,
		fmt.Sprintf("Unlinked task #%d from bug #%d", taskSeq, bugSeq))
	return nil
}

// TaskBugs returns the bugs linked to a task.
func (s *Service) TaskBugs(ctx context.Context, guildID string, seq int64) ([]models.Bug, error) {
	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	bugs, err := s.store.ListBugsForTask(ctx, task.ID)
	if err != nil {
		return nil, unavailable(err, "list linked bugs")
	}
	return bugs, nil
}

// DeleteTask removes a task; comments and links go with it, checklist
// references are cleared. Requires lead.
func (s *Service) DeleteTask(ctx context.Context, guildID string, actor Actor, seq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return err
	}

	task, err := s.GetTask(ctx, guildID, seq)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteTask(ctx, task.ID)
	if err != nil {
		return unavailable(err, "delete task")
	}
	if !deleted {
		return notFound("task #%d not found", seq)
	}

	s.audit(ctx, guildID, "delete", models.KindTask, task.ID, actor, "Deleted task: "+task.Title)
	return nil
}
