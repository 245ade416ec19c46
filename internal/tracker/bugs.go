package tracker

import (
	"context"
	"fmt"
	"strings"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// BugDraft carries the caller-supplied fields of a new bug report.
// Zero values fall back to the defaults (new, medium).
type BugDraft struct {
	Title       string
	Description string
	Severity    models.BugSeverity
	Tags        []string
}

// ReportBug files a bug against a project. Any ranked member may
// report.
func (s *Service) ReportBug(ctx context.Context, guildID string, actor Actor, projectSeq int64, draft BugDraft) (*models.Bug, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleViewer); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}
	return s.reportBug(ctx, guildID, actor, project.ID, draft)
}

// BatchReportBugs files one bug per draft, reporting per-item results;
// one bad draft never aborts the rest.
func (s *Service) BatchReportBugs(ctx context.Context, guildID string, actor Actor, projectSeq int64, drafts []BugDraft) ([]BatchResult, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleViewer); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, 0, len(drafts))
	for i, draft := range drafts {
		result := BatchResult{Index: i, Name: draft.Title}
		bug, err := s.reportBug(ctx, guildID, actor, project.ID, draft)
		if err != nil {
			result.Err = err
		} else {
			result.Seq = bug.Seq
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) reportBug(ctx context.Context, guildID string, actor Actor, projectID int64, draft BugDraft) (*models.Bug, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, invalid("bug title is required")
	}
	severity := draft.Severity
	if severity == "" {
		severity = models.DefaultBugSeverity
	}
	if !models.IsValidSeverity(severity) {
		return nil, invalid("invalid severity: %s", severity)
	}

	seq, err := s.store.NextSeq(ctx, guildID, models.KindBug)
	if err != nil {
		return nil, unavailable(err, "allocate bug number")
	}

	now := s.now()
	bug := &models.Bug{
		GuildID:     guildID,
		Seq:         seq,
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Severity:    severity,
		Status:      models.DefaultBugStatus,
		Reporter:    actor.ID,
		Tags:        draft.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateBug(ctx, bug); err != nil {
		return nil, unavailable(err, "create bug")
	}

	s.audit(ctx, guildID, "create", models.KindBug, bug.ID, actor, "Reported bug: "+title)
	return bug, nil
}

// GetBug returns a bug by guild-sequence number.
func (s *Service) GetBug(ctx context.Context, guildID string, seq int64) (*models.Bug, error) {
	bug, err := s.store.GetBugBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load bug")
	}
	if bug == nil {
		return nil, notFound("bug #%d not found", seq)
	}
	return bug, nil
}

// ListBugs returns a guild's bugs matching the filter.
func (s *Service) ListBugs(ctx context.Context, guildID string, filter store.BugFilter) ([]models.Bug, error) {
	bugs, err := s.store.ListBugs(ctx, guildID, filter)
	if err != nil {
		return nil, unavailable(err, "list bugs")
	}
	return bugs, nil
}

// SetBugStatus moves a bug to a new status. Closing requires qa;
// every other transition requires developer. Re-applying the current
// status is a conflict and leaves updated_at alone.
func (s *Service) SetBugStatus(ctx context.Context, guildID string, actor Actor, seq int64, status models.BugStatus) (*models.Bug, error) {
	min := models.RoleDeveloper
	if status == models.BugClosed {
		min = models.RoleQA
	}
	if err := s.requireRank(ctx, guildID, actor, min); err != nil {
		return nil, err
	}
	if !models.IsValidBugStatus(status) {
		return nil, invalid("invalid bug status: %s", status)
	}

	bug, err := s.GetBug(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	if bug.Status == status {
		return nil, conflict("bug #%d is already %s", seq, status)
	}

	now := s.now()
	if err := s.store.UpdateBugStatus(ctx, bug.ID, status, now); err != nil {
		return nil, unavailable(err, "update bug status")
	}

	action := "update_status"
	if status == models.BugClosed {
		action = "close"
	}
	detail := fmt.Sprintf("Bug #%d: %s -> %s", seq, bug.Status, status)
	s.audit(ctx, guildID, action, models.KindBug, bug.ID, actor, detail)

	bug.Status = status
	bug.UpdatedAt = now
	return bug, nil
}

// AssignBug sets or clears a bug's assignee. Requires developer.
func (s *Service) AssignBug(ctx context.Context, guildID string, actor Actor, seq int64, assignee string) (*models.Bug, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleDeveloper); err != nil {
		return nil, err
	}

	bug, err := s.GetBug(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.AssignBug(ctx, bug.ID, assignee, now); err != nil {
		return nil, unavailable(err, "assign bug")
	}

	detail := fmt.Sprintf("Bug #%d assigned to %s", seq, assignee)
	if assignee == "" {
		detail = fmt.Sprintf("Bug #%d unassigned", seq)
	}
	s.audit(ctx, guildID, "assign", models.KindBug, bug.ID, actor, detail)

	bug.Assignee = assignee
	bug.UpdatedAt = now
	return bug, nil
}

// BugTasks returns the tasks linked to a bug.
func (s *Service) BugTasks(ctx context.Context, guildID string, seq int64) ([]models.Task, error) {
	bug, err := s.GetBug(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksForBug(ctx, bug.ID)
	if err != nil {
		return nil, unavailable(err, "list linked tasks")
	}
	return tasks, nil
}

// DeleteBug removes a bug; task links go with it. Requires lead.
func (s *Service) DeleteBug(ctx context.Context, guildID string, actor Actor, seq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return err
	}

	bug, err := s.GetBug(ctx, guildID, seq)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteBug(ctx, bug.ID)
	if err != nil {
		return unavailable(err, "delete bug")
	}
	if !deleted {
		return notFound("bug #%d not found", seq)
	}

	s.audit(ctx, guildID, "delete", models.KindBug, bug.ID, actor, "Deleted bug: "+bug.Title)
	return nil
}
