package tracker

import (
	"context"
	"strings"
	"time"

	"devtrack/internal/models"
)

// CreateSprint adds a sprint to a project. Requires lead. Start and end
// are optional; when both are set end must not precede start.
func (s *Service) CreateSprint(ctx context.Context, guildID string, actor Actor, projectSeq int64, name string, startAt, endAt *time.Time) (*models.Sprint, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("sprint name is required")
	}
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return nil, invalid("sprint end precedes its start")
	}

	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}

	seq, err := s.store.NextSeq(ctx, guildID, models.KindSprint)
	if err != nil {
		return nil, unavailable(err, "allocate sprint number")
	}

	sprint := &models.Sprint{
		GuildID:   guildID,
		Seq:       seq,
		ProjectID: project.ID,
		Name:      name,
		StartAt:   startAt,
		EndAt:     endAt,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateSprint(ctx, sprint); err != nil {
		return nil, unavailable(err, "create sprint")
	}

	s.audit(ctx, guildID, "create", models.KindSprint, sprint.ID, actor, "Created sprint: "+name)
	return sprint, nil
}

// GetSprint returns a sprint by guild-sequence number.
func (s *Service) GetSprint(ctx context.Context, guildID string, seq int64) (*models.Sprint, error) {
	sprint, err := s.store.GetSprintBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load sprint")
	}
	if sprint == nil {
		return nil, notFound("sprint #%d not found", seq)
	}
	return sprint, nil
}

// ListSprints returns a project's sprints, most recent first.
func (s *Service) ListSprints(ctx context.Context, guildID string, projectSeq int64) ([]models.Sprint, error) {
	project, err := s.GetProject(ctx, guildID, projectSeq)
	if err != nil {
		return nil, err
	}
	sprints, err := s.store.ListSprints(ctx, project.ID)
	if err != nil {
		return nil, unavailable(err, "list sprints")
	}
	return sprints, nil
}

// DeleteSprint removes a sprint. Requires lead. Tasks in the sprint
// stay, with the sprint link cleared.
func (s *Service) DeleteSprint(ctx context.Context, guildID string, actor Actor, seq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return err
	}

	sprint, err := s.GetSprint(ctx, guildID, seq)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteSprint(ctx, sprint.ID)
	if err != nil {
		return unavailable(err, "delete sprint")
	}
	if !deleted {
		return notFound("sprint #%d not found", seq)
	}

	s.audit(ctx, guildID, "delete", models.KindSprint, sprint.ID, actor, "Deleted sprint: "+sprint.Name)
	return nil
}
