package tracker

import (
	"context"
	"strconv"
	"strings"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// activeProjectKey is the settings slot holding the guild's active
// project seq.
const activeProjectKey = "active_project"

// BatchResult reports the outcome of one input of a batch creation.
// Exactly one of Seq or Err is meaningful.
type BatchResult struct {
	Index int
	Name  string
	Seq   int64
	Err   error
}

// CreateProject creates a project for a guild. Requires lead.
func (s *Service) CreateProject(ctx context.Context, guildID string, actor Actor, name, description string) (*models.Project, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return nil, err
	}
	return s.createProject(ctx, guildID, actor, name, description)
}

// BatchCreateProjects creates one project per name and reports per-item
// results; one bad name never aborts the rest. Requires lead once for
// the whole batch.
func (s *Service) BatchCreateProjects(ctx context.Context, guildID string, actor Actor, names []string) ([]BatchResult, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return nil, err
	}

	results := make([]BatchResult, 0, len(names))
	for i, name := range names {
		result := BatchResult{Index: i, Name: name}
		project, err := s.createProject(ctx, guildID, actor, name, "")
		if err != nil {
			result.Err = err
		} else {
			result.Seq = project.Seq
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) createProject(ctx context.Context, guildID string, actor Actor, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("project name is required")
	}

	seq, err := s.store.NextSeq(ctx, guildID, models.KindProject)
	if err != nil {
		return nil, unavailable(err, "allocate project number")
	}

	project := &models.Project{
		GuildID:     guildID,
		Seq:         seq,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		if store.IsUniqueConstraint(err, "projects.name") {
			return nil, conflict("a project named %q already exists", name)
		}
		return nil, unavailable(err, "create project")
	}

	s.audit(ctx, guildID, "create", models.KindProject, project.ID, actor, "Created project: "+name)
	return project, nil
}

// GetProject returns a project by guild-sequence number.
func (s *Service) GetProject(ctx context.Context, guildID string, seq int64) (*models.Project, error) {
	project, err := s.store.GetProjectBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load project")
	}
	if project == nil {
		return nil, notFound("project #%d not found", seq)
	}
	return project, nil
}

// GetProjectByName returns a project by its guild-unique name.
func (s *Service) GetProjectByName(ctx context.Context, guildID, name string) (*models.Project, error) {
	project, err := s.store.GetProjectByName(ctx, guildID, strings.TrimSpace(name))
	if err != nil {
		return nil, unavailable(err, "load project")
	}
	if project == nil {
		return nil, notFound("project %q not found", name)
	}
	return project, nil
}

// ListProjects returns a guild's projects, most recent first.
func (s *Service) ListProjects(ctx context.Context, guildID string) ([]models.Project, error) {
	projects, err := s.store.ListProjects(ctx, guildID)
	if err != nil {
		return nil, unavailable(err, "list projects")
	}
	return projects, nil
}

// DeleteProject removes a project and everything under it. Requires
// admin. The active-project slot is cleared if it pointed here.
func (s *Service) DeleteProject(ctx context.Context, guildID string, actor Actor, seq int64) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleAdmin); err != nil {
		return err
	}

	project, err := s.GetProject(ctx, guildID, seq)
	if err != nil {
		return err
	}

	deleted, err := s.store.DeleteProject(ctx, project.ID)
	if err != nil {
		return unavailable(err, "delete project")
	}
	if !deleted {
		return notFound("project #%d not found", seq)
	}

	if active, err := s.store.GetSetting(ctx, guildID, activeProjectKey); err == nil && active == strconv.FormatInt(seq, 10) {
		if err := s.store.DeleteSetting(ctx, guildID, activeProjectKey); err != nil {
			s.log.Warn("clear active project failed", "guild", guildID, "error", err)
		}
	}

	s.audit(ctx, guildID, "delete", models.KindProject, project.ID, actor, "Deleted project: "+project.Name)
	return nil
}

// SetActiveProject marks a project as the guild's default for commands
// that omit one. Requires lead.
func (s *Service) SetActiveProject(ctx context.Context, guildID string, actor Actor, seq int64) (*models.Project, error) {
	if err := s.requireRank(ctx, guildID, actor, models.RoleLead); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, guildID, seq)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetSetting(ctx, guildID, activeProjectKey, strconv.FormatInt(seq, 10)); err != nil {
		return nil, unavailable(err, "store active project")
	}

	s.audit(ctx, guildID, "set_active", models.KindProject, project.ID, actor, "Active project: "+project.Name)
	return project, nil
}

// ActiveProject resolves the guild's active project, or nil when unset.
// A stale slot pointing at a deleted project reads as unset.
func (s *Service) ActiveProject(ctx context.Context, guildID string) (*models.Project, error) {
	value, err := s.store.GetSetting(ctx, guildID, activeProjectKey)
	if err != nil {
		return nil, unavailable(err, "read active project")
	}
	if value == "" {
		return nil, nil
	}
	seq, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, invariant("active project slot holds non-numeric value %q", value)
	}
	project, err := s.store.GetProjectBySeq(ctx, guildID, seq)
	if err != nil {
		return nil, unavailable(err, "load active project")
	}
	return project, nil
}
