package tracker

import (
	"context"
	"fmt"
	"sort"

	"devtrack/internal/models"
)

// SetRole assigns or replaces a member's role. Requires admin.
func (s *Service) SetRole(ctx context.Context, guildID string, actor Actor, userID string, role models.Role) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleAdmin); err != nil {
		return err
	}
	if userID == "" {
		return invalid("member id is required")
	}
	if models.RoleRank(role) == 0 {
		return invalid("invalid role: %s", role)
	}

	if err := s.store.SetTeamRole(ctx, guildID, userID, role); err != nil {
		return unavailable(err, "set role")
	}

	s.audit(ctx, guildID, "set_role", models.KindMember, 0, actor,
		fmt.Sprintf("%s is now %s", userID, role))
	return nil
}

// RemoveRole deletes a member's role assignment. Requires admin.
// Removing a member who had no role is a no-op.
func (s *Service) RemoveRole(ctx context.Context, guildID string, actor Actor, userID string) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleAdmin); err != nil {
		return err
	}

	removed, err := s.store.RemoveTeamRole(ctx, guildID, userID)
	if err != nil {
		return unavailable(err, "remove role")
	}
	if !removed {
		return notFound("%s has no role in this guild", userID)
	}

	s.audit(ctx, guildID, "remove_role", models.KindMember, 0, actor,
		fmt.Sprintf("Removed role of %s", userID))
	return nil
}

// GetRole returns a member's role, or "" for unassigned members.
func (s *Service) GetRole(ctx context.Context, guildID, userID string) (models.Role, error) {
	role, err := s.store.GetTeamRole(ctx, guildID, userID)
	if err != nil {
		return "", unavailable(err, "look up role")
	}
	return role, nil
}

// HasRank reports whether a member holds at least the given rank.
// Unassigned members have rank 0 and never pass.
func (s *Service) HasRank(ctx context.Context, guildID, userID string, min models.Role) (bool, error) {
	role, err := s.GetRole(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	return models.RoleRank(role) >= models.RoleRank(min), nil
}

// ListTeam returns a guild's roster ordered by rank, highest first,
// then by member id.
func (s *Service) ListTeam(ctx context.Context, guildID string) ([]models.TeamMember, error) {
	members, err := s.store.ListTeamMembers(ctx, guildID)
	if err != nil {
		return nil, unavailable(err, "list team")
	}
	sort.SliceStable(members, func(i, j int) bool {
		if ri, rj := members[i].Rank(), members[j].Rank(); ri != rj {
			return ri > rj
		}
		return members[i].UserID < members[j].UserID
	})
	return members, nil
}
