package store

import (
	"context"

	"devtrack/internal/models"
)

// SetTeamRole assigns or replaces a member's role within a guild.
func (s *Store) SetTeamRole(ctx context.Context, guildID, userID string, role models.Role) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO team_roles (guild_id, user_id, role) VALUES (?, ?, ?)",
		guildID, userID, string(role))
	return err
}

// GetTeamRole returns a member's role, or "" when none is assigned.
func (s *Store) GetTeamRole(ctx context.Context, guildID, userID string) (models.Role, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		"SELECT role FROM team_roles WHERE guild_id = ? AND user_id = ?",
		guildID, userID).Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return models.Role(role), nil
}

// RemoveTeamRole deletes a member's role assignment.
func (s *Store) RemoveTeamRole(ctx context.Context, guildID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM team_roles WHERE guild_id = ? AND user_id = ?",
		guildID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListTeamMembers returns all role assignments for a guild.
func (s *Store) ListTeamMembers(ctx context.Context, guildID string) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT guild_id, user_id, role FROM team_roles WHERE guild_id = ? ORDER BY user_id ASC",
		guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var member models.TeamMember
		var role string
		if err := rows.Scan(&member.GuildID, &member.UserID, &role); err != nil {
			return nil, err
		}
		member.Role = models.Role(role)
		members = append(members, member)
	}
	return members, rows.Err()
}
