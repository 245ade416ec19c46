package models

// TeamMember is the single ranked role held by a member within a guild.
type TeamMember struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	Role    Role   `json:"role"`
}

// Rank returns the member's numeric rank.
func (m TeamMember) Rank() int {
	return RoleRank(m.Role)
}
