package tracker

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// Actor identifies the member a frontend is acting for. PlatformAdmin
// marks chat-platform administrators, who bypass the stored role check;
// the flag is supplied by the frontend and applied here, never inside
// the role store.
type Actor struct {
	ID            string
	PlatformAdmin bool
}

// Service implements the guild-scoped tracker operations over the
// store. Every mutation checks the actor's rank and appends an audit
// entry; reads are not gated.
type Service struct {
	store *store.Store
	log   *slog.Logger
	now   func() time.Time
}

func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store: st,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// requireRank fails closed: members without a stored role have rank 0
// and are denied everything.
func (s *Service) requireRank(ctx context.Context, guildID string, actor Actor, min models.Role) error {
	if actor.PlatformAdmin {
		return nil
	}
	if actor.ID == "" {
		return denied("an acting member is required")
	}

	role, err := s.store.GetTeamRole(ctx, guildID, actor.ID)
	if err != nil {
		return unavailable(err, "look up role")
	}
	if models.RoleRank(role) < models.RoleRank(min) {
		return denied("requires role %s or higher", min)
	}
	return nil
}

// audit appends a trail entry for a completed mutation. A failed append
// is logged but never rolls the mutation back.
func (s *Service) audit(ctx context.Context, guildID, action string, kind models.EntityKind, entityID int64, actor Actor, detail string) {
	entry := &models.AuditEntry{
		GuildID:    guildID,
		Action:     action,
		EntityKind: kind,
		EntityID:   entityID,
		Actor:      actor.ID,
		Detail:     detail,
		CreatedAt:  s.now(),
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		s.log.Warn("audit append failed",
			"guild", guildID, "action", action, "entity_kind", kind, "error", err)
	}
}

// intSetting reads a numeric guild setting, falling back to the seeded
// default when the guild has no override.
func (s *Service) intSetting(ctx context.Context, guildID, key string) (int, error) {
	value, err := s.store.GetSetting(ctx, guildID, key)
	if err != nil {
		return 0, unavailable(err, "read setting "+key)
	}
	if value == "" {
		value = store.DefaultSetting(key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, invariant("setting %s holds non-numeric value %q", key, value)
	}
	return n, nil
}

// SplitBulkNames breaks a comma-separated bulk input into trimmed,
// non-empty names, preserving order.
func SplitBulkNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
