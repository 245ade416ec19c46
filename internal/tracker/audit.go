package tracker

import (
	"context"

	"devtrack/internal/models"
)

// AuditLog returns a guild's audit trail, newest first, optionally
// narrowed to one entity kind or one internal entity id.
func (s *Service) AuditLog(ctx context.Context, guildID string, kind models.EntityKind, entityID int64, limit int) ([]models.AuditEntry, error) {
	entries, err := s.store.ListAudit(ctx, guildID, kind, entityID, limit)
	if err != nil {
		return nil, unavailable(err, "list audit entries")
	}
	return entries, nil
}
