package tracker

import (
	"context"
	"fmt"
	"strconv"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// Keys a guild admin may set directly. The active_project slot is
// managed through SetActiveProject instead.
var settableKeys = map[string]struct{}{
	"workload_max_items": {},
	"wip_limit":          {},
	"stale_days":         {},
}

// SetSetting stores a numeric guild setting. Requires admin.
func (s *Service) SetSetting(ctx context.Context, guildID string, actor Actor, key, value string) error {
	if err := s.requireRank(ctx, guildID, actor, models.RoleAdmin); err != nil {
		return err
	}
	if _, ok := settableKeys[key]; !ok {
		return invalid("unknown setting: %s", key)
	}
	if n, err := strconv.Atoi(value); err != nil || n < 1 {
		return invalid("setting %s must be a positive integer", key)
	}

	if err := s.store.SetSetting(ctx, guildID, key, value); err != nil {
		return unavailable(err, "store setting")
	}

	s.audit(ctx, guildID, "set_setting", models.KindSetting, 0, actor,
		fmt.Sprintf("%s = %s", key, value))
	return nil
}

// Settings returns a guild's effective settings: seeded defaults
// overlaid with stored overrides.
func (s *Service) Settings(ctx context.Context, guildID string) (map[string]string, error) {
	stored, err := s.store.AllSettings(ctx, guildID)
	if err != nil {
		return nil, unavailable(err, "read settings")
	}

	settings := map[string]string{}
	for key := range settableKeys {
		settings[key] = store.DefaultSetting(key)
	}
	for key, value := range stored {
		settings[key] = value
	}
	return settings, nil
}
