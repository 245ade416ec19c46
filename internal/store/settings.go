package store

import (
	"context"
)

// Default per-guild settings, seeded on first use. Values are stored as
// strings the way the frontend supplies them.
var defaultSettings = map[string]string{
	"workload_max_items": "10",
	"wip_limit":          "5",
	"stale_days":         "7",
}

// DefaultSetting returns the seeded default for a settings key, or ""
// for keys without one.
func DefaultSetting(key string) string {
	return defaultSettings[key]
}

// GetSetting returns a guild setting, or "" when unset.
func (s *Store) GetSetting(ctx context.Context, guildID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE guild_id = ? AND key = ?",
		guildID, key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetSetting stores a guild setting, replacing any previous value.
func (s *Store) SetSetting(ctx context.Context, guildID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (guild_id, key, value) VALUES (?, ?, ?)",
		guildID, key, value)
	return err
}

// DeleteSetting removes a guild setting.
func (s *Store) DeleteSetting(ctx context.Context, guildID, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM settings WHERE guild_id = ? AND key = ?",
		guildID, key)
	return err
}

// AllSettings returns every setting stored for a guild.
func (s *Store) AllSettings(ctx context.Context, guildID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM settings WHERE guild_id = ?", guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// SeedDefaultSettings inserts any missing default settings for a guild
// without overwriting values an admin already changed.
func (s *Store) SeedDefaultSettings(ctx context.Context, guildID string) error {
	for key, value := range defaultSettings {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO settings (guild_id, key, value) VALUES (?, ?, ?)",
			guildID, key, value); err != nil {
			return err
		}
	}
	return nil
}
