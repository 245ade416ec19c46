// Package config loads devtrack's runtime configuration from a TOML
// file with environment overrides. Flags, handled by the CLI layer,
// take precedence over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultDBFileName = ".devtrack.db"
	DefaultLogLevel   = "info"

	configFileName  = ".devtrack.toml"
	configDirEnvKey = "DEVTRACK_CONFIG_DIR"

	dbPathEnvKey        = "DEVTRACK_DB"
	logLevelEnvKey      = "DEVTRACK_LOG_LEVEL"
	guildEnvKey         = "DEVTRACK_GUILD"
	actorEnvKey         = "DEVTRACK_ACTOR"
	platformAdminEnvKey = "DEVTRACK_PLATFORM_ADMIN"
)

// Config defines runtime configuration for devtrack.
type Config struct {
	DBPath        string `toml:"db_path"`
	LogLevel      string `toml:"log_level"`
	Guild         string `toml:"guild"`
	Actor         string `toml:"actor"`
	PlatformAdmin bool   `toml:"platform_admin"`
}

// Default returns default configuration values. The database path is
// resolved lazily by ResolveDBPath so a missing home directory only
// fails commands that actually open the store.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the config file, if present, and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := loadFileIfExists(path, &cfg); err != nil {
		return nil, err
	}

	if value := strings.TrimSpace(os.Getenv(dbPathEnvKey)); value != "" {
		cfg.DBPath = value
	}
	if value := strings.TrimSpace(os.Getenv(logLevelEnvKey)); value != "" {
		cfg.LogLevel = value
	}
	if value := strings.TrimSpace(os.Getenv(guildEnvKey)); value != "" {
		cfg.Guild = value
	}
	if value := strings.TrimSpace(os.Getenv(actorEnvKey)); value != "" {
		cfg.Actor = value
	}
	if value := strings.TrimSpace(os.Getenv(platformAdminEnvKey)); value != "" {
		cfg.PlatformAdmin = value == "1" || strings.EqualFold(value, "true")
	}

	return &cfg, nil
}

// Path returns the config file location: $DEVTRACK_CONFIG_DIR when set,
// otherwise the user's home directory.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ResolveDBPath returns the configured database path, defaulting to a
// file in the user's home directory.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDBFileName), nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

var allowedKeys = []string{
	"db_path",
	"log_level",
	"guild",
	"actor",
	"platform_admin",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "guild":
		return c.Guild, nil
	case "actor":
		return c.Actor, nil
	case "platform_admin":
		if c.PlatformAdmin {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// SetKey reads the TOML file at path, sets key=value, and writes it
// back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if key == "platform_admin" {
		data[key] = value == "1" || strings.EqualFold(value, "true")
	} else {
		data[key] = value
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}
