package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.Guild != "" || cfg.Actor != "" || cfg.PlatformAdmin {
		t.Fatalf("expected empty identity defaults, got %+v", cfg)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)

	content := "db_path = \"/data/track.db\"\nlog_level = \"debug\"\nguild = \"g1\"\nactor = \"u1\"\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/data/track.db" || cfg.LogLevel != "debug" {
		t.Fatalf("expected file values, got %+v", cfg)
	}

	// Env wins over file.
	t.Setenv(guildEnvKey, "g2")
	t.Setenv(platformAdminEnvKey, "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Guild != "g2" {
		t.Fatalf("expected env override, got %q", cfg.Guild)
	}
	if !cfg.PlatformAdmin {
		t.Fatal("expected platform admin flag from env")
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)
	path := filepath.Join(dir, configFileName)

	if err := SetKey(path, "guild", "g9"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetKey(path, "log_level", "warn"); err != nil {
		t.Fatalf("set second key: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Guild != "g9" || cfg.LogLevel != "warn" {
		t.Fatalf("expected both keys persisted, got %+v", cfg)
	}
}

func TestSetKeyRejectsUnknown(t *testing.T) {
	if err := SetKey(filepath.Join(t.TempDir(), configFileName), "nope", "x"); err == nil {
		t.Fatal("expected unknown key rejected")
	}
}

func TestResolveDBPathPrefersConfigured(t *testing.T) {
	cfg := Config{DBPath: "/tmp/custom.db"}
	path, err := cfg.ResolveDBPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "/tmp/custom.db" {
		t.Fatalf("expected configured path, got %q", path)
	}
}
