package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"-4", slog.LevelDebug, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		level, err := parseLogLevel(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseLogLevel(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLogLevel(%q): %v", tc.raw, err)
		}
		if level != tc.want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", tc.raw, level, tc.want)
		}
	}
}

func TestSelectedLogLevelPrecedence(t *testing.T) {
	if level, source := selectedLogLevel("debug", "info", "warn"); level != "debug" || source != "flag" {
		t.Fatalf("expected flag to win, got %q from %q", level, source)
	}
	if level, source := selectedLogLevel("", "info", "warn"); level != "info" || source != "env" {
		t.Fatalf("expected env to win, got %q from %q", level, source)
	}
	if level, source := selectedLogLevel("", "", "warn"); level != "warn" || source != "config" {
		t.Fatalf("expected config to win, got %q from %q", level, source)
	}
	if level, source := selectedLogLevel("", "", ""); level != "" || source != "default" {
		t.Fatalf("expected default, got %q from %q", level, source)
	}
}

func TestConfigureLoggerForCLIWarnsOnBadEnv(t *testing.T) {
	t.Setenv(logLevelEnvKey, "bogus")
	warning, err := configureLoggerForCLI("", "")
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if warning == "" {
		t.Fatal("expected a warning for an invalid env level")
	}
}

func TestConfigureLoggerForCLIRejectsBadFlag(t *testing.T) {
	if _, err := configureLoggerForCLI("bogus", ""); err == nil {
		t.Fatal("expected an error for an invalid --log-level")
	}
}
