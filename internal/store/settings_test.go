package store

import (
	"context"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	value, err := st.GetSetting(ctx, "g1", "wip_limit")
	if err != nil {
		t.Fatalf("get unset: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty for unset key, got %q", value)
	}

	if err := st.SetSetting(ctx, "g1", "wip_limit", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err = st.GetSetting(ctx, "g1", "wip_limit")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "3" {
		t.Fatalf("expected 3, got %q", value)
	}

	// Scoped per guild.
	value, err = st.GetSetting(ctx, "g2", "wip_limit")
	if err != nil {
		t.Fatalf("get other guild: %v", err)
	}
	if value != "" {
		t.Fatalf("expected other guild unset, got %q", value)
	}
}

func TestSeedDefaultSettingsKeepsOverrides(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.SetSetting(ctx, "g1", "wip_limit", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.SeedDefaultSettings(ctx, "g1"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	settings, err := st.AllSettings(ctx, "g1")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if settings["wip_limit"] != "2" {
		t.Fatalf("expected override kept, got %q", settings["wip_limit"])
	}
	if settings["workload_max_items"] != "10" {
		t.Fatalf("expected default seeded, got %q", settings["workload_max_items"])
	}
	if settings["stale_days"] != "7" {
		t.Fatalf("expected default seeded, got %q", settings["stale_days"])
	}
}
