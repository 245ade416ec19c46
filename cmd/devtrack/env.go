package main

import (
	"fmt"
	"log/slog"

	"devtrack/internal/report"
	"devtrack/internal/store"
	"devtrack/internal/tracker"
)

// cliEnv is the per-invocation wiring: one open store, the service
// layer over it, and the resolved guild and actor identity.
type cliEnv struct {
	store    *store.Store
	svc      *tracker.Service
	reporter *report.Reporter
	guild    string
	actor    tracker.Actor
	json     bool
}

// withEnv opens the store, runs fn, and closes the store again. The
// guild must be resolved from flag, env or config before any command
// runs.
func withEnv(opts *rootOptions, fn func(*cliEnv) error) error {
	guild := opts.guild
	if guild == "" {
		guild = opts.cfg.Guild
	}
	if guild == "" {
		return fmt.Errorf("a guild is required: pass --guild or set it in the config")
	}

	actorID := opts.actor
	if actorID == "" {
		actorID = opts.cfg.Actor
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		resolved, err := opts.cfg.ResolveDBPath()
		if err != nil {
			return err
		}
		dbPath = resolved
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	env := &cliEnv{
		store:    st,
		svc:      tracker.New(st, slog.Default()),
		reporter: report.New(st),
		guild:    guild,
		actor: tracker.Actor{
			ID:            actorID,
			PlatformAdmin: opts.platformAdmin || opts.cfg.PlatformAdmin,
		},
		json: opts.jsonOutput,
	}
	return fn(env)
}
