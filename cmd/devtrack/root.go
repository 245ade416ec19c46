package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"devtrack/internal/config"
)

// rootOptions carries the persistent flag values; flags win over env
// and config file.
type rootOptions struct {
	cfg *config.Config

	jsonOutput    bool
	dbPath        string
	guild         string
	actor         string
	platformAdmin bool
	logLevel      string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &rootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "devtrack",
		Short: "Devtrack is a guild-scoped delivery tracker: projects, tasks, bugs, checklists",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(opts.logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path")
	cmd.PersistentFlags().StringVar(&opts.guild, "guild", "", "guild (tenant) id")
	cmd.PersistentFlags().StringVar(&opts.actor, "actor", "", "acting member id")
	cmd.PersistentFlags().BoolVar(&opts.platformAdmin, "platform-admin", false, "act with platform administrator override")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newProjectCmd(opts),
		newSprintCmd(opts),
		newTaskCmd(opts),
		newBugCmd(opts),
		newChecklistCmd(opts),
		newTeamCmd(opts),
		newSettingsCmd(opts),
		newAuditCmd(opts),
		newReportCmd(opts),
		newIngestCmd(opts),
		newMigrateCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}
