package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema utilities",
	}
	cmd.AddCommand(newMigrateStatusCmd(opts))
	return cmd
}

func newMigrateStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the schema version and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				status, err := env.store.MigrationPlan()
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(status)
				}
				if err := writePlain("schema version: %d (latest %d)\n", status.CurrentVersion, status.AvailableVersion); err != nil {
					return err
				}
				if len(status.Pending) == 0 {
					return writePlain("no pending migrations\n")
				}
				for _, migration := range status.Pending {
					if err := writePlain("pending: %d %s\n", migration.Version, migration.Description); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
