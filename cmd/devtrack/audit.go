package main

import (
	"github.com/spf13/cobra"

	"devtrack/internal/models"
)

func newAuditCmd(opts *rootOptions) *cobra.Command {
	var (
		kind     string
		entityID int64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the guild's audit trail, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				entries, err := env.svc.AuditLog(cmd.Context(), env.guild, models.EntityKind(kind), entityID, limit)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(entries)
				}
				for _, entry := range entries {
					line := entry.Detail
					if line == "" {
						line = entry.Action
					}
					if err := writePlain("[%s] %s %s: %s\n", formatTime(entry.CreatedAt), entry.Actor, entry.Action, line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "entity kind filter (project, task, bug, ...)")
	cmd.Flags().Int64Var(&entityID, "id", 0, "internal entity id filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "limit results")
	return cmd
}
