package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage guild settings",
	}
	cmd.AddCommand(
		newSettingsSetCmd(opts),
		newSettingsListCmd(opts),
	)
	return cmd
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a guild setting (workload_max_items, wip_limit, stale_days)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				if err := env.svc.SetSetting(cmd.Context(), env.guild, env.actor, args[0], args[1]); err != nil {
					return err
				}
				return writePlain("%s = %s\n", args[0], args[1])
			})
		},
	}
}

func newSettingsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the guild's effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				settings, err := env.svc.Settings(cmd.Context(), env.guild)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(settings)
				}
				keys := make([]string, 0, len(settings))
				for key := range settings {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					if err := writePlain("%s = %s\n", key, settings[key]); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
