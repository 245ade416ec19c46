package main

import (
	"github.com/spf13/cobra"

	"devtrack/internal/models"
)

func newTeamCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the guild's team roles",
	}
	cmd.AddCommand(
		newTeamSetRoleCmd(opts),
		newTeamRemoveRoleCmd(opts),
		newTeamShowCmd(opts),
		newTeamListCmd(opts),
	)
	return cmd
}

func newTeamSetRoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <member> <role>",
		Short: "Assign or replace a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				role, err := models.ParseRole(args[1])
				if err != nil {
					return err
				}
				if err := env.svc.SetRole(cmd.Context(), env.guild, env.actor, args[0], role); err != nil {
					return err
				}
				return writePlain("%s is now %s\n", args[0], role)
			})
		},
	}
}

func newTeamRemoveRoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-role <member>",
		Short: "Remove a member's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				if err := env.svc.RemoveRole(cmd.Context(), env.guild, env.actor, args[0]); err != nil {
					return err
				}
				return writePlain("removed role of %s\n", args[0])
			})
		},
	}
}

func newTeamShowCmd(opts *rootOptions) *cobra.Command {
	var member string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a member's role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				userID := member
				if userID == "" {
					userID = env.actor.ID
				}
				role, err := env.svc.GetRole(cmd.Context(), env.guild, userID)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(map[string]any{"member": userID, "role": role})
				}
				if role == "" {
					return writePlain("%s has no role in this guild\n", userID)
				}
				return writePlain("%s is %s\n", userID, role)
			})
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "member id (default: the acting member)")
	return cmd
}

func newTeamListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the guild's roster, highest rank first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				members, err := env.svc.ListTeam(cmd.Context(), env.guild)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(members)
				}
				for _, member := range members {
					if err := writePlain("%s: %s\n", member.UserID, member.Role); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
