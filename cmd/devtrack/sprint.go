package main

import (
	"github.com/spf13/cobra"
)

func newSprintCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}
	cmd.AddCommand(
		newSprintCreateCmd(opts),
		newSprintListCmd(opts),
		newSprintShowCmd(opts),
		newSprintDeleteCmd(opts),
	)
	return cmd
}

func newSprintCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		projectSeq int64
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a sprint in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				startAt, err := parseDateFlag(start)
				if err != nil {
					return err
				}
				endAt, err := parseDateFlag(end)
				if err != nil {
					return err
				}
				sprint, err := env.svc.CreateSprint(cmd.Context(), env.guild, env.actor, seq, args[0], startAt, endAt)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(sprint)
				}
				return writePlain("created sprint #%d %s\n", sprint.Seq, sprint.Name)
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	cmd.Flags().StringVar(&start, "start", "", "start date")
	cmd.Flags().StringVar(&end, "end", "", "end date")
	return cmd
}

func newSprintListCmd(opts *rootOptions) *cobra.Command {
	var projectSeq int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's sprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				sprints, err := env.svc.ListSprints(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(sprints)
				}
				for _, sprint := range sprints {
					line := sprint.Name
					if sprint.StartAt != nil && sprint.EndAt != nil {
						line += " (" + sprint.StartAt.Format("2006-01-02") + " to " + sprint.EndAt.Format("2006-01-02") + ")"
					}
					if err := writePlain("#%d %s\n", sprint.Seq, line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	return cmd
}

func newSprintShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "sprint")
				if err != nil {
					return err
				}
				sprint, err := env.svc.GetSprint(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(sprint)
				}
				if err := writePlain("sprint: #%d\nname: %s\n", sprint.Seq, sprint.Name); err != nil {
					return err
				}
				if sprint.StartAt != nil {
					if err := writePlain("start_at: %s\n", formatTime(*sprint.StartAt)); err != nil {
						return err
					}
				}
				if sprint.EndAt != nil {
					if err := writePlain("end_at: %s\n", formatTime(*sprint.EndAt)); err != nil {
						return err
					}
				}
				return writePlain("created_at: %s\n", formatTime(sprint.CreatedAt))
			})
		},
	}
}

func newSprintDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a sprint; its tasks stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "sprint")
				if err != nil {
					return err
				}
				if err := env.svc.DeleteSprint(cmd.Context(), env.guild, env.actor, seq); err != nil {
					return err
				}
				return writePlain("deleted sprint #%d\n", seq)
			})
		},
	}
}
