package main

import (
	"github.com/spf13/cobra"

	"devtrack/internal/models"
	"devtrack/internal/store"
	"devtrack/internal/tracker"
)

func newBugCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bug",
		Short: "Manage bug reports",
	}
	cmd.AddCommand(
		newBugReportCmd(opts),
		newBugListCmd(opts),
		newBugShowCmd(opts),
		newBugStatusCmd(opts),
		newBugCloseCmd(opts),
		newBugAssignCmd(opts),
		newBugTasksCmd(opts),
		newBugDeleteCmd(opts),
	)
	return cmd
}

func newBugReportCmd(opts *rootOptions) *cobra.Command {
	var (
		projectSeq  int64
		description string
		severity    string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "report <title>",
		Short: "Report a bug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				draft := tracker.BugDraft{
					Title:       args[0],
					Description: description,
					Tags:        splitCommaList(tags),
				}
				if severity != "" {
					parsed, err := models.ParseSeverity(severity)
					if err != nil {
						return err
					}
					draft.Severity = parsed
				}
				bug, err := env.svc.ReportBug(cmd.Context(), env.guild, env.actor, seq, draft)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bug)
				}
				return writePlain("reported bug #%d %s\n", bug.Seq, bug.Title)
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	cmd.Flags().StringVar(&description, "desc", "", "bug description")
	cmd.Flags().StringVar(&severity, "severity", "", "severity (critical, medium, minor)")
	cmd.Flags().StringVar(&tags, "tags", "", "tags (comma-separated)")
	return cmd
}

func newBugListCmd(opts *rootOptions) *cobra.Command {
	var (
		projectSeq int64
		statuses   string
		severities string
		assignee   string
		openOnly   bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				filter := store.BugFilter{Assignee: assignee, Limit: limit}

				if projectSeq != 0 {
					project, err := env.svc.GetProject(cmd.Context(), env.guild, projectSeq)
					if err != nil {
						return err
					}
					filter.ProjectID = project.ID
				}
				for _, raw := range splitCommaList(statuses) {
					status, err := models.ParseBugStatus(raw)
					if err != nil {
						return err
					}
					filter.Statuses = append(filter.Statuses, status)
				}
				if openOnly && len(filter.Statuses) == 0 {
					for _, raw := range models.OpenBugStatusStrings() {
						filter.Statuses = append(filter.Statuses, models.BugStatus(raw))
					}
				}
				for _, raw := range splitCommaList(severities) {
					parsed, err := models.ParseSeverity(raw)
					if err != nil {
						return err
					}
					filter.Severities = append(filter.Severities, parsed)
				}

				bugs, err := env.svc.ListBugs(cmd.Context(), env.guild, filter)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bugs)
				}
				return writeBugList(bugs)
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number")
	cmd.Flags().StringVar(&statuses, "status", "", "status filter (comma-separated)")
	cmd.Flags().StringVar(&severities, "severity", "", "severity filter (comma-separated)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee filter")
	cmd.Flags().BoolVar(&openOnly, "open", false, "only bugs that are not closed")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")
	return cmd
}

func newBugShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one bug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				bug, err := env.svc.GetBug(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bug)
				}
				return writeBugDetail(bug)
			})
		},
	}
}

func newBugStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <number> <status>",
		Short: "Move a bug to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				status, err := models.ParseBugStatus(args[1])
				if err != nil {
					return err
				}
				bug, err := env.svc.SetBugStatus(cmd.Context(), env.guild, env.actor, seq, status)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bug)
				}
				return writePlain("bug #%d is now %s\n", bug.Seq, colorBugStatus(bug.Status))
			})
		},
	}
}

func newBugCloseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "close <number>",
		Short: "Close a bug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				bug, err := env.svc.SetBugStatus(cmd.Context(), env.guild, env.actor, seq, models.BugClosed)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bug)
				}
				return writePlain("closed bug #%d\n", bug.Seq)
			})
		},
	}
}

func newBugAssignCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <number> [member]",
		Short: "Assign a bug, or clear the assignee when no member is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				assignee := ""
				if len(args) == 2 {
					assignee = args[1]
				}
				bug, err := env.svc.AssignBug(cmd.Context(), env.guild, env.actor, seq, assignee)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(bug)
				}
				if bug.Assignee == "" {
					return writePlain("bug #%d unassigned\n", bug.Seq)
				}
				return writePlain("bug #%d assigned to %s\n", bug.Seq, bug.Assignee)
			})
		},
	}
}

func newBugTasksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <number>",
		Short: "List the tasks linked to a bug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				tasks, err := env.svc.BugTasks(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}
}

func newBugDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a bug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "bug")
				if err != nil {
					return err
				}
				if err := env.svc.DeleteBug(cmd.Context(), env.guild, env.actor, seq); err != nil {
					return err
				}
				return writePlain("deleted bug #%d\n", seq)
			})
		},
	}
}
