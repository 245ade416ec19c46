package main

import (
	"github.com/spf13/cobra"

	"devtrack/internal/models"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read-only aggregations",
	}
	cmd.AddCommand(
		newReportSnapshotCmd(opts),
		newReportWorkloadCmd(opts),
		newReportTeamCmd(opts),
		newReportStaleCmd(opts),
		newReportDupesCmd(opts),
	)
	return cmd
}

func newReportSnapshotCmd(opts *rootOptions) *cobra.Command {
	var projectSeq int64

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Task and open-bug breakdown of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				project, err := env.svc.GetProject(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				snapshot, err := env.reporter.Snapshot(cmd.Context(), project)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(snapshot)
				}

				if err := writePlain("project #%d %s: %d tasks, %d open bugs\n",
					project.Seq, project.Name, snapshot.TotalTasks, snapshot.OpenBugs); err != nil {
					return err
				}
				for _, status := range []models.TaskStatus{
					models.TaskBacklog, models.TaskTodo, models.TaskInProgress,
					models.TaskBlocked, models.TaskReview, models.TaskDone,
				} {
					if count := snapshot.TaskCounts[status]; count > 0 {
						if err := writePlain("  %s: %d\n", colorTaskStatus(status), count); err != nil {
							return err
						}
					}
				}
				for _, severity := range []models.BugSeverity{
					models.SeverityCritical, models.SeverityMedium, models.SeverityMinor,
				} {
					if count := snapshot.BugCounts[severity]; count > 0 {
						if err := writePlain("  %s bugs: %d\n", colorSeverity(severity), count); err != nil {
							return err
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	return cmd
}

func newReportWorkloadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workload <member>",
		Short: "One member's open assignment count and load band",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				load, err := env.reporter.MemberWorkload(cmd.Context(), env.guild, args[0])
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(load)
				}
				return writePlain("%s: %d/%d (%d tasks, %d bugs) %s\n",
					load.UserID, load.Total(), load.Capacity, load.ActiveTasks, load.OpenBugs, colorBand(load.Band))
			})
		},
	}
}

func newReportTeamCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "Workload of every ranked member, busiest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				loads, err := env.reporter.TeamWorkload(cmd.Context(), env.guild)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(loads)
				}
				for _, load := range loads {
					if err := writePlain("%s: %d/%d %s\n",
						load.UserID, load.Total(), load.Capacity, colorBand(load.Band)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newReportStaleCmd(opts *rootOptions) *cobra.Command {
	var (
		days  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "Active tasks and open bugs nobody has touched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				stale, err := env.reporter.Stale(cmd.Context(), env.guild, days, limit)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(stale)
				}
				if err := writePlain("stale after %d days (cutoff %s)\n", stale.Days, formatTime(stale.Cutoff)); err != nil {
					return err
				}
				for _, task := range stale.Tasks {
					if err := writePlain("task %s (updated %s)\n", formatTaskLine(task), formatTime(task.UpdatedAt)); err != nil {
						return err
					}
				}
				for _, bug := range stale.Bugs {
					if err := writePlain("bug %s (updated %s)\n", formatBugLine(bug), formatTime(bug.UpdatedAt)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "staleness threshold in days (default: the guild's stale_days setting)")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")
	return cmd
}

func newReportDupesCmd(opts *rootOptions) *cobra.Command {
	var projectSeq int64

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Open bugs whose titles look alike",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				project, err := env.svc.GetProject(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				pairs, err := env.reporter.DuplicateBugs(cmd.Context(), project.ID)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(pairs)
				}
				if len(pairs) == 0 {
					return writePlain("no suspected duplicates\n")
				}
				for _, pair := range pairs {
					if err := writePlain("%.0f%% #%d %q and #%d %q\n",
						pair.Similarity*100, pair.First.Seq, pair.First.Title, pair.Second.Seq, pair.Second.Title); err != nil {
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
