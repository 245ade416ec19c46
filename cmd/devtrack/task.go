package main

import (
	"strings"

	"github.com/spf13/cobra"

	"devtrack/internal/models"
	"devtrack/internal/store"
	"devtrack/internal/tracker"
)

func newTaskCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskCreateCmd(opts),
		newTaskBulkCmd(opts),
		newTaskListCmd(opts),
		newTaskShowCmd(opts),
		newTaskStatusCmd(opts),
		newTaskAssignCmd(opts),
		newTaskSprintCmd(opts),
		newTaskCommentCmd(opts),
		newTaskCommentsCmd(opts),
		newTaskLinkCmd(opts),
		newTaskUnlinkCmd(opts),
		newTaskDeleteCmd(opts),
	)
	return cmd
}

func newTaskCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		projectSeq  int64
		description string
		priority    string
		assignee    string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				draft := tracker.TaskDraft{
					Title:       args[0],
					Description: description,
					Assignee:    assignee,
				}
				if priority != "" {
					parsed, err := models.ParsePriority(priority)
					if err != nil {
						return err
					}
					draft.Priority = parsed
				}
				task, err := env.svc.CreateTask(cmd.Context(), env.guild, env.actor, seq, draft)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(task)
				}
				return writePlain("created task #%d %s\n", task.Seq, task.Title)
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	cmd.Flags().StringVar(&description, "desc", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (critical, high, medium, low)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "initial assignee")
	return cmd
}

func newTaskBulkCmd(opts *rootOptions) *cobra.Command {
	var projectSeq int64

	cmd := &cobra.Command{
		Use:   "bulk <title,title,...>",
		Short: "Create several tasks from a comma-separated list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				titles := tracker.SplitBulkNames(args[0])
				results, err := env.svc.BatchCreateTasks(cmd.Context(), env.guild, env.actor, seq, titles)
				if err != nil {
					return err
				}
				return writeBatchResults(results, env.json)
			})
		},
	}

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number (default: active project)")
	return cmd
}

func newTaskListCmd(opts *rootOptions) *cobra.Command {
	var (
		projectSeq int64
		sprintSeq  int64
		statuses   string
		priorities string
		assignee   string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				filter := store.TaskFilter{Assignee: assignee, Limit: limit}

				if projectSeq != 0 {
					project, err := env.svc.GetProject(cmd.Context(), env.guild, projectSeq)
					if err != nil {
						return err
					}
					filter.ProjectID = project.ID
				}
				if sprintSeq != 0 {
					sprint, err := env.svc.GetSprint(cmd.Context(), env.guild, sprintSeq)
					if err != nil {
						return err
					}
					filter.SprintID = sprint.ID
				}
				for _, raw := range splitCommaList(statuses) {
					status, err := models.ParseTaskStatus(raw)
					if err != nil {
						return err
					}
					filter.Statuses = append(filter.Statuses, status)
				}
				for _, raw := range splitCommaList(priorities) {
					priority, err := models.ParsePriority(raw)
					if err != nil {
						return err
					}
					filter.Priorities = append(filter.Priorities, priority)
				}

				tasks, err := env.svc.ListTasks(cmd.Context(), env.guild, filter)
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

	cmd.Flags().Int64Var(&projectSeq, "project", 0, "project number")
	cmd.Flags().Int64Var(&sprintSeq, "sprint", 0, "sprint number")
	cmd.Flags().StringVar(&statuses, "status", "", "status filter (comma-separated)")
	cmd.Flags().StringVar(&priorities, "priority", "", "priority filter (comma-separated)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")
	return cmd
}

func newTaskShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				task, err := env.svc.GetTask(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(task)
				}
				return writeTaskDetail(task)
			})
		},
	}
}

func newTaskStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <number> <status>",
		Short: "Move a task to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				status, err := models.ParseTaskStatus(args[1])
				if err != nil {
					return err
				}
				task, err := env.svc.SetTaskStatus(cmd.Context(), env.guild, env.actor, seq, status)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(task)
				}
				return writePlain("task #%d is now %s\n", task.Seq, colorTaskStatus(task.Status))
			})
		},
	}
}

func newTaskAssignCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <number> [member]",
		Short: "Assign a task, or clear the assignee when no member is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				assignee := ""
				if len(args) == 2 {
					assignee = args[1]
				}
				task, err := env.svc.AssignTask(cmd.Context(), env.guild, env.actor, seq, assignee)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(task)
				}
				if task.Assignee == "" {
					return writePlain("task #%d unassigned\n", task.Seq)
				}
				return writePlain("task #%d assigned to %s\n", task.Seq, task.Assignee)
			})
		},
	}
}

func newTaskSprintCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sprint <number> <sprint-number|none>",
		Short: "Move a task into a sprint, or out of one with 'none'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				var sprintSeq int64
				if !strings.EqualFold(args[1], "none") {
					sprintSeq, err = parseSeq(args[1], "sprint")
					if err != nil {
						return err
					}
				}
				task, err := env.svc.MoveTaskToSprint(cmd.Context(), env.guild, env.actor, seq, sprintSeq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(task)
				}
				if sprintSeq == 0 {
					return writePlain("task #%d removed from its sprint\n", task.Seq)
				}
				return writePlain("task #%d moved to sprint #%d\n", task.Seq, sprintSeq)
			})
		},
	}
}

func newTaskCommentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <number> <text>",
		Short: "Comment on a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				comment, err := env.svc.CommentTask(cmd.Context(), env.guild, env.actor, seq, args[1])
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(comment)
				}
				return writePlain("commented on task #%d\n", seq)
			})
		},
	}
}

func newTaskCommentsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <number>",
		Short: "List a task's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				comments, err := env.svc.TaskComments(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(comments)
				}
				for _, comment := range comments {
					if err := writePlain("[%s] %s: %s\n", formatTime(comment.CreatedAt), comment.Author, comment.Content); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newTaskLinkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link <task-number> <bug-number>",
		Short: "Link a task to a bug",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				taskSeq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				bugSeq, err := parseSeq(args[1], "bug")
				if err != nil {
					return err
				}
				if err := env.svc.LinkTaskBug(cmd.Context(), env.guild, env.actor, taskSeq, bugSeq); err != nil {
					return err
				}
				return writePlain("linked task #%d to bug #%d\n", taskSeq, bugSeq)
			})
		},
	}
}

func newTaskUnlinkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <task-number> <bug-number>",
		Short: "Remove a task-bug link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				taskSeq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				bugSeq, err := parseSeq(args[1], "bug")
				if err != nil {
					return err
				}
				if err := env.svc.UnlinkTaskBug(cmd.Context(), env.guild, env.actor, taskSeq, bugSeq); err != nil {
					return err
				}
				return writePlain("unlinked task #%d from bug #%d\n", taskSeq, bugSeq)
			})
		},
	}
}

func newTaskDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "task")
				if err != nil {
					return err
				}
				if err := env.svc.DeleteTask(cmd.Context(), env.guild, env.actor, seq); err != nil {
					return err
				}
				return writePlain("deleted task #%d\n", seq)
			})
		},
	}
}
