package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"devtrack/internal/models"
	"devtrack/internal/tracker"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectCreateCmd(opts),
		newProjectBulkCmd(opts),
		newProjectListCmd(opts),
		newProjectShowCmd(opts),
		newProjectDeleteCmd(opts),
		newProjectUseCmd(opts),
		newProjectActiveCmd(opts),
	)
	return cmd
}

func newProjectCreateCmd(opts *rootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				project, err := env.svc.CreateProject(cmd.Context(), env.guild, env.actor, args[0], description)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(project)
				}
				return writePlain("created project #%d %s\n", project.Seq, project.Name)
			})
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "project description")
	return cmd
}

func newProjectBulkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <name,name,...>",
		Short: "Create several projects from a comma-separated list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				names := tracker.SplitBulkNames(args[0])
				results, err := env.svc.BatchCreateProjects(cmd.Context(), env.guild, env.actor, names)
				if err != nil {
					return err
				}
				return writeBatchResults(results, env.json)
			})
		},
	}
}

func newProjectListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				projects, err := env.svc.ListProjects(cmd.Context(), env.guild)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(projects)
				}
				for _, project := range projects {
					if err := writePlain("#%d %s\n", project.Seq, project.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newProjectShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number|name>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				project, err := lookupProject(cmd, env, args[0])
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(project)
				}
				return writeProjectDetail(project)
			})
		},
	}
}

func newProjectDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "project")
				if err != nil {
					return err
				}
				if err := env.svc.DeleteProject(cmd.Context(), env.guild, env.actor, seq); err != nil {
					return err
				}
				return writePlain("deleted project #%d\n", seq)
			})
		},
	}
}

func newProjectUseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "use <number>",
		Short: "Set the guild's active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "project")
				if err != nil {
					return err
				}
				project, err := env.svc.SetActiveProject(cmd.Context(), env.guild, env.actor, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(project)
				}
				return writePlain("active project is now #%d %s\n", project.Seq, project.Name)
			})
		},
	}
}

func newProjectActiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the guild's active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				project, err := env.svc.ActiveProject(cmd.Context(), env.guild)
				if err != nil {
					return err
				}
				if project == nil {
					return writePlain("no active project\n")
				}
				if env.json {
					return writeJSON(project)
				}
				return writeProjectDetail(project)
			})
		},
	}
}

// lookupProject resolves a project from a number or, failing that, a
// name.
func lookupProject(cmd *cobra.Command, env *cliEnv, arg string) (*models.Project, error) {
	if seq, parseErr := strconv.ParseInt(arg, 10, 64); parseErr == nil {
		return env.svc.GetProject(cmd.Context(), env.guild, seq)
	}
	return env.svc.GetProjectByName(cmd.Context(), env.guild, arg)
}
