package main

import (
	"github.com/spf13/cobra"
)

func newChecklistCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage checklists",
	}
	cmd.AddCommand(
		newChecklistCreateCmd(opts),
		newChecklistListCmd(opts),
		newChecklistShowCmd(opts),
		newChecklistAddCmd(opts),
		newChecklistToggleCmd(opts),
		newChecklistRemoveCmd(opts),
		newChecklistArchiveCmd(opts),
		newChecklistRestoreCmd(opts),
		newChecklistDeleteCmd(opts),
	)
	return cmd
}

func newChecklistCreateCmd(opts *rootOptions) *cobra.Command {
	var taskSeq int64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a checklist, optionally attached to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				checklist, err := env.svc.CreateChecklist(cmd.Context(), env.guild, env.actor, args[0], taskSeq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(checklist)
				}
				return writePlain("created checklist #%d %s\n", checklist.Seq, checklist.Name)
			})
		},
	}

	cmd.Flags().Int64Var(&taskSeq, "task", 0, "task number to attach to")
	return cmd
}

func newChecklistListCmd(opts *rootOptions) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				checklists, err := env.svc.ListChecklists(cmd.Context(), env.guild, archived)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(checklists)
				}
				for _, checklist := range checklists {
					if err := writePlain("#%d %s\n", checklist.Seq, checklist.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "show archived checklists instead")
	return cmd
}

func newChecklistShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show a checklist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				checklist, err := env.svc.GetChecklist(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				items, err := env.svc.ChecklistItems(cmd.Context(), env.guild, seq)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(map[string]any{"checklist": checklist, "items": items})
				}
				title := checklist.Name
				if checklist.Archived {
					title += " (archived)"
				}
				if err := writePlain("#%d %s\n", checklist.Seq, title); err != nil {
					return err
				}
				for _, item := range items {
					mark := "[ ]"
					if item.Completed {
						mark = "[x]"
					}
					if err := writePlain("%d. %s %s\n", item.Position, mark, item.Text); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newChecklistAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <number> <text>",
		Short: "Append an item to a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				item, err := env.svc.AddChecklistItem(cmd.Context(), env.guild, env.actor, seq, args[1])
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(item)
				}
				return writePlain("added item %d to checklist #%d\n", item.Position, seq)
			})
		},
	}
}

func newChecklistToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <number> <position>",
		Short: "Flip an item's completed flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				position, err := parsePosition(args[1])
				if err != nil {
					return err
				}
				item, err := env.svc.ToggleChecklistItem(cmd.Context(), env.guild, env.actor, seq, position)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(item)
				}
				state := "unchecked"
				if item.Completed {
					state = "checked"
				}
				return writePlain("item %d of checklist #%d is now %s\n", position, seq, state)
			})
		},
	}
}

func newChecklistRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number> <position>",
		Short: "Delete an item from a checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				position, err := parsePosition(args[1])
				if err != nil {
					return err
				}
				if err := env.svc.RemoveChecklistItem(cmd.Context(), env.guild, env.actor, seq, position); err != nil {
					return err
				}
				return writePlain("removed item %d from checklist #%d\n", position, seq)
			})
		},
	}
}

func newChecklistArchiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <number>",
		Short: "Archive a checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				checklist, err := env.svc.SetChecklistArchived(cmd.Context(), env.guild, env.actor, seq, true)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(checklist)
				}
				return writePlain("archived checklist #%d\n", seq)
			})
		},
	}
}

func newChecklistRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <number>",
		Short: "Restore an archived checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				checklist, err := env.svc.SetChecklistArchived(cmd.Context(), env.guild, env.actor, seq, false)
				if err != nil {
					return err
				}
				if env.json {
					return writeJSON(checklist)
				}
				return writePlain("restored checklist #%d\n", seq)
			})
		},
	}
}

func newChecklistDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a checklist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := parseSeq(args[0], "checklist")
				if err != nil {
					return err
				}
				if err := env.svc.DeleteChecklist(cmd.Context(), env.guild, env.actor, seq); err != nil {
					return err
				}
				return writePlain("deleted checklist #%d\n", seq)
			})
		},
	}
}
