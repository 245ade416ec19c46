package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"devtrack/internal/ingest"
)

func newIngestCmd(opts *rootOptions) *cobra.Command {
	var projectSeq int64

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "File bugs in bulk from a markdown document",
		Long: `Reads a markdown document of bug drafts and files each one against a
project. Rows of a table (title | severity | description) and list items
("title :: severity :: description") both work; a YAML front matter block
may set default severity and tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *cliEnv) error {
				seq, err := env.resolveProjectSeq(cmd.Context(), projectSeq)
				if err != nil {
					return err
				}
				input, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				drafts, err := ingest.ParseBugs(string(input))
				if err != nil {
					return err
				}
				if len(drafts) == 0 {
					return fmt.Errorf("no bug drafts found in %s", args[0])
				}
				results, err := env.svc.BatchReportBugs(cmd.Context(), env.guild, env.actor, seq, drafts)
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
