package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fanvault/internal/target"
)

func newAddFileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add-file <path>",
		Short: "Extract story references from a text file and add them as targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			refs := target.FindReferences(string(data))
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No story references found.")
				return nil
			}

			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			added, err := p.AddTargetsBulk(refs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d reference(s), added %d new target(s).\n",
				len(refs), added)
			return nil
		},
	}
}
