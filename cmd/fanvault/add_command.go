package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <reference>...",
		Short: "Add download targets to the project",
		Long: "Add one or more targets to the project's target list. A reference may be\n" +
			"a story URL or a bare numeric ID (treated as a fanfiction.net story).\n" +
			"Targets already on the list are skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			added, err := p.AddTargetsBulk(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d new target(s), skipped %d duplicate(s).\n",
				added, len(args)-added)
			return nil
		},
	}
}
