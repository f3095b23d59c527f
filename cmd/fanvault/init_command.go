package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanvault/internal/project"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.projectPath()
			if len(args) == 1 {
				path = args[0]
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			p, err := project.Init(path, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project at %s\n", p.Path)
			fmt.Fprintln(cmd.OutOrStdout(), "Add targets to target_urls.txt or with 'fanvault add'.")
			return nil
		},
	}
}
