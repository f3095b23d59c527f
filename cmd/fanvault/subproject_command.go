package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubprojectCommand(ctx *commandContext) *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "subproject",
		Short: "Manage linked subprojects",
	}

	subCmd.AddCommand(&cobra.Command{
		Use:   "add <path>",
		Short: "Link another project whose stories join this project's builds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			if err := p.AddSubproject(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked subproject %s\n", args[0])
			return nil
		},
	})

	subCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List directly linked subprojects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			paths, err := p.SubprojectPaths()
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subprojects.")
				return nil
			}
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	})

	return subCmd
}
