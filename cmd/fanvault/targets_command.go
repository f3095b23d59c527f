package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTargetsCommand(ctx *commandContext) *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the project's download targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			targets, err := p.ListTargets(missingOnly)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets.")
				return nil
			}

			rows := make([][]string, 0, len(targets))
			for _, t := range targets {
				marked, err := p.IsMarkedForUpdate(t.Identity)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					t.Source,
					t.ID,
					t.URL,
					yesNo(p.HasLocal(t.Identity)),
					yesNo(marked),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Source", "ID", "URL", "Downloaded", "Update"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only list targets that are not downloaded yet")
	return cmd
}
