package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newAliasCommand(ctx *commandContext) *cobra.Command {
	aliasCmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage category aliases",
	}

	aliasCmd.AddCommand(&cobra.Command{
		Use:   "add <from> <to>",
		Short: "Map one category name onto another during aggregation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			if err := p.AddAlias(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Aliased %q -> %q\n", args[0], args[1])
			return nil
		},
	})

	aliasCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the project's category aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			aliases, err := p.Aliases()
			if err != nil {
				return err
			}
			if len(aliases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No aliases.")
				return nil
			}
			froms := make([]string, 0, len(aliases))
			for from := range aliases {
				froms = append(froms, from)
			}
			sort.Strings(froms)
			rows := make([][]string, 0, len(froms))
			for _, from := range froms {
				rows = append(rows, []string{from, aliases[from]})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"From", "To"},
				rows,
				[]columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	})

	return aliasCmd
}
