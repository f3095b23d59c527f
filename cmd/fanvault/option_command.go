package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newOptionCommand(ctx *commandContext) *cobra.Command {
	optionCmd := &cobra.Command{
		Use:   "option",
		Short: "Read and write project options",
	}

	optionCmd.AddCommand(&cobra.Command{
		Use:   "get <section> <key>",
		Short: "Print a project option",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			value := p.GetOption(args[0], args[1], nil)
			if value == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "(unset)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
			return nil
		},
	})

	optionCmd.AddCommand(&cobra.Command{
		Use:   "set <section> <key> <value>",
		Short: "Set a project option",
		Long: "Set a project option. Values parse as booleans or numbers when they\n" +
			"look like one, otherwise they are stored as strings.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			if err := p.SetOption(args[0], args[1], parseOptionValue(args[2])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s.%s\n", args[0], args[1])
			return nil
		},
	})

	return optionCmd
}

func parseOptionValue(raw string) any {
	if parsed, err := strconv.ParseBool(raw); err == nil {
		return parsed
	}
	if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
		return parsed
	}
	return raw
}
