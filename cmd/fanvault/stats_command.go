package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fanvault/internal/catalog"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var skipSubprojects bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			idx, err := catalog.NewEngine(logger).Aggregate(p, !skipSubprojects)
			if err != nil {
				return err
			}
			stats := idx.ComputeStats()

			rows := [][]string{
				{"Sources", strconv.Itoa(stats.Sources)},
				{"Categories", strconv.Itoa(stats.Categories)},
				{"Authors", strconv.Itoa(stats.Authors)},
				{"Stories", strconv.Itoa(stats.Stories)},
				{"Chapters", strconv.Itoa(stats.Chapters)},
				{"Words", strconv.Itoa(stats.Words)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Type", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipSubprojects, "no-subprojects", false, "Ignore linked subprojects")
	return cmd
}
