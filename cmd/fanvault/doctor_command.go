package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fanvault/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := deps.CheckBinaries(deps.ForTools(
				cfg.Tools.Fanficfare,
				cfg.Tools.EbookConvert,
				cfg.Tools.Zimwriterfs,
			))

			rows := make([][]string, 0, len(results))
			missingRequired := false
			for _, r := range results {
				state := "ok"
				if !r.Available {
					state = "missing"
					if !r.Optional {
						missingRequired = true
					}
				}
				detail := r.Detail
				if detail == "" {
					detail = r.Description
				}
				rows = append(rows, []string{r.Name, r.Command, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Tool", "Command", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))

			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
