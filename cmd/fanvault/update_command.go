package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fanvault/internal/history"
	"fanvault/internal/target"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Manage and run update marks",
	}

	updateCmd.AddCommand(newUpdateMarkCommand(ctx, true))
	updateCmd.AddCommand(newUpdateMarkCommand(ctx, false))
	updateCmd.AddCommand(newUpdateListCommand(ctx))
	updateCmd.AddCommand(newUpdateRunCommand(ctx))
	return updateCmd
}

func newUpdateMarkCommand(ctx *commandContext, mark bool) *cobra.Command {
	use, short := "mark <reference>...", "Mark targets for re-download"
	if !mark {
		use, short = "unmark <reference>...", "Remove targets from the update list"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			for _, ref := range args {
				t, err := target.Resolve(ref)
				if err != nil {
					return err
				}
				if err := p.SetUpdateMark(t, mark); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", markedVerb(mark), t.Identity)
			}
			return nil
		},
	}
}

func markedVerb(mark bool) string {
	if mark {
		return "Marked"
	}
	return "Unmarked"
}

func newUpdateListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List targets marked for update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			marks, err := p.UpdateMarks()
			if err != nil {
				return err
			}
			if len(marks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets marked for update.")
				return nil
			}
			rows := make([][]string, 0, len(marks))
			for _, t := range marks {
				rows = append(rows, []string{t.Source, t.ID, t.URL})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Source", "ID", "URL"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func newUpdateRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Re-download every marked target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			marks, err := p.UpdateMarks()
			if err != nil {
				return err
			}
			if len(marks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets marked for update.")
				return nil
			}

			release, err := p.Lock()
			if err != nil {
				return err
			}
			defer release()

			fetcher, err := ctx.fetcher()
			if err != nil {
				return err
			}
			journal, err := ctx.openHistory(p)
			if err != nil {
				return err
			}
			defer journal.Close()

			out := cmd.OutOrStdout()
			updated, failed := 0, 0
			for _, t := range marks {
				started := time.Now().UTC()
				err := p.RemoveTargetArtifacts(t.Identity)
				if err == nil {
					err = p.DownloadTarget(cmd.Context(), t, fetcher)
				}
				if err == nil {
					err = p.SetUpdateMark(t, false)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "Failed %s: %v\n", t.Identity, err)
				} else {
					updated++
					fmt.Fprintf(out, "Updated %s\n", t.Identity)
				}
				if _, recErr := journal.Record(cmd.Context(), history.Run{
					Kind:      history.KindDownload,
					Subject:   t.Identity.String(),
					Success:   err == nil,
					Detail:    errDetail(err),
					StartedAt: started,
				}); recErr != nil {
					return recErr
				}
			}

			fmt.Fprintf(out, "Done: %d updated, %d failed.\n", updated, failed)
			if failed > 0 {
				return fmt.Errorf("%d update(s) failed", failed)
			}
			return nil
		},
	}
}
