package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fanvault/internal/history"
	"fanvault/internal/project"
	"fanvault/internal/target"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "download [reference...]",
		Short: "Download pending targets",
		Long: "Download the given references, or every target on the list that has no\n" +
			"local copy yet when no reference is given. Failed downloads are cleaned\n" +
			"up and reported without aborting the rest of the batch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}

			var targets []target.Target
			if len(args) > 0 {
				for _, ref := range args {
					t, err := target.Resolve(ref)
					if err != nil {
						return err
					}
					targets = append(targets, t)
				}
			} else {
				targets, err = p.ListTargets(true)
				if err != nil {
					return err
				}
			}
			if limit > 0 && len(targets) > limit {
				targets = targets[:limit]
			}
			if len(targets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to download.")
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
			downloaded, failed, skipped := 0, 0, 0
			for _, t := range targets {
				started := time.Now().UTC()
				err := p.DownloadTarget(cmd.Context(), t, fetcher)
				switch {
				case err == nil:
					downloaded++
					fmt.Fprintf(out, "Downloaded %s\n", t.Identity)
				case errors.Is(err, project.ErrAlreadyExists):
					skipped++
					fmt.Fprintf(out, "Skipped %s (already downloaded)\n", t.Identity)
					continue
				default:
					failed++
					fmt.Fprintf(out, "Failed %s: %v\n", t.Identity, err)
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

			fmt.Fprintf(out, "Done: %d downloaded, %d failed, %d skipped.\n", downloaded, failed, skipped)
			if failed > 0 {
				return fmt.Errorf("%d download(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Download at most this many targets (0 means no limit)")
	return cmd
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
