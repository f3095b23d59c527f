package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fanvault/internal/build"
	"fanvault/internal/history"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var skipSubprojects bool
	var keepStaging bool

	cmd := &cobra.Command{
		Use:   "build <output.zim>",
		Short: "Package the project into a ZIM archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			packager, err := ctx.packager()
			if err != nil {
				return err
			}
			builder, err := build.New(cfg.Build.StagingDir, packager, logger)
			if err != nil {
				return err
			}
			journal, err := ctx.openHistory(p)
			if err != nil {
				return err
			}
			defer journal.Close()

			started := time.Now().UTC()
			result, buildErr := builder.Run(cmd.Context(), p, build.Request{
				OutputPath:         args[0],
				IncludeSubprojects: !skipSubprojects,
				KeepStaging:        keepStaging,
			})
			if _, recErr := journal.Record(cmd.Context(), history.Run{
				Kind:      history.KindBuild,
				Subject:   args[0],
				Success:   buildErr == nil,
				Detail:    errDetail(buildErr),
				StartedAt: started,
			}); recErr != nil {
				return recErr
			}
			if buildErr != nil {
				return buildErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Built %s: %d stories, %d categories, %d authors.\n",
				result.OutputPath, result.Stats.Stories, result.Stats.Categories, result.Stats.Authors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipSubprojects, "no-subprojects", false, "Build without linked subprojects")
	cmd.Flags().BoolVar(&keepStaging, "keep-staging", false, "Keep the staging tree for inspection")
	return cmd
}
