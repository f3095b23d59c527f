package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fanvault/internal/metadata"
	"fanvault/internal/services/ebookconvert"
	"fanvault/internal/target"
	"fanvault/internal/textutil"
)

func newEpubCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "epub <reference>",
		Short: "Convert a downloaded story to EPUB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.openProject()
			if err != nil {
				return err
			}
			t, err := target.Resolve(args[0])
			if err != nil {
				return err
			}
			if !p.HasLocal(t.Identity) {
				return fmt.Errorf("%s is not downloaded", t.Identity)
			}

			meta := storyMeta(p.MetadataPath(t.Identity), t.Identity)
			if outputPath == "" {
				outputPath = textutil.SafeName(meta.Title)
				if outputPath == "" {
					outputPath = t.Identity.Key()
				}
				outputPath += ".epub"
			}

			converter, err := ctx.converter()
			if err != nil {
				return err
			}
			err = converter.Convert(cmd.Context(), p.StoryHTMLPath(t.Identity), outputPath, ebookconvert.BookMeta{
				Title:   meta.Title,
				Authors: meta.Author,
				Comment: meta.Description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (defaults to the story title)")
	return cmd
}

// storyMeta loads what canonical metadata it can; a story with unreadable
// metadata still converts, just without stamped fields.
func storyMeta(path string, id target.Identity) metadata.Canonical {
	data, err := os.ReadFile(path)
	if err != nil {
		return metadata.Canonical{}
	}
	var raw metadata.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return metadata.Canonical{}
	}
	c, err := metadata.Convert(id, raw)
	if err != nil {
		return metadata.Canonical{}
	}
	return c
}
