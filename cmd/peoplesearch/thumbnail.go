// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail TOKEN [FALLBACK_TOKEN]",
	Short: "Print the thumbnail URL for image tokens",
	Long: `Thumbnail builds the thumbnail service URL for the thumbnail token of an
image in a response. A second token is used when the first image is
unavailable.`,
	Args: cobra.RangeArgs(1, 2),
	// Needs no API key, config or logger.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fields.DefaultThumbnailOptions()
		opts.Width, _ = cmd.Flags().GetInt("width")
		opts.Height, _ = cmd.Flags().GetInt("height")
		opts.ZoomFace, _ = cmd.Flags().GetBool("zoom-face")
		opts.Favicon, _ = cmd.Flags().GetBool("favicon")
		opts.HTTPS, _ = cmd.Flags().GetBool("https")

		first := &fields.Image{ThumbnailToken: args[0]}
		var second *fields.Image
		if len(args) == 2 {
			second = &fields.Image{ThumbnailToken: args[1]}
		}
		u, err := fields.GenerateRedundantThumbnailURL(first, second, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	d := fields.DefaultThumbnailOptions()
	f := thumbnailCmd.Flags()
	f.Int("width", d.Width, "thumbnail width in pixels")
	f.Int("height", d.Height, "thumbnail height in pixels")
	f.Bool("zoom-face", d.ZoomFace, "crop to the face")
	f.Bool("favicon", d.Favicon, "overlay the source favicon")
	f.Bool("https", d.HTTPS, "use https")
	rootCmd.AddCommand(thumbnailCmd)
}
