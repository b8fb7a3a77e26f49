package main

import (
	"fmt"
	"image/png"
	"os"

	"imgsort/internal/errors"
	"imgsort/internal/preview"

	"github.com/spf13/cobra"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		output        string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Render an image the way the viewer shows it",
		Long: `Decode an image, fit it into a width x height viewport without upscaling
and write the result as PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width == 0 {
				width = opts.cfg.Preview.Width
			}
			if height == 0 {
				height = opts.cfg.Preview.Height
			}

			img, err := preview.Load(args[0], width, height)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return errors.Io("cannot create output file", output, err)
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return errors.Io("cannot write output file", output, err)
			}

			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", output, b.Dx(), b.Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "Output PNG file")
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height (default from config)")

	return cmd
}
