package main

import (
	"fmt"
	"path/filepath"

	"imgsort/internal/analysis"
	"imgsort/internal/catalog"

	"github.com/spf13/cobra"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "List the images of a folder in sort order",
		Long: `List the images imgsort would show for a folder, in the order they would
be shown. With --details each line also carries the image size and EXIF data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			var catOpts []catalog.Option
			if opts.cfg.Settings.KeepScanOrder {
				catOpts = append(catOpts, catalog.WithScanOrder())
			}
			c, err := catalog.Load(dir, catOpts...)
			if err != nil {
				return err
			}

			st := newCLIStyles(opts.cfg.Theme)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, st.header.Render(fmt.Sprintf("%s: %d images", dir, c.Len())))

			inspector := analysis.New()
			for i, path := range c.Paths() {
				line := fmt.Sprintf("%4d  %s", i+1, filepath.Base(path))
				if details {
					info, err := inspector.Inspect(path)
					if err != nil {
						line += "  " + st.err.Render(err.Error())
					} else {
						line += "  " + st.dim.Render(info.Summary())
					}
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show image size and EXIF data")

	return cmd
}
