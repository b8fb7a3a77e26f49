package main

import (
	"fmt"
	"path/filepath"

	"imgsort/internal/trash"

	"github.com/spf13/cobra"
)

func newTrashCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and restore trashed images",
	}
	cmd.AddCommand(newTrashListCmd(opts))
	cmd.AddCommand(newTrashRestoreCmd(opts))
	return cmd
}

func newTrashListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trash entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := trash.NewXDG(opts.cfg.Trash.Dir)
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "Trash at %s is empty\n", store.Root())
				return nil
			}
			st := newCLIStyles(opts.cfg.Theme)
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s\n", st.dim.Render(e.DeletedAt.Format("2006-01-02 15:04:05")), e.OriginalPath)
			}
			return nil
		},
	}
}

func newTrashRestoreCmd(opts *rootOptions) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "restore <original path>",
		Short: "Move the most recently trashed copy of a file back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := trash.NewXDG(opts.cfg.Trash.Dir)
			if err != nil {
				return err
			}
			original := args[0]
			if abs, err := filepath.Abs(original); err == nil {
				original = abs
			}

			entry, err := store.Find(original)
			if err != nil {
				return err
			}
			if err := store.Restore(entry, to); err != nil {
				return err
			}

			dst := to
			if dst == "" {
				dst = entry.OriginalPath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Restore to this path instead of the original location")

	return cmd
}
