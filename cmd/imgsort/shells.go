package main

import (
	"fmt"
	"io"

	"imgsort/internal/gui"
	"imgsort/internal/log"
	"imgsort/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newGUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [folder]",
		Short: "Launch the graphical user interface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return fmt.Errorf("this build has no GUI support, use 'imgsort tui'")
			}
			if len(args) > 0 {
				opts.cfg.Directories.Source = args[0]
			}

			sess, err := opts.newSession()
			if err != nil {
				return err
			}
			if src := opts.cfg.Directories.Source; src != "" {
				if _, err := sess.Open(src); err != nil {
					log.LogWithError(err).Warn("Cannot open configured source folder")
				}
			}

			app, err := gui.NewFactory(opts.cfg, sess).Create()
			if err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [folder]",
		Short: "Start the terminal user interface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.cfg.Directories.Source = args[0]
			}

			// Log lines would draw over the alt screen
			if opts.debug || opts.cfg.Settings.Debug {
				f, err := tea.LogToFile("imgsort-debug.log", "imgsort")
				if err != nil {
					return err
				}
				defer f.Close()
				log.SetOutput(f)
			} else {
				log.SetOutput(io.Discard)
			}

			sess, err := opts.newSession()
			if err != nil {
				return err
			}
			return tui.Run(opts.cfg, sess)
		},
	}
}
