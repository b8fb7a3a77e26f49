package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"imgsort/internal/config"
	"imgsort/internal/log"
	"imgsort/internal/organize"
	"imgsort/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags and the config they resolve to
type rootOptions struct {
	cfgFile string
	debug   bool
	theme   string

	cfg     *config.Config
	cfgPath string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "imgsort",
		Short: "Sort a folder of images into three destinations",
		Long: `imgsort shows the images of a folder one at a time. Each image is moved to
one of three destination folders or sent to the trash with a single key,
and every decision can be undone.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/imgsort/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "color theme ("+strings.Join(config.ListThemes(), ", ")+")")

	rootCmd.AddCommand(newGUICmd(opts))
	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newPreviewCmd(opts))
	rootCmd.AddCommand(newTrashCmd(opts))

	return rootCmd
}

// load resolves the config path, reads the file and sets up logging
func (o *rootOptions) load() error {
	path := o.cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return err
	}
	if o.theme != "" {
		if !slices.Contains(config.ListThemes(), o.theme) {
			return fmt.Errorf("unknown theme %q (available: %s)", o.theme, strings.Join(config.ListThemes(), ", "))
		}
		cfg.ApplyTheme(o.theme)
	}
	o.cfg, o.cfgPath = cfg, path

	logOpts := []log.Option{log.WithOutput(os.Stderr)}
	if cfg.Settings.LogFormat == "json" {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)
	log.SetDebug(o.debug || cfg.Settings.Debug)
	log.LogWithFields(log.F("config", path)).Debug("Configuration loaded")
	return nil
}

// newSession builds the sort engine and the session shared by both shells
func (o *rootOptions) newSession() (*session.Session, error) {
	engine, err := organize.CurrentSorterFactory(o.cfg)
	if err != nil {
		return nil, err
	}
	return session.New(o.cfg, engine, session.WithConfigPath(o.cfgPath)), nil
}
