package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/snapcrop-go/app"
	"github.com/soocke/snapcrop-go/config"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snapcrop",
		Short: "snapcrop - capture a monitor, select a region and crop it",
		Long: `snapcrop covers a monitor with a translucent overlay, lets you pick the
whole screen or draw a region, and opens the capture in an editor where the
crop can be adjusted before saving it or copying it to the clipboard.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := NewLogger(ParseLevel(cfg.LogLevel, cfg.Debug))
			application, err := app.NewApp("snapcrop", 960, 640, cfg, logger)
			if err != nil {
				return err
			}
			application.Start()
			return nil
		},
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/snapcrop/config.json)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("debug", false, "debug logging and runtime memory logs")
	pf.Int("delay", 0, "capture delay in seconds (0-60)")
	pf.Int("monitor", 0, "monitor index to capture")
	pf.String("backend", "", "capture backend (displays, primary)")
	pf.String("save-dir", "", "directory for saved captures")
	pf.String("format", "", "save format (png, jpg, gif, bmp, tiff)")
	pf.Bool("dark", false, "dark palette")

	root.AddCommand(newShotCmd(), newConfigCmd())
	return root
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return cfg.WriteJSON(cmd.OutOrStdout())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
