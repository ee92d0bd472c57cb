package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soocke/snapcrop-go/config"
	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/export"
)

func newShotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Capture a whole monitor and save it without the editor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := NewLogger(ParseLevel(cfg.LogLevel, cfg.Debug))
			if d := cfg.Delay(); d > 0 {
				logger.Info("shot.delay", "seconds", cfg.DelaySeconds)
				time.Sleep(d)
			}

			svc := capture.NewCaptureService(logger, capture.NewBackend(cfg.Backend))
			buf, err := svc.Capture(cfg.Monitor)
			if err != nil {
				return err
			}
			defer buf.Release()
			img, err := buf.Crop(buf.Monitor.Rect())
			if err != nil {
				return fmt.Errorf("crop monitor %d: %w", buf.Monitor.ID, err)
			}

			exp, err := export.NewFileExporter(logger, export.FileOptions{
				Dir:         cfg.SaveDir,
				Format:      cfg.SaveFormat,
				JPEGQuality: cfg.JPEGQuality,
			})
			if err != nil {
				return err
			}
			res, err := exp.Export(img, out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; the extension selects the format")
	return cmd
}
