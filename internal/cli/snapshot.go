package cli

import (
	"time"

	"github.com/spf13/cobra"

	"visitavigliano/internal/capture"
)

var (
	flagSnapshotURL    string
	flagSnapshotOut    string
	flagSnapshotWidth  int
	flagSnapshotHeight int
	flagSnapshotChrome string
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture a PNG preview of a running site with headless Chromium",
		Long: `snapshot opens a page of a running server in headless Chromium, waits
until the page is fully bound and saves a full-page PNG. The server then
serves it at /preview.png.`,
		RunE: runSnapshot,
	}
	cmd.Flags().StringVar(&flagSnapshotURL, "url", "", "Page URL (defaults to the configured listen address)")
	cmd.Flags().StringVarP(&flagSnapshotOut, "out", "o", "", "Output PNG (defaults to preview_path)")
	cmd.Flags().IntVar(&flagSnapshotWidth, "width", capture.DefaultWidth, "Viewport width in pixels")
	cmd.Flags().IntVar(&flagSnapshotHeight, "height", capture.DefaultHeight, "Viewport height in pixels")
	cmd.Flags().StringVar(&flagSnapshotChrome, "chrome", "", "Chromium binary path")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := flagSnapshotURL
	if url == "" {
		url = "http://" + cfg.Listen + "/"
	}
	out := flagSnapshotOut
	if out == "" {
		out = cfg.PreviewPath
	}

	return capture.PagePNG(cmd.Context(), capture.Options{
		URL:        url,
		OutputPath: out,
		Width:      flagSnapshotWidth,
		Height:     flagSnapshotHeight,
		Timeout:    time.Duration(capture.DefaultTimeoutSec) * time.Second,
		ExecPath:   flagSnapshotChrome,
	})
}
