// Package cli wires the visitavigliano commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"visitavigliano/internal/config"
	"visitavigliano/internal/dates"
	"visitavigliano/internal/feed"
	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/site"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is stamped at build time with -ldflags.
var Version = "0.1.0-dev"

var (
	flagConfigPath string
	flagListen     string
	flagLogLevel   string
)

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visitavigliano",
		Short: "Render the Avigliano Umbro tourism site from its published sheets",
		Long: `visitavigliano fetches the content and events sheets published as CSV,
binds them into the site pages and serves the result.`,
		SilenceUsage: true,
		Version:      Version,
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "config.yaml", "Path to config file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info or error (overrides config)")

	cmd.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newEventsCmd(),
		newSnapshotCmd(),
	)
	return cmd
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	appLog.Info("effective config",
		"config_path", flagConfigPath,
		"listen", cfg.Listen,
		"timezone", cfg.Timezone,
		"refresh", cfg.RefreshCron,
		"max_slider_events", cfg.MaxSliderEvents,
		"fetch_timeout_seconds", cfg.FetchTimeoutSeconds,
		"pages_dir", cfg.PagesDir,
		"preview_path", cfg.PreviewPath,
	)
	return cfg, nil
}

// pipeline is the shared load path: fetcher, loader and the state it
// writes into.
type pipeline struct {
	cfg    *config.Config
	dates  *dates.Formatter
	state  *site.State
	loader *site.Loader
}

func newPipeline(cfg *config.Config) *pipeline {
	f := dates.NewFormatter(cfg.Location())
	state := site.NewState()
	fetcher := feed.NewFetcher(cfg.FetchTimeout(), cfg.UserAgent)
	loader := site.NewLoader(fetcher, state, site.LoaderConfig{
		Content:          feed.Source{ID: "content", URL: cfg.ContentURL},
		Events:           feed.Source{ID: "events", URL: cfg.EventsURL},
		PlaceholderImage: cfg.PlaceholderImage,
		Dates:            f,
	})
	return &pipeline{cfg: cfg, dates: f, state: state, loader: loader}
}
