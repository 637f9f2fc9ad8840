package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	appLog "visitavigliano/internal/log"
)

// NOTE: This file provides the configuration model and full YAML-based
// load/save behavior, including first-run config creation and 0600
// permissions. Environment variables (VISIT_*) override file values and
// may come from a .env file in the working directory.

const (
	DefaultContentURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQIXJyYXgON5vC3u4ri0duZ3MMue3ZeqfvU_j52iVmJMpWfzuzedidIob5KyTw71baMKZXNgTCiaYce/pub?gid=643581002&single=true&output=csv"
	DefaultEventsURL  = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQIXJyYXgON5vC3u4ri0duZ3MMue3ZeqfvU_j52iVmJMpWfzuzedidIob5KyTw71baMKZXNgTCiaYce/pub?gid=0&single=true&output=csv"

	DefaultPlaceholderImage = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?q=80&w=800"
	DefaultMaxSliderEvents  = 6

	defaultListen       = "127.0.0.1:8080"
	defaultTimezone     = "Europe/Rome"
	defaultRefreshCron  = "*/15 * * * *"
	defaultFetchTimeout = 20
	defaultUserAgent    = "visitavigliano/1.0"
	defaultPreviewPath  = "./var/preview.png"
	defaultLogLevel     = "info"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the site.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone used to decide which events are upcoming
	// and to interpret feed dates.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// used to reload both feeds.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// ContentURL and EventsURL are the published CSV feeds.
	ContentURL string `yaml:"content_url" json:"content_url"`
	EventsURL  string `yaml:"events_url" json:"events_url"`

	// PlaceholderImage is used whenever an event or detail has no image.
	PlaceholderImage string `yaml:"placeholder_image" json:"placeholder_image"`

	// MaxSliderEvents caps the number of cards shown in the home slider.
	MaxSliderEvents int `yaml:"max_slider_events" json:"max_slider_events"`

	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
	UserAgent           string `yaml:"user_agent" json:"user_agent"`

	// PagesDir, if set, overrides the embedded page templates. It must
	// contain index.html and eventi.html.
	PagesDir string `yaml:"pages_dir,omitempty" json:"pages_dir,omitempty"`

	// PreviewPath is where the snapshot command writes the PNG served at
	// /preview.png.
	PreviewPath string `yaml:"preview_path" json:"preview_path"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:              defaultListen,
		Timezone:            defaultTimezone,
		RefreshCron:         defaultRefreshCron,
		ContentURL:          DefaultContentURL,
		EventsURL:           DefaultEventsURL,
		PlaceholderImage:    DefaultPlaceholderImage,
		MaxSliderEvents:     DefaultMaxSliderEvents,
		FetchTimeoutSeconds: defaultFetchTimeout,
		UserAgent:           defaultUserAgent,
		PreviewPath:         defaultPreviewPath,
		LogLevel:            defaultLogLevel,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefreshCron
	}
	if c.ContentURL == "" {
		c.ContentURL = DefaultContentURL
	}
	if c.EventsURL == "" {
		c.EventsURL = DefaultEventsURL
	}
	if c.PlaceholderImage == "" {
		c.PlaceholderImage = DefaultPlaceholderImage
	}
	if c.MaxSliderEvents <= 0 {
		c.MaxSliderEvents = DefaultMaxSliderEvents
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = defaultFetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.PreviewPath == "" {
		c.PreviewPath = defaultPreviewPath
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// ApplyEnv overrides fields from VISIT_* environment variables. A .env
// file in the working directory is loaded first; variables already set in
// the process environment win over it.
func (c *Config) ApplyEnv() {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	str("VISIT_LISTEN", &c.Listen)
	str("VISIT_TIMEZONE", &c.Timezone)
	str("VISIT_REFRESH", &c.RefreshCron)
	str("VISIT_CONTENT_URL", &c.ContentURL)
	str("VISIT_EVENTS_URL", &c.EventsURL)
	str("VISIT_PLACEHOLDER_IMAGE", &c.PlaceholderImage)
	num("VISIT_MAX_SLIDER_EVENTS", &c.MaxSliderEvents)
	num("VISIT_FETCH_TIMEOUT_SECONDS", &c.FetchTimeoutSeconds)
	str("VISIT_PAGES_DIR", &c.PagesDir)
	str("VISIT_PREVIEW_PATH", &c.PreviewPath)
	str("VISIT_LOG_LEVEL", &c.LogLevel)

	c.Normalize()
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
//
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				cfg.ApplyEnv()
				return cfg, err
			}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.ApplyEnv()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".visitavigliano-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Location resolves Timezone. An empty or unknown zone falls back to
// time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", c.Timezone)
		return time.Local
	}
	return loc
}

// FetchTimeout is FetchTimeoutSeconds as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
