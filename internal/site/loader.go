package site

import (
	"context"
	"errors"
	"time"

	"visitavigliano/internal/csvfeed"
	"visitavigliano/internal/dates"
	"visitavigliano/internal/feed"
	appLog "visitavigliano/internal/log"
)

// Fetcher downloads one feed as text.
type Fetcher interface {
	Fetch(ctx context.Context, src feed.Source) (string, error)
}

// LoaderConfig wires a Loader.
type LoaderConfig struct {
	Content          feed.Source
	Events           feed.Source
	PlaceholderImage string
	Dates            *dates.Formatter

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Loader runs load cycles: the content feed first, then the events feed,
// writing results into State.
type Loader struct {
	fetcher Fetcher
	state   *State
	cfg     LoaderConfig
}

// NewLoader returns a Loader writing into state.
func NewLoader(fetcher Fetcher, state *State, cfg LoaderConfig) *Loader {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Dates == nil {
		cfg.Dates = dates.NewFormatter(nil)
	}
	return &Loader{fetcher: fetcher, state: state, cfg: cfg}
}

// Load fetches both feeds one after the other. A content failure does not
// stop the events load; the returned error joins both failures.
func (l *Loader) Load(ctx context.Context) error {
	start := time.Now()
	contentErr := l.LoadContent(ctx)
	eventsErr := l.LoadEvents(ctx)
	appLog.Info("load cycle finished",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"content_ok", contentErr == nil,
		"events_ok", eventsErr == nil,
	)
	return errors.Join(contentErr, eventsErr)
}

// LoadContent refreshes the content map. On failure the previous map is
// kept and nothing is shown to visitors; static fallback markup stays.
func (l *Loader) LoadContent(ctx context.Context) error {
	text, err := l.fetcher.Fetch(ctx, l.cfg.Content)
	if err != nil {
		appLog.Error("content load failed", err, "id", l.cfg.Content.ID)
		l.state.SetContentError(err)
		return err
	}

	entries := ContentRows(csvfeed.Parse(text))
	l.state.SetContent(entries, l.cfg.Now())
	appLog.Info("content loaded", "rows", len(entries))
	return nil
}

// LoadEvents refreshes the upcoming event list. On failure the error is
// recorded so pages can show the events error placeholder.
func (l *Loader) LoadEvents(ctx context.Context) error {
	text, err := l.fetcher.Fetch(ctx, l.cfg.Events)
	if err != nil {
		appLog.Error("events load failed", err, "id", l.cfg.Events.ID)
		l.state.SetEventsError(err)
		return err
	}

	rows := csvfeed.Parse(text)
	now := l.cfg.Now()
	events := BuildEvents(rows, l.cfg.Dates, l.cfg.PlaceholderImage, now)
	l.state.SetEvents(events, now)
	appLog.Info("events loaded", "rows", len(rows), "upcoming", len(events))
	return nil
}
