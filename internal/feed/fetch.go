package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appLog "visitavigliano/internal/log"
)

// Source represents a single published CSV feed.
type Source struct {
	// ID is an internal identifier used for logging ("content", "events").
	ID string
	// URL is the CSV export endpoint.
	URL string
}

// ErrEmptyURL is returned when a Source has no URL configured.
var ErrEmptyURL = errors.New("feed: source URL is empty")

// StatusError reports a non-2xx response from a feed endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed: unexpected status %s", e.Status)
}

// Fetcher downloads feeds over plain unauthenticated GETs. Each call hits
// the network; nothing is cached and nothing is retried.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
// A non-positive timeout falls back to 20 seconds.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch returns the body of src as text.
func (f *Fetcher) Fetch(ctx context.Context, src Source) (string, error) {
	if src.URL == "" {
		return "", ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("feed %s: build request: %w", src.ID, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	appLog.Debug("feed fetch start", "id", src.ID, "url", redactURL(src.URL))
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("feed %s: %w", src.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("feed %s: %w", src.ID, &StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("feed %s: read body: %w", src.ID, err)
	}

	appLog.Info("feed fetch success",
		"id", src.ID,
		"url", redactURL(src.URL),
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return string(body), nil
}

// redactURL keeps only scheme and host of a feed URL for logging; the
// published-sheet path is long and carries the document key.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := -1
	for idx := 0; idx+2 < len(u); idx++ {
		if u[idx:idx+3] == "://" {
			i = idx + 3
			break
		}
	}
	if i == -1 {
		return "feed://...(redacted)"
	}

	j := i
	for j < len(u) && u[j] != '/' {
		j++
	}
	return u[:j] + redactedSuffix
}
