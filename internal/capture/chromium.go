// Package capture renders a site page in headless Chromium and saves a
// PNG preview of it.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	appLog "visitavigliano/internal/log"
)

// Default capture parameters: a desktop viewport, full page height.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 800
	DefaultTimeoutSec = 30
	DefaultQuality    = 90

	// readySelector matches the body once server-side binding is done.
	readySelector = `body[data-ready="true"]`
)

// Options defines parameters for a page capture.
type Options struct {
	// URL to capture, e.g. "http://127.0.0.1:8080/".
	URL string

	// OutputPath is where the PNG is written, e.g. "./var/preview.png".
	OutputPath string

	// Width and Height are the viewport dimensions in pixels. The
	// screenshot itself covers the full page height.
	Width  int
	Height int

	// Timeout bounds the whole capture.
	Timeout time.Duration

	// ExecPath overrides the Chromium binary; empty uses chromedp's lookup.
	ExecPath string
}

func (o Options) normalize() (Options, error) {
	if o.URL == "" {
		return o, errors.New("capture: URL is required")
	}
	if o.OutputPath == "" {
		return o, errors.New("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return o, nil
}

// PagePNG navigates to opts.URL, waits for the page to report it is
// bound (data-ready="true" on body) and writes a full-page PNG to
// opts.OutputPath. The file is replaced atomically.
func PagePNG(parentCtx context.Context, opts Options) error {
	opts, err := opts.normalize()
	if err != nil {
		return err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(opts.Width, opts.Height),
		chromedp.Flag("hide-scrollbars", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(parentCtx, allocOpts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	start := time.Now()
	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(readySelector, chromedp.ByQuery),
		// Let images and web fonts paint.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.FullScreenshot(&png, DefaultQuality),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := writeFileAtomic(opts.OutputPath, png); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	appLog.Info("page captured",
		"url", opts.URL,
		"path", opts.OutputPath,
		"bytes", len(png),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".preview-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
