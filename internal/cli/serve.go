package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/site"
	"visitavigliano/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the feeds, keep them fresh on a schedule and serve the site",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagListen, "listen", "", "HTTP listen address (overrides config if set)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := newPipeline(cfg)

	// A failed first load is not fatal: the pages show the events error
	// placeholder until a scheduled load succeeds.
	if err := p.loader.Load(ctx); err != nil {
		appLog.Error("initial load incomplete", err)
	}

	sched, err := site.NewScheduler(ctx, cfg.RefreshCron, p.dates.Location(), p.loader)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()
	appLog.Info("refresh scheduled", "spec", cfg.RefreshCron, "next", sched.Next().Format(time.RFC3339))

	srv, err := web.NewServer(cfg, p.state)
	if err != nil {
		return err
	}
	httpSrv := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		appLog.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown failed", err)
		return err
	}
	appLog.Info("visitavigliano exiting")
	return nil
}
