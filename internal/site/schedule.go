package site

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "visitavigliano/internal/log"
)

// Scheduler reloads the feeds on a cron schedule. Runs never overlap: a
// tick that arrives while a load is still in flight is skipped.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers loader on spec (standard 5-field cron syntax)
// evaluated in loc. ctx bounds every load it triggers.
func NewScheduler(ctx context.Context, spec string, loc *time.Location, loader *Loader) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() {
		if err := loader.Load(ctx); err != nil {
			appLog.Error("scheduled refresh incomplete", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled loads in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running load to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next reports the next scheduled run, zero if not started.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// cronLogger routes cron's own logging through the app logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	appLog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	appLog.Error("cron: "+msg, err, keysAndValues...)
}
