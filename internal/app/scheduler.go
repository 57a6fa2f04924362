package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"exprune/internal/prune"
)

// Scheduler runs a prune job on a cron schedule until stopped. Jobs are
// serialized: the default cron runner never starts a job while the
// previous one is still in flight on the same entry.
type Scheduler struct {
	cron   *cron.Cron
	logger prune.Logger
}

// NewScheduler creates a Scheduler that invokes job per the cron spec
// (standard 5-field syntax: minute hour day month weekday).
func NewScheduler(spec string, job func() error, logger prune.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logger.Info("scheduled prune starting")
		if err := job(); err != nil {
			logger.Error("scheduled prune failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits
// for any in-flight job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
