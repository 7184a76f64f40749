// Package reaper runs the stale-user sweep on a schedule, independent of any
// request.
package reaper

import (
	"context"
	"fmt"
	"time"

	"votebox/backend/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule runs the sweep hourly.
const DefaultSchedule = "@every 1h"

// sweepTimeout bounds a single sweep transaction.
const sweepTimeout = 5 * time.Minute

// Sweeper performs one sweep.
type Sweeper interface {
	ReapStale(ctx context.Context) (service.ReapResult, error)
}

// Reaper schedules sweeps with cron. Overlapping runs are skipped.
type Reaper struct {
	sweeper Sweeper
	cron    *cron.Cron
	log     *logrus.Entry

	// ctx is cancelled by Stop so an in-flight sweep aborts.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Reaper. Call Start to begin scheduling.
func New(sweeper Sweeper, logger *logrus.Logger) *Reaper {
	ctx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(logger)
	return &Reaper{
		sweeper: sweeper,
		cron:    cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		log:     logger.WithField("component", "reaper"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start registers the sweep under schedule (any robfig/cron spec, such as
// "@every 1h") and starts the scheduler.
func (r *Reaper) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return fmt.Errorf("schedule reaper %q: %w", schedule, err)
	}
	r.cron.Start()
	r.log.WithField("schedule", schedule).Info("Reaper started")
	return nil
}

// RunOnce performs a sweep immediately.
func (r *Reaper) RunOnce(ctx context.Context) (service.ReapResult, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()
	return r.sweeper.ReapStale(ctx)
}

// Stop cancels a running sweep and waits for it to return.
func (r *Reaper) Stop() {
	r.cancel()

	<-r.cron.Stop().Done()
	r.log.Info("Reaper stopped")
}

func (r *Reaper) run() {
	if _, err := r.RunOnce(r.ctx); err != nil {
		r.log.WithError(err).Error("Stale user sweep failed")
	}
}
