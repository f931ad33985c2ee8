// Package scheduler fires a job on a fixed interval, dropping ticks that
// arrive while a previous run is still in flight.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Gobusters/ectologger"
)

// Job is the work executed on each tick.
type Job func(ctx context.Context) error

// Scheduler runs a single job on an interval.
type Scheduler struct {
	logger   ectologger.Logger
	interval time.Duration
	job      Job
	inFlight atomic.Bool
	done     chan struct{}
}

func New(logger ectologger.Logger, interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		logger:   logger,
		interval: interval,
		job:      job,
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Wait blocks until the tick loop has exited.
func (s *Scheduler) Wait() {
	<-s.done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.WithContext(ctx).WithField("interval", s.interval.String()).Info("Scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick launches the job unless one is already in flight.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.WithContext(ctx).Warn("Previous run still in flight; skipping tick")
		return
	}

	go func() {
		defer s.inFlight.Store(false)
		if err := s.job(ctx); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("Scheduled run failed")
		}
	}()
}
