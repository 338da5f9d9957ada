package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	"TrendScan/pkg/logger"
)

// CycleRunner runs a single scan cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*models.CycleRecord, error)
}

// Scheduler runs cycles forever with a fixed pause between them.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	logger   *logger.Logger
	metrics  domrepo.Metrics
}

func NewScheduler(runner CycleRunner, interval time.Duration, l *logger.Logger, m domrepo.Metrics) *Scheduler {
	return &Scheduler{runner: runner, interval: interval, logger: l, metrics: m}
}

// Run blocks until ctx is cancelled. A failed or panicking cycle is logged
// and the loop carries on after the usual interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", logger.Duration("interval_ms", s.interval))
	for {
		s.runOnce(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-time.After(s.interval):
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	outcome := "error"
	defer func() {
		if r := recover(); r != nil {
			outcome = "panic"
			s.logger.Error("scan cycle panicked",
				logger.Error(fmt.Errorf("%v", r)),
				logger.String("stack", string(debug.Stack())),
			)
		}
		s.metrics.RecordCycle(outcome, time.Since(start).Seconds())
	}()

	s.logger.Info("scan cycle started")
	rec, err := s.runner.RunCycle(ctx)
	if err != nil {
		s.logger.Error("scan cycle failed", logger.Error(err), logger.Duration("duration_ms", time.Since(start)))
		return
	}

	outcome = "ok"
	s.logger.Info("scan cycle finished",
		logger.String("cycle_id", rec.ID),
		logger.Int("bull", len(rec.Bull)),
		logger.Int("bear", len(rec.Bear)),
		logger.Duration("duration_ms", time.Since(start)),
	)
}
