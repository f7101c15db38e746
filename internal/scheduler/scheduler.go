package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/config"
)

// Sweeper drops state that has been idle since cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.SessionConfig
	sweepers map[string]Sweeper
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SessionConfig, sweepers map[string]Sweeper, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		sweepers: sweepers,
		logger:   logger,
		now:      time.Now,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("sweep_schedule", s.cfg.SweepSchedule))

	if _, err := s.cron.AddFunc(s.cfg.SweepSchedule, s.sweepIdle); err != nil {
		s.logger.Error("failed to schedule idle sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepIdle() {
	cutoff := s.now().Add(-s.cfg.TTL)
	for name, sweeper := range s.sweepers {
		if removed := sweeper.Sweep(cutoff); removed > 0 {
			s.logger.Info("idle entries swept", zap.String("target", name), zap.Int("removed", removed))
		}
	}
}
