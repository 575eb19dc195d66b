package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/catalog"
)

// Refresher refreshes catalog prices.
type Refresher interface {
	Refresh(ctx context.Context) (*catalog.Catalog, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	refresher Refresher
	timeout   time.Duration
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that runs price refreshes on the standard
// 5-field cron spec, evaluated in loc.
func NewScheduler(spec string, loc *time.Location, refresher Refresher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		spec:      spec,
		refresher: refresher,
		timeout:   2 * time.Minute,
		logger:    logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("price_refresh", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.refreshPrices); err != nil {
		return fmt.Errorf("schedule price refresh %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunNow performs one refresh outside the schedule.
func (s *Scheduler) RunNow() {
	s.refreshPrices()
}

func (s *Scheduler) refreshPrices() {
	s.logger.Info("refreshing market prices")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	snap, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.Error("failed to refresh market prices", zap.Error(err))
		return
	}

	s.logger.Info("market prices refreshed", zap.String("snapshot_date", snap.PriceSnapshotDate()))
}
