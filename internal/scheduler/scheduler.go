package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"pacelane/api_wrapped/internal/handlers"
	"pacelane/api_wrapped/internal/storage"
	"pacelane/api_wrapped/pkg/logging"
)

const (
	warmLookback  = 24 * time.Hour
	warmBatchSize = 200
	warmTimeout   = 2 * time.Minute
)

// Scheduler periodically rebuilds summaries for users whose snapshots
// changed recently, so the shared cache stays warm ahead of traffic.
type Scheduler struct {
	store    *storage.SnapshotStore
	builder  *handlers.SummaryBuilder
	logger   logging.Logger
	location *time.Location
	cron     *cron.Cron
}

// New creates a warm scheduler
func New(store *storage.SnapshotStore, builder *handlers.SummaryBuilder, logger logging.Logger, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		store:    store,
		builder:  builder,
		logger:   logger,
		location: location,
	}
}

// Start begins the warm loop on the given cron spec, e.g. "@every 15m"
func (s *Scheduler) Start(spec string) error {
	s.cron = cron.New(cron.WithLocation(s.location))
	if _, err := s.cron.AddFunc(spec, s.warm); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("schedule", spec).Info("Warm scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running warm pass to finish
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("Warm scheduler stopped")
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	year := time.Now().In(s.location).Year()
	since := time.Now().Add(-warmLookback)

	users, err := s.store.RecentlyUpdated(ctx, since, warmBatchSize)
	if err != nil {
		s.logger.WithError(err).Error("Warm pass failed to list recently updated users")
		return
	}
	if len(users) == 0 {
		return
	}

	warmed := 0
	for _, userID := range users {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.builder.BuildForUser(ctx, userID, year); err != nil {
			if !errors.Is(err, handlers.ErrNoData) {
				s.logger.WithError(err).WithField("user_id", userID).Warn("Warm build failed")
			}
			continue
		}
		warmed++
	}

	s.logger.WithFields(logging.Fields{
		"candidates": len(users),
		"warmed":     warmed,
		"year":       year,
	}).Info("Warm pass completed")
}
