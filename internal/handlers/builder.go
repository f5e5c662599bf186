package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pacelane/api_wrapped/internal/metrics"
	"pacelane/api_wrapped/internal/storage"
	"pacelane/api_wrapped/internal/wrapped"
	"pacelane/api_wrapped/pkg/logging"
	"pacelane/api_wrapped/pkg/models"
)

// ErrNoData signals that a user has no usable snapshot for the requested
// year. Callers map it to a "no data" response, not a failure.
var ErrNoData = errors.New("no wrapped data available")

// SummaryBuilder loads a user's snapshot and runs the aggregation
// pipeline over it. It is shared by the HTTP handlers and the warm
// scheduler.
type SummaryBuilder struct {
	store          *storage.SnapshotStore
	summaryCache   *storage.SummaryCache
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
	defaultLocale  string
	location       *time.Location
}

// NewSummaryBuilder creates a summary builder
func NewSummaryBuilder(store *storage.SnapshotStore, summaryCache *storage.SummaryCache, logger logging.Logger, serviceMetrics *metrics.Metrics, defaultLocale string, location *time.Location) *SummaryBuilder {
	if location == nil {
		location = time.UTC
	}
	if defaultLocale == "" {
		defaultLocale = wrapped.DefaultLocale
	}
	return &SummaryBuilder{
		store:          store,
		summaryCache:   summaryCache,
		logger:         logger,
		serviceMetrics: serviceMetrics,
		defaultLocale:  defaultLocale,
		location:       location,
	}
}

// BuildForUser fetches the latest snapshot for a user, composes the
// summary for the given year, and stores it in the shared cache.
func (b *SummaryBuilder) BuildForUser(ctx context.Context, userID string, year int) (*models.PostsWrappedData, error) {
	start := time.Now()
	defer func() {
		if b.serviceMetrics != nil {
			b.serviceMetrics.BuildDuration.WithLabelValues("store").Observe(time.Since(start).Seconds())
		}
	}()

	snapshot, err := b.store.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.countSnapshotRead("not_found")
			return nil, ErrNoData
		}
		b.countSnapshotRead("error")
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}
	b.countSnapshotRead("success")

	locale := snapshot.Locale
	if locale == "" {
		locale = b.defaultLocale
	}

	opts := wrapped.BuildOptions{
		Year:     year,
		Location: b.location,
		Locale:   locale,
		Logger:   b.logger,
	}
	if len(snapshot.Reactions) > 0 {
		opts.Reactions = json.RawMessage(snapshot.Reactions)
	}

	summary, ok := wrapped.Build(snapshot.Payload, opts)
	if !ok {
		b.countBuild("store", "unusable")
		return nil, ErrNoData
	}
	b.countBuild("store", "success")

	b.summaryCache.Set(ctx, userID, year, summary)

	return summary, nil
}

func (b *SummaryBuilder) countBuild(source, status string) {
	if b.serviceMetrics != nil {
		b.serviceMetrics.WrappedBuilds.WithLabelValues(source, status).Inc()
	}
}

func (b *SummaryBuilder) countSnapshotRead(status string) {
	if b.serviceMetrics != nil {
		b.serviceMetrics.SnapshotReads.WithLabelValues(status).Inc()
	}
}
