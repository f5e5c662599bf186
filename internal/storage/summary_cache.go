package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pacelane/api_wrapped/pkg/logging"
	"pacelane/api_wrapped/pkg/models"
)

// SummaryCache stores composed summaries in Redis so instances share the
// result of a build. A nil *SummaryCache is valid and always misses.
type SummaryCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewSummaryCache creates a summary cache with the given TTL
func NewSummaryCache(client *goredis.Client, ttl time.Duration, logger logging.Logger) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl, logger: logger}
}

func summaryKey(userID string, year int) string {
	return fmt.Sprintf("wrapped:%s:%d", userID, year)
}

// Get returns a cached summary, or miss on any error
func (c *SummaryCache) Get(ctx context.Context, userID string, year int) (*models.PostsWrappedData, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, summaryKey(userID, year)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.WithError(err).Warn("Summary cache read failed")
		}
		return nil, false
	}

	var summary models.PostsWrappedData
	if err := json.Unmarshal(payload, &summary); err != nil {
		c.logger.WithError(err).Warn("Summary cache entry is corrupt, dropping")
		c.Invalidate(ctx, userID, year)
		return nil, false
	}

	return &summary, true
}

// Set stores a summary; failures are logged, never propagated
func (c *SummaryCache) Set(ctx context.Context, userID string, year int, summary *models.PostsWrappedData) {
	if c == nil || c.client == nil || summary == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		c.logger.WithError(err).Error("Failed to marshal summary for cache")
		return
	}

	if err := c.client.Set(ctx, summaryKey(userID, year), payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Summary cache write failed")
	}
}

// Invalidate removes a cached summary
func (c *SummaryCache) Invalidate(ctx context.Context, userID string, year int) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, summaryKey(userID, year)).Err(); err != nil {
		c.logger.WithError(err).Warn("Summary cache invalidation failed")
	}
}
