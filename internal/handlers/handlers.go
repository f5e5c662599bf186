package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pacelane/api_wrapped/internal/metrics"
	"pacelane/api_wrapped/internal/storage"
	"pacelane/api_wrapped/internal/wrapped"
	wrappedapi "pacelane/api_wrapped/pkg/api/wrapped"
	"pacelane/api_wrapped/pkg/cache"
	"pacelane/api_wrapped/pkg/logging"
	"pacelane/api_wrapped/pkg/middleware"
	"pacelane/api_wrapped/pkg/models"
)

const (
	memCacheTTL     = 5 * time.Minute
	memCacheStale   = 5 * time.Minute
	memCacheEntries = 4096

	minYear = 2000
	maxYear = 2100
)

var (
	builder        *SummaryBuilder
	summaryCache   *storage.SummaryCache
	memCache       *cache.Cache
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
	defaultLocale  string
	location       *time.Location
)

// Init sets up the handlers with their dependencies
func Init(b *SummaryBuilder, sc *storage.SummaryCache, log logging.Logger, m *metrics.Metrics, locale string, loc *time.Location) {
	builder = b
	summaryCache = sc
	logger = log
	serviceMetrics = m
	defaultLocale = locale
	location = loc
	if location == nil {
		location = time.UTC
	}
	if defaultLocale == "" {
		defaultLocale = wrapped.DefaultLocale
	}
	memCache = cache.New(cache.Options{
		TTL:                  memCacheTTL,
		StaleWhileRevalidate: memCacheStale,
		NegativeTTL:          30 * time.Second,
		MaxEntries:           memCacheEntries,
	})
}

// GetWrapped returns the year-in-review summary for a user.
// GET /api/wrapped/:userID?year=2025&refresh=true
func GetWrapped(c *gin.Context) {
	log := middleware.GetContextLogger(c, logger)
	userID := c.Param("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Missing user ID"})
		return
	}

	year, ok := parseYear(c)
	if !ok {
		return
	}
	refresh := c.Query("refresh") == "true"
	ctx := c.Request.Context()

	if !refresh {
		if summary, hit := summaryCache.Get(ctx, userID, year); hit {
			countCacheLookup("redis", "hit")
			c.JSON(http.StatusOK, summary)
			return
		}
		countCacheLookup("redis", "miss")
	}

	key := fmt.Sprintf("%s:%d", userID, year)

	var summary *models.PostsWrappedData
	var err error
	if refresh {
		summary, err = builder.BuildForUser(ctx, userID, year)
		if err == nil {
			memCache.Set(key, summary, memCacheTTL)
		}
	} else {
		loader := func(ctx context.Context, _ string) (interface{}, bool, error) {
			built, buildErr := builder.BuildForUser(ctx, userID, year)
			if buildErr != nil {
				return nil, false, buildErr
			}
			return built, true, nil
		}
		if _, hit := memCache.Peek(key); hit {
			countCacheLookup("memory", "hit")
		} else {
			countCacheLookup("memory", "miss")
		}
		var value interface{}
		var found bool
		value, found, err = memCache.Get(ctx, key, loader)
		if err == nil && found {
			summary = value.(*models.PostsWrappedData)
		}
	}

	if err != nil {
		respondBuildError(c, log, userID, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, wrappedapi.ErrorResponse{Error: "No wrapped data available"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PreviewWrapped composes a summary from a payload supplied in the
// request body, without touching storage.
// POST /api/wrapped/preview
func PreviewWrapped(c *gin.Context) {
	var req wrappedapi.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Missing data payload"})
		return
	}

	year := req.Year
	if year == 0 {
		year = time.Now().In(location).Year()
	}
	if year < minYear || year > maxYear {
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Invalid year"})
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = defaultLocale
	}

	opts := wrapped.BuildOptions{
		Year:     year,
		Location: location,
		Locale:   locale,
		Logger:   logger,
	}
	if len(req.Reactions) > 0 {
		opts.Reactions = req.Reactions
	}

	summary, ok := wrapped.Build(req.Data, opts)
	if !ok {
		countBuild("preview", "unusable")
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Posts payload is unusable"})
		return
	}
	countBuild("preview", "success")

	c.JSON(http.StatusOK, summary)
}

func parseYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().In(location).Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < minYear || year > maxYear {
		c.JSON(http.StatusBadRequest, wrappedapi.ErrorResponse{Error: "Invalid year"})
		return 0, false
	}
	return year, true
}

func respondBuildError(c *gin.Context, log *logrus.Entry, userID string, err error) {
	if errors.Is(err, ErrNoData) {
		c.JSON(http.StatusNotFound, wrappedapi.ErrorResponse{Error: "No wrapped data available"})
		return
	}
	log.WithError(err).WithField("user_id", userID).Error("Failed to build wrapped summary")
	c.JSON(http.StatusInternalServerError, wrappedapi.ErrorResponse{Error: "Failed to build wrapped summary"})
}

func countCacheLookup(layer, result string) {
	if serviceMetrics != nil {
		serviceMetrics.CacheLookups.WithLabelValues(layer, result).Inc()
	}
}

func countBuild(source, status string) {
	if serviceMetrics != nil {
		serviceMetrics.WrappedBuilds.WithLabelValues(source, status).Inc()
	}
}
