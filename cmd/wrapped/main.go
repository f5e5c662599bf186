package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pacelane/api_wrapped/internal/handlers"
	"pacelane/api_wrapped/internal/metrics"
	"pacelane/api_wrapped/internal/scheduler"
	"pacelane/api_wrapped/internal/storage"
	"pacelane/api_wrapped/pkg/config"
	"pacelane/api_wrapped/pkg/database"
	"pacelane/api_wrapped/pkg/logging"
	"pacelane/api_wrapped/pkg/monitoring"
	"pacelane/api_wrapped/pkg/redis"
	"pacelane/api_wrapped/pkg/server"
	"pacelane/api_wrapped/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService("api-wrapped")
	config.LoadEnv(logger)

	databaseURL := config.RequireEnv("DATABASE_URL")
	redisURL := config.GetEnv("REDIS_URL", "")
	defaultLocale := config.GetEnv("WRAPPED_LOCALE", "pt-BR")
	tzName := config.GetEnv("WRAPPED_TZ", "UTC")
	cacheTTL := time.Duration(config.GetEnvInt("WRAPPED_CACHE_TTL_MIN", 60)) * time.Minute
	warmSchedule := config.GetEnv("WRAPPED_WARM_SCHEDULE", "@every 15m")

	location, err := time.LoadLocation(tzName)
	if err != nil {
		logger.WithError(err).WithField("tz", tzName).Fatal("Invalid WRAPPED_TZ")
	}

	dbCfg := database.DefaultConfig()
	dbCfg.URL = databaseURL
	db := database.MustConnect(dbCfg, logger)
	defer db.Close()

	redisClient, err := connectRedis(redisURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Health checks
	healthChecker := monitoring.NewHealthChecker("api-wrapped", version.Version)
	healthChecker.AddCheck("postgres", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("configuration", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": databaseURL,
	}))
	if redisClient != nil {
		healthChecker.AddCheck("redis", monitoring.RedisHealthCheck(redisClient))
	}

	// Metrics
	metricsCollector := monitoring.NewMetricsCollector("api_wrapped", version.Version, version.GitCommit)
	serviceMetrics := &metrics.Metrics{
		WrappedBuilds: metricsCollector.NewCounter("wrapped_builds_total",
			"Wrapped summaries built", []string{"source", "status"}),
		BuildDuration: metricsCollector.NewHistogram("wrapped_build_duration_seconds",
			"Time spent building wrapped summaries", []string{"source"}, nil),
		SnapshotReads: metricsCollector.NewCounter("snapshot_reads_total",
			"Snapshot store reads", []string{"status"}),
		CacheLookups: metricsCollector.NewCounter("cache_lookups_total",
			"Summary cache lookups", []string{"layer", "result"}),
	}

	store := storage.NewSnapshotStore(db, logger)
	summaryCache := storage.NewSummaryCache(redisClient, cacheTTL, logger)
	builder := handlers.NewSummaryBuilder(store, summaryCache, logger, serviceMetrics, defaultLocale, location)

	handlers.Init(builder, summaryCache, logger, serviceMetrics, defaultLocale, location)

	warmScheduler := scheduler.New(store, builder, logger, location)
	if warmSchedule != "off" {
		if err := warmScheduler.Start(warmSchedule); err != nil {
			logger.WithError(err).WithField("schedule", warmSchedule).Fatal("Invalid WRAPPED_WARM_SCHEDULE")
		}
		defer warmScheduler.Stop()
	}

	router := server.SetupServiceRouter(logger, "api-wrapped", healthChecker, metricsCollector)

	api := router.Group("/api")
	{
		api.GET("/wrapped/:userID", handlers.GetWrapped)
		api.POST("/wrapped/preview", handlers.PreviewWrapped)
	}

	cfg := server.DefaultConfig("api-wrapped", "18040")
	if err := server.Start(cfg, router, logger); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}

func connectRedis(redisURL string, logger logging.Logger) (*goredis.Client, error) {
	if redisURL == "" {
		logger.Info("REDIS_URL not set, summary cache disabled")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return redis.NewClientFromURL(ctx, redisURL)
}
