// ABOUTME: Entry point wiring the sync engine, scheduler and admin API
// ABOUTME: Supports a -once flag for a single pass instead of the scheduling loops

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"feed-sync/config"
	"feed-sync/driver"
	"feed-sync/favicon"
	"feed-sync/handler"
	"feed-sync/repository"
	"feed-sync/service"
	"feed-sync/service/scheduler"
)

func main() {
	once := flag.Bool("once", false, "Run a single sync pass and exit")
	flag.Parse()

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Feed sync starting",
		"service", cfg.ServiceName,
		"sync_interval", cfg.Sync.SyncInterval,
		"max_articles_to_refresh", cfg.Sync.MaxArticlesToRefresh,
		"update_feed_icons", cfg.Sync.UpdateFeedIcons)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *once); err != nil {
		logger.Error("Feed sync failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Feed sync stopped")
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, once bool) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return err
	}

	store := repository.NewPostgresSyncStore(pool, logger)
	gateway := driver.NewTTRSSClient(cfg.TTRSS.APIURL, cfg.TTRSS.User, cfg.TTRSS.Password, logger)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	var cacher *service.HTTPCacher
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cacher = service.NewHTTPCacher(httpClient, service.NewRedisImageCache(redisClient), cfg.Redis.ImageTTL, logger)
		logger.Info("Image caching enabled", "redis_addr", cfg.Redis.Addr)
	}

	var iconService *service.FeedIconService
	if cfg.Sync.UpdateFeedIcons {
		snooper := favicon.NewSnooper(httpClient)
		iconService = service.NewFeedIconService(store, snooper, httpClient, cacher, cfg.Sync.FeedIconWorkers, logger)
	}

	runner := scheduler.NewTaskGraphRunner(int64(cfg.Sync.TaskWorkers), logger)
	synchronizer := service.NewArticleSynchronizer(gateway, store, service.NewArticleAugmenter(), iconService, cacher, runner, logger)
	purger := service.NewPurgeService(store, cfg.Sync.PurgeRetention, logger)

	if once {
		return runOnce(ctx, cfg, synchronizer, logger)
	}

	scheduleConfig := handler.ScheduleConfig{
		SyncInterval:         cfg.Sync.SyncInterval,
		PurgeInterval:        cfg.Sync.PurgeInterval,
		MaxArticlesToRefresh: cfg.Sync.MaxArticlesToRefresh,
		EnablePurge:          cfg.Sync.EnablePurge,
	}
	schedule := handler.NewScheduleHandler(synchronizer, purger, scheduleConfig, logger)
	if err := schedule.Start(ctx); err != nil {
		return err
	}
	defer schedule.Stop()

	adminAPI := handler.NewAdminAPIHandler(schedule, logger)
	server := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminAPI.Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Admin API listening", "addr", cfg.AdminAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runOnce(ctx context.Context, cfg *config.Config, synchronizer *service.ArticleSynchronizer, logger *slog.Logger) error {
	params := service.DefaultSyncParams()
	params.MaxArticlesToRefresh = cfg.Sync.MaxArticlesToRefresh
	params.UpdateFeedIcons = cfg.Sync.UpdateFeedIcons

	result, err := synchronizer.Sync(ctx, params)
	if err != nil {
		return err
	}
	for _, stage := range result.Stages {
		logger.Info("Stage finished", "pass_id", result.PassID, "stage", stage.Name, "state", stage.State)
	}
	if !result.Succeeded() {
		return errors.New("sync pass finished with failed stages")
	}
	return nil
}
