package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jobsearch/internal/api/httpapi"
	"jobsearch/internal/bot"
	"jobsearch/internal/bot/scheduler"
	"jobsearch/internal/storage/memory"
	"jobsearch/internal/storage/postgres"
	"jobsearch/internal/storage/redis"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func serveCommand(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	var cache *redis.Cache
	if cfg.SearchCacheTTL > 0 || cfg.RateLimitPerMinute > 0 {
		cache, err = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("redis unavailable, page cache and rate limit disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	service, err := newService(cfg, store, cache, log)
	if err != nil {
		return fmt.Errorf("create search service: %w", err)
	}

	opts := httpapi.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ReadTimeout:        cfg.HTTPReadTimeout,
		WriteTimeout:       cfg.HTTPWriteTimeout,
		Checks:             map[string]httpapi.HealthCheck{},
	}
	if pg, ok := store.(*postgres.Store); ok {
		opts.Checks["postgres"] = pg.Ping
	}
	if cache != nil {
		opts.Limiter = cache
		opts.Checks["redis"] = cache.Ping
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting job search API",
		zap.String("store", cfg.StoreDriver),
		zap.String("addr", cfg.HTTPAddr),
	)

	return httpapi.New(service, opts, log).ListenAndServe(ctx, cfg.HTTPAddr)
}

func botCommand(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("invalid bot config: %w", err)
	}

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer store.Close()

	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		return fmt.Errorf("connect to Redis: %w", err)
	}
	defer cache.Close()

	service, err := newService(cfg, store, cache, log)
	if err != nil {
		return fmt.Errorf("create search service: %w", err)
	}

	telegramBot, err := bot.New(cfg, store, cache, service, log)
	if err != nil {
		return err
	}

	checker, err := scheduler.New(store, service, telegramBot.Telebot(), scheduler.Options{
		Interval: cfg.CheckInterval,
		MaxJobs:  cfg.MaxJobsPerCheck,
		Workers:  cfg.NotifyWorkers,

		SeenRetentionDays: cfg.SeenRetentionDays,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting job search bot",
		zap.Duration("check_interval", cfg.CheckInterval),
		zap.Int("workers", cfg.NotifyWorkers),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- checker.Start(ctx)
	}()

	if err := telegramBot.Start(ctx); err != nil {
		return err
	}

	return <-errCh
}

func migrateCommand(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	return postgres.Migrate(cfg.PostgresDSN, log)
}

func searchCommand(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	service, err := newService(cfg, store, nil, log)
	if err != nil {
		return fmt.Errorf("create search service: %w", err)
	}

	params := searchParams(strings.Join(c.Args().Slice(), " "), c.String("page"), c.String("limit"), c.String("sort"))

	page, err := service.Search(c.Context, params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

func importCommand(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	jobs, err := memory.ReadJobs(c.String("file"))
	if err != nil {
		return err
	}

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return store.UpsertJobs(ctx, jobs)
}
