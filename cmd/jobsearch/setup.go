package main

import (
	"fmt"

	"jobsearch/internal/config"
	"jobsearch/internal/logger"
	"jobsearch/internal/search"
	"jobsearch/internal/search/city"
	"jobsearch/internal/search/synonym"
	"jobsearch/internal/storage/memory"
	"jobsearch/internal/storage/postgres"
	"jobsearch/internal/storage/redis"

	"go.uber.org/zap"
)

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, log, nil
}

func loadTables(cfg *config.Config) (*synonym.Table, *city.Gazetteer, error) {
	synonyms := synonym.MustNewTable(synonym.DefaultGroups)
	if cfg.SynonymsFile != "" {
		groups, err := synonym.LoadGroups(cfg.SynonymsFile)
		if err != nil {
			return nil, nil, err
		}
		if synonyms, err = synonym.NewTable(groups); err != nil {
			return nil, nil, fmt.Errorf("synonyms file %s: %w", cfg.SynonymsFile, err)
		}
	}

	gazetteer := city.Default()
	if cfg.CitiesFile != "" {
		var err error
		if gazetteer, err = city.LoadGazetteer(cfg.CitiesFile); err != nil {
			return nil, nil, err
		}
	}

	return synonyms, gazetteer, nil
}

// openStore returns the configured job store and a closer for it.
func openStore(cfg *config.Config, log *zap.Logger) (search.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		if cfg.MemorySeedFile == "" {
			log.Warn("memory store has no seed file, starting empty")
			return memory.New(log), func() {}, nil
		}
		store, err := memory.Load(cfg.MemorySeedFile, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		store, err := postgres.New(cfg.PostgresDSN, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

func newService(cfg *config.Config, store search.Store, cache *redis.Cache, log *zap.Logger) (*search.Service, error) {
	synonyms, gazetteer, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}

	opts := []search.Option{
		search.WithTimeout(cfg.SearchTimeout),
		search.WithLogger(log.Named("search")),
	}
	if cache != nil && cfg.SearchCacheTTL > 0 {
		opts = append(opts, search.WithPageCache(redis.NewPageCache(cache, cfg.SearchCacheTTL)))
	}

	return search.NewService(store, synonyms, gazetteer, opts...)
}
