package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	// Storage
	StoreDriver    string `validate:"oneof=postgres memory"`
	PostgresDSN    string `validate:"required_if=StoreDriver postgres"`
	MemorySeedFile string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int `validate:"gte=0,lte=15"`

	// HTTP API
	HTTPAddr           string `validate:"required"`
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	RateLimitPerMinute int `validate:"gte=0"`

	// Search
	SearchTimeout  time.Duration
	SearchCacheTTL time.Duration
	SynonymsFile   string
	CitiesFile     string

	// Telegram bot
	TelegramToken   string
	CheckInterval   time.Duration
	MaxJobsPerCheck int `validate:"min=1,max=100"`
	NotifyWorkers   int `validate:"min=1,max=64"`

	// SeenRetentionDays of 0 keeps delivery history forever.
	SeenRetentionDays int `validate:"gte=0"`

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`
}

// Load reads the environment, after merging an optional .env file from
// the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		StoreDriver:        DriverPostgres,
		RedisAddr:          "localhost:6379",
		HTTPAddr:           ":8080",
		HTTPReadTimeout:    15 * time.Second,
		HTTPWriteTimeout:   15 * time.Second,
		RateLimitPerMinute: 120,
		SearchTimeout:      10 * time.Second,
		CheckInterval:      5 * time.Minute,
		MaxJobsPerCheck:    10,
		NotifyWorkers:      4,
		SeenRetentionDays:  30,
		LogLevel:           "info",
	}

	cfg.StoreDriver = envString("STORE_DRIVER", cfg.StoreDriver)
	cfg.PostgresDSN = envString("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.MemorySeedFile = envString("MEMORY_SEED_FILE", cfg.MemorySeedFile)
	cfg.RedisAddr = envString("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envString("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.HTTPAddr = envString("HTTP_ADDR", cfg.HTTPAddr)
	cfg.SynonymsFile = envString("SYNONYMS_FILE", cfg.SynonymsFile)
	cfg.CitiesFile = envString("CITIES_FILE", cfg.CitiesFile)
	cfg.TelegramToken = envString("TELEGRAM_TOKEN", cfg.TelegramToken)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	ints := []struct {
		key string
		dst *int
	}{
		{"REDIS_DB", &cfg.RedisDB},
		{"RATE_LIMIT_PER_MINUTE", &cfg.RateLimitPerMinute},
		{"MAX_JOBS_PER_CHECK", &cfg.MaxJobsPerCheck},
		{"NOTIFY_WORKERS", &cfg.NotifyWorkers},
		{"SEEN_RETENTION_DAYS", &cfg.SeenRetentionDays},
	}
	for _, v := range ints {
		if raw := os.Getenv(v.key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_READ_TIMEOUT", &cfg.HTTPReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &cfg.HTTPWriteTimeout},
		{"SEARCH_TIMEOUT", &cfg.SearchTimeout},
		{"SEARCH_CACHE_TTL", &cfg.SearchCacheTTL},
		{"CHECK_INTERVAL", &cfg.CheckInterval},
	}
	for _, v := range durations {
		if raw := os.Getenv(v.key); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", v.key, err)
			}
			*v.dst = d
		}
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if c.SearchTimeout <= 0 {
		return fmt.Errorf("search timeout must be positive: %v", c.SearchTimeout)
	}

	if c.SearchCacheTTL < 0 {
		return fmt.Errorf("search cache ttl is negative: %v", c.SearchCacheTTL)
	}

	if c.HTTPReadTimeout <= 0 || c.HTTPWriteTimeout <= 0 {
		return fmt.Errorf("http timeouts must be positive")
	}

	return nil
}

// ValidateBot checks the settings only the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	if c.StoreDriver != DriverPostgres {
		return fmt.Errorf("bot requires the postgres store, got %q", c.StoreDriver)
	}

	if c.CheckInterval < time.Minute {
		return fmt.Errorf("check interval too small: %v", c.CheckInterval)
	}

	return nil
}
