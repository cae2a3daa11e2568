package handlers

import (
	"context"
	"time"

	"jobsearch/internal/config"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/postgres"
	"jobsearch/internal/storage/redis"

	"go.uber.org/zap"
)

const handlerTimeout = 10 * time.Second

// Context contains deps for all handlers
type Context struct {
	Store  *postgres.Store
	Cache  *redis.Cache
	Search *search.Service
	Config *config.Config
	Logger *zap.Logger
}

func (ctx *Context) timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}
