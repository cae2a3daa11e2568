package redis

import (
	"context"
	"errors"
	"time"

	"jobsearch/internal/search"
)

// PageCache stores rendered search pages under their filter hash.
type PageCache struct {
	cache *Cache
	ttl   time.Duration
}

func NewPageCache(cache *Cache, ttl time.Duration) *PageCache {
	return &PageCache{cache: cache, ttl: ttl}
}

// GetPage returns nil, nil on a miss.
func (p *PageCache) GetPage(ctx context.Context, key string) (*search.Page, error) {
	var page search.Page
	err := p.cache.Get(ctx, SearchPageKey(key), &page)
	if errors.Is(err, ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (p *PageCache) SetPage(ctx context.Context, key string, page *search.Page) error {
	return p.cache.Set(ctx, SearchPageKey(key), page, p.ttl)
}
