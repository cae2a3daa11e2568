package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RateLimitWindow = 1 * time.Minute
	LastQueryTTL    = 24 * time.Hour
	UserStateTTL    = 30 * time.Minute
)

func SearchPageKey(hash string) string {
	return "search:page:" + hash
}

// RateLimitKey buckets requests of one client into fixed windows.
func RateLimitKey(scope, client string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, client, now.Unix()/int64(RateLimitWindow/time.Second))
}

func UserStateKey(userID int64) string {
	return fmt.Sprintf("state:user:%d", userID)
}

func tempDataKey(userID int64, key string) string {
	return fmt.Sprintf("temp:user:%d:%s", userID, key)
}

// IncrementRateLimit counts one request for client in the current window
// and returns the running total.
func (c *Cache) IncrementRateLimit(ctx context.Context, scope, client string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(scope, client, time.Now()), RateLimitWindow)
}

func (c *Cache) SetUserState(ctx context.Context, userID int64, state string) error {
	return c.SetString(ctx, UserStateKey(userID), state, UserStateTTL)
}

// GetUserState returns "" when the user has no pending state.
func (c *Cache) GetUserState(ctx context.Context, userID int64) (string, error) {
	state, err := c.GetString(ctx, UserStateKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return "", nil
	}
	return state, err
}

func (c *Cache) DeleteUserState(ctx context.Context, userID int64) error {
	return c.Delete(ctx, UserStateKey(userID))
}

func (c *Cache) SetTempData(ctx context.Context, userID int64, key string, value interface{}, ttl time.Duration) error {
	return c.Set(ctx, tempDataKey(userID, key), value, ttl)
}

func (c *Cache) GetTempData(ctx context.Context, userID int64, key string, dest interface{}) error {
	return c.Get(ctx, tempDataKey(userID, key), dest)
}

