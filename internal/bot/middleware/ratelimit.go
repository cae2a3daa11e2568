package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	MaxRequestsPerMinute = 30
	rateLimitTimeout     = 2 * time.Second
)

// Counter counts requests per client in fixed windows.
type Counter interface {
	IncrementRateLimit(ctx context.Context, scope, client string) (int64, error)
}

// RateLimit drops updates from users above MaxRequestsPerMinute. Counter
// failures let the update through.
func RateLimit(counter Counter, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), rateLimitTimeout)
			defer cancel()

			count, err := counter.IncrementRateLimit(ctx, "bot", strconv.FormatInt(user.ID, 10))
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return next(c)
			}

			if count > MaxRequestsPerMinute {
				logger.Warn("rate limit exceeded",
					zap.Int64("user_id", user.ID),
					zap.Int64("count", count),
				)

				if count == MaxRequestsPerMinute+1 {
					return c.Reply(fmt.Sprintf(
						"⚠️ Bạn gửi quá nhiều yêu cầu. Tối đa %d yêu cầu mỗi phút.",
						MaxRequestsPerMinute,
					))
				}
				return nil
			}

			return next(c)
		}
	}
}
