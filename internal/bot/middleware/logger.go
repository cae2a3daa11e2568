package middleware

import (
	"time"

	"jobsearch/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const maxLoggedText = 200

// Logger logs every update with its sender, kind and handling time.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var userID int64
			var username string
			if user := c.Sender(); user != nil {
				userID = user.ID
				username = user.Username
			}

			kind, text := describe(c)

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("username", username),
				zap.String("type", kind),
				zap.String("text", utils.TruncateString(text, maxLoggedText)),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				logger.Error("handler error", append(fields, zap.Error(err))...)
			} else {
				logger.Info("update handled", fields...)
			}

			return err
		}
	}
}

func describe(c tele.Context) (kind, text string) {
	if cb := c.Callback(); cb != nil {
		return "callback", cb.Data
	}
	if msg := c.Message(); msg != nil {
		return "message", msg.Text
	}
	return "other", ""
}
