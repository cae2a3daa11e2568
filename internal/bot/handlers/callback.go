package handlers

import (
	"jobsearch/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleCallback routes inline button presses by action.
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		action, payload := utils.ParseCallback(cb.Data)

		ctx.Logger.Debug("received callback",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("action", action),
			zap.String("payload", payload),
		)

		switch action {
		case utils.ActionPage:
			return handlePage(ctx, c, payload)
		case utils.ActionNoop:
			return c.Respond()
		case utils.ActionFilterDelete:
			return handleFilterDelete(ctx, c, payload)
		case utils.ActionFiltersClear:
			return handleFiltersClear(ctx, c)
		case utils.ActionNotifyToggle:
			return handleNotifyToggle(ctx, c)
		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", cb.Data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Thao tác không xác định"})
		}
	}
}
