package handlers

import (
	"strings"

	"jobsearch/internal/bot/utils"
	"jobsearch/internal/search"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleText processes menu buttons and free text. Free text outside a
// conversation is treated as a search query.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		userID := c.Sender().ID

		switch text {
		case utils.BtnSearch:
			return promptSearch(ctx, c)
		case utils.BtnSubscribe:
			return promptSubscribe(ctx, c)
		case utils.BtnFilters:
			return HandleFilters(ctx)(c)
		case utils.BtnNotify:
			return showSettings(ctx, c)
		case utils.BtnHelp:
			return HandleHelp(ctx)(c)
		case utils.BtnCancel:
			if err := clearUserState(ctx, userID); err != nil {
				ctx.Logger.Warn("failed to clear state", zap.Error(err))
			}
			return c.Send("Đã hủy", utils.MainMenuKeyboard())
		}

		state, err := getUserState(ctx, userID)
		if err != nil {
			ctx.Logger.Warn("failed to get user state", zap.Error(err))
			state = StateIdle
		}

		switch state {
		case StateAwaitingSubscribe:
			return saveSubscription(ctx, c, text)
		case StateAwaitingSearch:
			if err := clearUserState(ctx, userID); err != nil {
				ctx.Logger.Warn("failed to clear state", zap.Error(err))
			}
		}

		if text == "" {
			return c.Reply("Hãy dùng các nút trong menu hoặc lệnh /help")
		}

		return runSearch(ctx, c, search.ParamsFromText(text))
	}
}
