package handlers

import (
	"jobsearch/internal/bot/utils"
	"jobsearch/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const defaultNotifyInterval = 60

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", sender.ID),
			zap.String("username", sender.Username),
		)

		dbCtx, cancel := ctx.timeout()
		defer cancel()

		if _, err := ctx.Store.RegisterUser(dbCtx, profileOf(sender)); err != nil {
			ctx.Logger.Error("failed to register user", zap.Int64("user_id", sender.ID), zap.Error(err))
			return c.Send("😔 Không thể đăng ký. Vui lòng thử lại sau.")
		}

		return c.Send(
			utils.FormatWelcomeMessage(sender.FirstName),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// profileOf builds a new user from the Telegram sender. Notifications
// start off until the user subscribes.
func profileOf(sender *tele.User) *models.User {
	return &models.User{
		ID:             sender.ID,
		Username:       stringPtr(sender.Username),
		FirstName:      stringPtr(sender.FirstName),
		LastName:       stringPtr(sender.LastName),
		NotifyInterval: defaultNotifyInterval,
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// /help
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(
			utils.FormatHelpMessage(),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
