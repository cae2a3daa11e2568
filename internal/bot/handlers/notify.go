package handlers

import (
	"errors"
	"strconv"
	"strings"

	"jobsearch/internal/bot/utils"
	"jobsearch/internal/storage/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const minNotifyInterval = 5

// /notify on|off|<minutes>
func HandleNotify(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		arg := strings.ToLower(strings.TrimSpace(c.Message().Payload))
		userID := c.Sender().ID

		dbCtx, cancel := ctx.timeout()
		defer cancel()

		settings, ok := parseNotifyArg(arg)
		if !ok {
			return c.Reply("❌ Dùng: /notify on, /notify off hoặc /notify <số phút ≥ 5>")
		}

		err := ctx.Store.UpdateNotifySettings(dbCtx, userID, settings)
		if errors.Is(err, postgres.ErrUserNotFound) {
			return c.Reply("Hãy gõ /start trước")
		}
		if err != nil {
			ctx.Logger.Error("failed to update notify settings",
				zap.Int64("user_id", userID),
				zap.String("arg", arg),
				zap.Error(err),
			)
			return c.Reply("😔 Không thể lưu cài đặt")
		}

		return showSettings(ctx, c)
	}
}

// parseNotifyArg maps "on", "off" or a number of minutes to a settings
// update. An empty argument is a no-op update.
func parseNotifyArg(arg string) (postgres.NotifySettings, bool) {
	var settings postgres.NotifySettings
	switch arg {
	case "":
	case "on", "off":
		enabled := arg == "on"
		settings.Enabled = &enabled
	default:
		minutes, err := strconv.Atoi(arg)
		if err != nil || minutes < minNotifyInterval {
			return settings, false
		}
		settings.IntervalMinutes = &minutes
	}
	return settings, true
}

func showSettings(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	user, err := ctx.Store.GetUser(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return c.Reply("😔 Có lỗi xảy ra")
	}
	if user == nil {
		return c.Reply("Hãy gõ /start trước")
	}

	stats, err := ctx.Store.GetUserStats(dbCtx, userID)
	if err != nil {
		ctx.Logger.Warn("failed to get user stats", zap.Int64("user_id", userID), zap.Error(err))
	}

	return c.Send(
		utils.FormatSettingsMessage(user, stats),
		utils.NotifyKeyboard(user.CheckEnabled),
		tele.ModeMarkdownV2,
	)
}

func handleNotifyToggle(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	user, err := ctx.Store.GetUser(dbCtx, userID)
	if err != nil || user == nil {
		ctx.Logger.Error("failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Có lỗi xảy ra"})
	}

	user.CheckEnabled = !user.CheckEnabled
	settings := postgres.NotifySettings{Enabled: &user.CheckEnabled}
	if err := ctx.Store.UpdateNotifySettings(dbCtx, userID, settings); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Không thể lưu cài đặt"})
	}

	if err := c.Edit(
		utils.FormatSettingsMessage(user, nil),
		utils.NotifyKeyboard(user.CheckEnabled),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}

	text := "🔕 Đã tắt thông báo"
	if user.CheckEnabled {
		text = "🔔 Đã bật thông báo"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}
