package handlers

import (
	"errors"
	"fmt"
	"strings"

	"jobsearch/internal/bot/utils"
	"jobsearch/internal/models"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /subscribe <query> saves the query as the user's filters.
func HandleSubscribe(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		query := strings.TrimSpace(c.Message().Payload)
		if query == "" {
			return promptSubscribe(ctx, c)
		}
		return saveSubscription(ctx, c, query)
	}
}

func promptSubscribe(ctx *Context, c tele.Context) error {
	if err := setUserState(ctx, c.Sender().ID, StateAwaitingSubscribe); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		"🔔 Nhập truy vấn cần theo dõi (ví dụ: it; city=Hồ Chí Minh; jobType=remote):",
		utils.CancelKeyboard(),
	)
}

func saveSubscription(ctx *Context, c tele.Context, query string) error {
	sender := c.Sender()

	filters := search.ParamsFromText(query).SavedFilters()
	if len(filters) == 0 {
		return c.Reply("❌ Cần ít nhất một điều kiện, ví dụ: kế toán; city=Hà Nội")
	}

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	user, err := ctx.Store.RegisterUser(dbCtx, profileOf(sender))
	if err != nil {
		ctx.Logger.Error("failed to load user", zap.Int64("user_id", sender.ID), zap.Error(err))
		return c.Send("😔 Có lỗi xảy ra. Vui lòng thử lại sau.")
	}

	if err := ctx.Store.ReplaceFilters(dbCtx, user.ID, filters); err != nil {
		ctx.Logger.Error("failed to save subscription", zap.Int64("user_id", user.ID), zap.Error(err))
		return c.Send("😔 Không thể lưu bộ lọc")
	}

	if !user.CheckEnabled {
		enabled := true
		if err := ctx.Store.UpdateNotifySettings(dbCtx, user.ID, postgres.NotifySettings{Enabled: &enabled}); err != nil {
			ctx.Logger.Warn("failed to enable notifications", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	if err := clearUserState(ctx, user.ID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	saved, err := ctx.Store.GetUserFilters(dbCtx, user.ID)
	if err != nil {
		ctx.Logger.Warn("failed to reload filters", zap.Error(err))
	}

	return c.Send(
		"✅ Đã lưu bộ lọc, bạn sẽ nhận thông báo khi có việc mới\\.\n\n"+utils.FormatFiltersMessage(saved),
		utils.MainMenuKeyboard(),
		tele.ModeMarkdownV2,
	)
}

// /filters
func HandleFilters(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := ctx.timeout()
		defer cancel()

		filters, err := ctx.Store.GetUserFilters(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to get user filters", zap.Int64("user_id", userID), zap.Error(err))
			return c.Reply("😔 Không thể tải bộ lọc")
		}

		return c.Send(
			utils.FormatFiltersMessage(filters),
			utils.FiltersKeyboard(filters),
			tele.ModeMarkdownV2,
		)
	}
}

// /clear
func HandleClear(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		if err := clearFilters(ctx, c.Sender().ID); err != nil {
			return c.Reply("😔 Không thể xóa bộ lọc")
		}
		return c.Send("🗑 Đã xóa toàn bộ bộ lọc", utils.MainMenuKeyboard())
	}
}

func clearFilters(ctx *Context, userID int64) error {
	dbCtx, cancel := ctx.timeout()
	defer cancel()

	if err := ctx.Store.ClearUserFilters(dbCtx, userID); err != nil {
		ctx.Logger.Error("failed to clear filters", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func handleFilterDelete(ctx *Context, c tele.Context, filterType string) error {
	userID := c.Sender().ID

	if !models.IsValidFilterType(filterType) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bộ lọc không hợp lệ"})
	}

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	if err := ctx.Store.DeleteFilter(dbCtx, userID, filterType); err != nil && !errors.Is(err, postgres.ErrFilterNotFound) {
		ctx.Logger.Error("failed to delete filter", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Lỗi khi xóa"})
	}

	filters, err := ctx.Store.GetUserFilters(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to reload filters", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Lỗi khi tải bộ lọc"})
	}

	if err := c.Edit(
		utils.FormatFiltersMessage(filters),
		utils.FiltersKeyboard(filters),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{
		Text: fmt.Sprintf("✅ Đã xóa: %s", models.GetFilterDisplayName(filterType)),
	})
}

func handleFiltersClear(ctx *Context, c tele.Context) error {
	if err := clearFilters(ctx, c.Sender().ID); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Lỗi khi xóa"})
	}

	if err := c.Edit(utils.FormatNoFiltersMessage(), tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "🗑 Đã xóa tất cả"})
}
