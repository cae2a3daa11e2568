package handlers

import (
	"errors"
	"strconv"
	"strings"

	"jobsearch/internal/bot/utils"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const lastQueryKey = "last_query"

// /search <query>. Without a query the saved filters are used.
func HandleSearch(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		query := strings.TrimSpace(c.Message().Payload)

		if query != "" {
			return runSearch(ctx, c, search.ParamsFromText(query))
		}

		dbCtx, cancel := ctx.timeout()
		defer cancel()

		filters, err := ctx.Store.GetFiltersMap(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to get user filters", zap.Int64("user_id", userID), zap.Error(err))
			return c.Reply("😔 Không thể tải bộ lọc")
		}

		if len(filters) > 0 {
			return runSearch(ctx, c, search.ParamsFromFilters(filters))
		}

		return promptSearch(ctx, c)
	}
}

func promptSearch(ctx *Context, c tele.Context) error {
	if err := setUserState(ctx, c.Sender().ID, StateAwaitingSearch); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		"🔍 Nhập từ khóa (ví dụ: kế toán; city=Hà Nội; minSalary=15000000):",
		utils.CancelKeyboard(),
	)
}

// runSearch shows the first page for params and remembers them so the
// pagination buttons can re-run the query.
func runSearch(ctx *Context, c tele.Context, params search.Params) error {
	userID := c.Sender().ID
	params.Page = ""

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	page, err := ctx.Search.Search(dbCtx, params)
	if err != nil {
		ctx.Logger.Error("search failed",
			zap.Int64("user_id", userID),
			zap.String("keyword", params.Keyword),
			zap.Error(err),
		)
		return c.Send("😔 Lỗi khi tìm kiếm. Vui lòng thử lại sau.", utils.MainMenuKeyboard())
	}

	if err := ctx.Cache.SetTempData(dbCtx, userID, lastQueryKey, params, redis.LastQueryTTL); err != nil {
		ctx.Logger.Warn("failed to remember last query", zap.Int64("user_id", userID), zap.Error(err))
	}

	if page.TotalCount == 0 {
		return c.Send(utils.FormatNoJobsMessage(), utils.MainMenuKeyboard(), tele.ModeMarkdownV2)
	}

	return c.Send(
		utils.FormatJobPage(page),
		utils.PaginationKeyboard(page.CurrentPage, page.TotalPages),
		tele.ModeMarkdownV2,
	)
}

func handlePage(ctx *Context, c tele.Context, payload string) error {
	userID := c.Sender().ID

	pageNum, err := strconv.Atoi(payload)
	if err != nil || pageNum < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Trang không hợp lệ"})
	}

	dbCtx, cancel := ctx.timeout()
	defer cancel()

	var params search.Params
	if err := ctx.Cache.GetTempData(dbCtx, userID, lastQueryKey, &params); err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			ctx.Logger.Error("failed to load last query", zap.Int64("user_id", userID), zap.Error(err))
		}
		return c.Respond(&tele.CallbackResponse{Text: "⌛ Kết quả đã hết hạn, hãy tìm lại"})
	}

	params.Page = strconv.Itoa(pageNum)

	page, err := ctx.Search.Search(dbCtx, params)
	if err != nil {
		ctx.Logger.Error("page search failed",
			zap.Int64("user_id", userID),
			zap.Int("page", pageNum),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Lỗi khi tải trang"})
	}

	if err := c.Edit(
		utils.FormatJobPage(page),
		utils.PaginationKeyboard(page.CurrentPage, page.TotalPages),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit page message", zap.Error(err))
	}

	return c.Respond()
}
