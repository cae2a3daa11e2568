package utils

import (
	"strconv"
	"strings"

	"jobsearch/internal/models"

	tele "gopkg.in/telebot.v3"
)

// Reply keyboard labels.
const (
	BtnSearch    = "🔍 Tìm việc"
	BtnSubscribe = "🔔 Theo dõi"
	BtnFilters   = "📋 Bộ lọc"
	BtnNotify    = "⚙️ Thông báo"
	BtnHelp      = "❓ Trợ giúp"
	BtnCancel    = "❌ Hủy"
)

// Callback actions.
const (
	ActionPage         = "page"
	ActionNoop         = "noop"
	ActionFilterDelete = "filter_delete"
	ActionFiltersClear = "filters_clear"
	ActionNotifyToggle = "notify_toggle"
)

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnSearch), menu.Text(BtnSubscribe)),
		menu.Row(menu.Text(BtnFilters), menu.Text(BtnNotify)),
		menu.Row(menu.Text(BtnHelp)),
	)

	return menu
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(BtnCancel)))
	return menu
}

// PaginationKeyboard renders prev/current/next buttons for 1-based pages.
func PaginationKeyboard(page, totalPages int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	if totalPages <= 1 {
		return menu
	}

	var buttons []tele.Btn

	if page > 1 {
		buttons = append(buttons, menu.Data("⬅️ Trước", ActionPage, strconv.Itoa(page-1)))
	}

	buttons = append(buttons, menu.Data(strconv.Itoa(page)+"/"+strconv.Itoa(totalPages), ActionNoop))

	if page < totalPages {
		buttons = append(buttons, menu.Data("Sau ➡️", ActionPage, strconv.Itoa(page+1)))
	}

	menu.Inline(menu.Row(buttons...))
	return menu
}

func FiltersKeyboard(filters []models.UserFilter) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	if len(filters) == 0 {
		return menu
	}

	var rows []tele.Row
	for _, f := range filters {
		label := "🗑 " + models.GetFilterDisplayName(f.FilterType)
		rows = append(rows, menu.Row(menu.Data(label, ActionFilterDelete, f.FilterType)))
	}
	rows = append(rows, menu.Row(menu.Data("🗑 Xóa tất cả", ActionFiltersClear)))

	menu.Inline(rows...)
	return menu
}

func NotifyKeyboard(enabled bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	label := "🔔 Bật thông báo"
	if enabled {
		label = "🔕 Tắt thông báo"
	}

	menu.Inline(menu.Row(menu.Data(label, ActionNotifyToggle)))
	return menu
}

func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ParseCallback splits telebot callback data ("\funique|payload") into
// action and payload.
func ParseCallback(data string) (action, payload string) {
	data = strings.TrimPrefix(data, "\f")
	action, payload, _ = strings.Cut(data, "|")
	return action, payload
}
