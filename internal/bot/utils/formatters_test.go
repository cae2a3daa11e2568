package utils

import (
	"testing"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/postgres"

	"github.com/stretchr/testify/assert"
)

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name   string
		salary models.Salary
		want   string
	}{
		{
			name:   "range",
			salary: models.Salary{Min: models.Float64(20_000_000), Max: models.Float64(35_000_000)},
			want:   "20.000.000 - 35.000.000 VND",
		},
		{
			name:   "from",
			salary: models.Salary{Min: models.Float64(1500), Currency: "USD"},
			want:   "từ 1.500 USD",
		},
		{
			name:   "up to",
			salary: models.Salary{Max: models.Float64(900_000)},
			want:   "đến 900.000 VND",
		},
		{
			name: "negotiable",
			want: "Thỏa thuận",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSalary(tt.salary))
		})
	}
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Hà Nội, Miền Bắc", FormatLocation(models.Location{City: "Hà Nội", Region: "Miền Bắc"}))
	assert.Equal(t, "Hà Nội", FormatLocation(models.Location{City: "Hà Nội"}))
	assert.Equal(t, "Miền Nam", FormatLocation(models.Location{Region: "Miền Nam"}))
	assert.Empty(t, FormatLocation(models.Location{}))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `C\+\+ \(senior\)\.`, EscapeMarkdown("C++ (senior)."))
	assert.Equal(t, `a\\b`, EscapeMarkdown(`a\b`))
	assert.Equal(t, "Kế toán", EscapeMarkdown("Kế toán"))
}

func TestFormatJob(t *testing.T) {
	job := &models.Job{
		Title:       "Node.js Developer",
		CompanyName: "FPT Software",
		Location:    models.Location{City: "Đà Nẵng"},
		Salary:      models.Salary{Min: models.Float64(25_000_000)},
		JobType:     models.JobTypeFullTime,
		Deadline:    time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
	}

	msg := FormatJob(job)

	assert.Contains(t, msg, `*Node\.js Developer*`)
	assert.Contains(t, msg, "FPT Software")
	assert.Contains(t, msg, `từ 25\.000\.000 VND`)
	assert.Contains(t, msg, "Đà Nẵng")
	assert.Contains(t, msg, `full\-time`)
	assert.Contains(t, msg, `30\.11\.2026`)
	assert.NotContains(t, msg, "Kinh nghiệm")
}

func TestFormatJobPage_NumbersAcrossPages(t *testing.T) {
	page := &search.Page{
		Items: []models.Job{
			{Title: "Kế toán"},
			{Title: "Kiểm toán"},
		},
		TotalCount:  12,
		TotalPages:  2,
		CurrentPage: 2,
		Limit:       10,
	}

	msg := FormatJobPage(page)

	assert.Contains(t, msg, "12 việc làm")
	assert.Contains(t, msg, "Trang 2/2")
	assert.Contains(t, msg, `*11\. Kế toán*`)
	assert.Contains(t, msg, `*12\. Kiểm toán*`)
}

func TestFormatFiltersMessage(t *testing.T) {
	assert.Equal(t, FormatNoFiltersMessage(), FormatFiltersMessage(nil))

	msg := FormatFiltersMessage([]models.UserFilter{
		{FilterType: models.FilterTypeKeyword, FilterValue: "it"},
		{FilterType: models.FilterTypeMinSalary, FilterValue: "20000000"},
	})

	assert.Contains(t, msg, "*Từ khóa:* it")
	assert.Contains(t, msg, `*Lương từ:* 20\.000\.000 VND`)
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "mỗi 30 phút", FormatInterval(30))
	assert.Equal(t, "mỗi 2 giờ", FormatInterval(120))
	assert.Equal(t, "mỗi 90 phút", FormatInterval(90))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "Lập t...", TruncateString("Lập trình viên", 8))
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data, action, payload string
	}{
		{"\fpage|3", "page", "3"},
		{"\fnotify_toggle|", "notify_toggle", ""},
		{"\fnoop", "noop", ""},
		{"filter_delete|city", "filter_delete", "city"},
	}

	for _, tt := range tests {
		action, payload := ParseCallback(tt.data)
		assert.Equal(t, tt.action, action, tt.data)
		assert.Equal(t, tt.payload, payload, tt.data)
	}
}

func TestPaginationKeyboard(t *testing.T) {
	assert.Empty(t, PaginationKeyboard(1, 1).InlineKeyboard)

	first := PaginationKeyboard(1, 3).InlineKeyboard
	if assert.Len(t, first, 1) {
		assert.Len(t, first[0], 2)
		assert.Equal(t, "1/3", first[0][0].Text)
	}

	middle := PaginationKeyboard(2, 3).InlineKeyboard
	if assert.Len(t, middle, 1) {
		assert.Len(t, middle[0], 3)
		assert.Equal(t, "1", middle[0][0].Data)
		assert.Equal(t, "3", middle[0][2].Data)
	}
}

func TestFormatSettingsMessage(t *testing.T) {
	user := &models.User{ID: 1, CheckEnabled: true, NotifyInterval: 120}

	msg := FormatSettingsMessage(user, nil)
	assert.Contains(t, msg, "✅ Đang bật")
	assert.Contains(t, msg, "mỗi 2 giờ")
	assert.NotContains(t, msg, "Bộ lọc")

	msg = FormatSettingsMessage(user, &postgres.UserStats{FilterCount: 3, SeenCount: 17})
	assert.Contains(t, msg, "*Bộ lọc:* 3")
	assert.Contains(t, msg, "*Tin đã gửi:* 17")
}

func TestFormatHelpMessage_ListsOptions(t *testing.T) {
	msg := FormatHelpMessage()

	assert.Contains(t, msg, "full\\-time, part\\-time")
	assert.Contains(t, msg, "Từ 1\\-2 năm")
}
