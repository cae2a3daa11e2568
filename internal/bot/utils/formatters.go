package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search"
	"jobsearch/internal/storage/postgres"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultCurrency = "VND"
	maxListTitle    = 80
)

var amountPrinter = message.NewPrinter(language.Vietnamese)

// FormatJob renders one job card in MarkdownV2.
func FormatJob(job *models.Job) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(job.Title)))

	if job.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("🏢 *Công ty:* %s\n", EscapeMarkdown(job.CompanyName)))
	}

	sb.WriteString(fmt.Sprintf("💰 *Lương:* %s\n", EscapeMarkdown(FormatSalary(job.Salary))))

	if place := FormatLocation(job.Location); place != "" {
		sb.WriteString(fmt.Sprintf("📍 *Địa điểm:* %s\n", EscapeMarkdown(place)))
	}

	if job.Industry != "" {
		sb.WriteString(fmt.Sprintf("🏷 *Ngành:* %s\n", EscapeMarkdown(job.Industry)))
	}

	if job.Experience != "" {
		sb.WriteString(fmt.Sprintf("💼 *Kinh nghiệm:* %s\n", EscapeMarkdown(job.Experience)))
	}

	if job.JobType != "" {
		sb.WriteString(fmt.Sprintf("⏰ *Hình thức:* %s\n", EscapeMarkdown(job.JobType)))
	}

	sb.WriteString(fmt.Sprintf("📅 *Hạn nộp:* %s\n", EscapeMarkdown(job.Deadline.Format("02.01.2006"))))

	return sb.String()
}

func FormatSalary(salary models.Salary) string {
	currency := salary.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	switch {
	case salary.Min != nil && salary.Max != nil:
		return fmt.Sprintf("%s - %s %s", FormatAmount(*salary.Min), FormatAmount(*salary.Max), currency)
	case salary.Min != nil:
		return fmt.Sprintf("từ %s %s", FormatAmount(*salary.Min), currency)
	case salary.Max != nil:
		return fmt.Sprintf("đến %s %s", FormatAmount(*salary.Max), currency)
	}

	return "Thỏa thuận"
}

// FormatAmount groups digits the Vietnamese way: 20.000.000.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%d", int64(math.Round(v)))
}

func FormatLocation(loc models.Location) string {
	switch {
	case loc.City != "" && loc.Region != "":
		return loc.City + ", " + loc.Region
	case loc.City != "":
		return loc.City
	default:
		return loc.Region
	}
}

// FormatJobPage renders a result page as a numbered list.
func FormatJobPage(page *search.Page) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 *Tìm thấy:* %d việc làm\n", page.TotalCount))
	sb.WriteString(EscapeMarkdown(fmt.Sprintf("Trang %d/%d", page.CurrentPage, page.TotalPages)))
	sb.WriteString("\n\n")

	offset := (page.CurrentPage - 1) * page.Limit
	for i, job := range page.Items {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", offset+i+1, EscapeMarkdown(TruncateString(job.Title, maxListTitle))))

		if job.CompanyName != "" {
			sb.WriteString(fmt.Sprintf("   🏢 %s\n", EscapeMarkdown(job.CompanyName)))
		}

		sb.WriteString(fmt.Sprintf("   💰 %s\n", EscapeMarkdown(FormatSalary(job.Salary))))

		if place := FormatLocation(job.Location); place != "" {
			sb.WriteString(fmt.Sprintf("   📍 %s\n", EscapeMarkdown(place)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func FormatFiltersMessage(filters []models.UserFilter) string {
	if len(filters) == 0 {
		return FormatNoFiltersMessage()
	}

	var sb strings.Builder
	sb.WriteString("*📋 Bộ lọc đã lưu:*\n\n")

	for _, filter := range filters {
		sb.WriteString(fmt.Sprintf("• *%s:* %s\n",
			EscapeMarkdown(models.GetFilterDisplayName(filter.FilterType)),
			EscapeMarkdown(formatFilterValue(filter.FilterType, filter.FilterValue)),
		))
	}

	return sb.String()
}

func formatFilterValue(filterType, value string) string {
	switch filterType {
	case models.FilterTypeMinSalary, models.FilterTypeMaxSalary:
		if amount := search.ParseAmount(value); amount != nil {
			return FormatAmount(*amount) + " " + defaultCurrency
		}
	}
	return value
}

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "bạn"
	}

	return fmt.Sprintf(`👋 Xin chào, *%s*\!

Mình là bot tìm việc làm\.

*Mình có thể:*
• Tìm việc theo từ khóa, thành phố, mức lương
• Lưu bộ lọc và báo khi có việc mới
• Hiểu từ đồng nghĩa: "IT" cũng tìm "CNTT"

*Lệnh:*
/search \- tìm việc
/subscribe \- lưu bộ lọc theo dõi
/filters \- xem bộ lọc
/notify \- bật/tắt thông báo
/help \- trợ giúp`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Trợ giúp*

*Tìm việc:*
/search lập trình viên; city\=Hà Nội; minSalary\=20000000

Phần không có dấu "\=" là từ khóa\. Các tham số khác:
industry, city, region, jobType, experience, minSalary, maxSalary, sort, limit

*jobType:* ` + EscapeMarkdown(strings.Join(models.JobTypeOptions(), ", ")) + `
*experience:* ` + EscapeMarkdown(strings.Join(models.ExperienceOptions(), ", ")) + `

*Theo dõi:*
/subscribe \<truy vấn\> \- lưu bộ lọc
/filters \- xem bộ lọc
/clear \- xóa bộ lọc
/notify on \| off \| \<phút\> \- bật, tắt hoặc đổi chu kỳ thông báo`
}

func FormatNoFiltersMessage() string {
	return `⚠️ *Bạn chưa có bộ lọc nào*

Lưu bộ lọc bằng lệnh /subscribe\.`
}

func FormatNoJobsMessage() string {
	return `😔 *Không tìm thấy việc làm phù hợp*

Hãy thử từ khóa khác hoặc bỏ bớt điều kiện\.`
}

// FormatSettingsMessage renders notification settings; stats may be nil.
func FormatSettingsMessage(user *models.User, stats *postgres.UserStats) string {
	var sb strings.Builder

	sb.WriteString("*⚙️ Thông báo*\n\n")

	status := "❌ Đang tắt"
	if user.CheckEnabled {
		status = "✅ Đang bật"
	}
	sb.WriteString(fmt.Sprintf("*Trạng thái:* %s\n", status))
	sb.WriteString(fmt.Sprintf("*Chu kỳ:* %s\n", EscapeMarkdown(FormatInterval(user.NotifyInterval))))

	if user.LastCheck != nil {
		sb.WriteString(fmt.Sprintf("*Lần kiểm tra cuối:* %s\n",
			EscapeMarkdown(user.LastCheck.Format("15:04 02/01/2006"))))
	}

	if stats != nil {
		sb.WriteString(fmt.Sprintf("*Bộ lọc:* %d\n", stats.FilterCount))
		sb.WriteString(fmt.Sprintf("*Tin đã gửi:* %d\n", stats.SeenCount))
	}

	return sb.String()
}

func FormatInterval(minutes int) string {
	d := time.Duration(minutes) * time.Minute
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("mỗi %d giờ", int(d.Hours()))
	}
	return fmt.Sprintf("mỗi %d phút", minutes)
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// _ * [ ] ( ) ~ ` > # + - = | { } . !
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// TruncateString shortens s to at most maxLen runes.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
