package search

import (
	"net/url"
	"strings"

	"jobsearch/internal/models"
)

// Params are the raw request parameters of one search, before validation.
type Params struct {
	Keyword    string
	Industry   string
	City       string
	Region     string
	JobType    string
	Experience string
	MinSalary  string
	MaxSalary  string
	Sort       string
	Page       string
	Limit      string
}

// ParamsFromQuery decodes query-string parameters.
func ParamsFromQuery(q url.Values) Params {
	return Params{
		Keyword:    q.Get("keyword"),
		Industry:   q.Get("industry"),
		City:       q.Get("city"),
		Region:     q.Get("region"),
		JobType:    q.Get("jobType"),
		Experience: q.Get("experience"),
		MinSalary:  q.Get("minSalary"),
		MaxSalary:  q.Get("maxSalary"),
		Sort:       q.Get("sort"),
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
	}
}

// ParamsFromText decodes the chat syntax "keyword; city=Hà Nội; minSalary=20000000".
// Segments without "=" are joined into the keyword. Unknown names are ignored.
func ParamsFromText(text string) Params {
	q := url.Values{}
	var keyword []string

	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			keyword = append(keyword, segment)
			continue
		}
		q.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if len(keyword) > 0 && q.Get("keyword") == "" {
		q.Set("keyword", strings.Join(keyword, " "))
	}

	return ParamsFromQuery(q)
}

// ParamsFromFilters rebuilds params from saved filters keyed by filter type.
func ParamsFromFilters(filters map[string]string) Params {
	q := url.Values{}
	for name, value := range filters {
		q.Set(name, value)
	}
	return ParamsFromQuery(q)
}

// SavedFilters returns the non-empty filter dimensions keyed by filter type.
// Sort and pagination are not part of a saved search.
func (p Params) SavedFilters() map[string]string {
	all := map[string]string{
		models.FilterTypeKeyword:    p.Keyword,
		models.FilterTypeIndustry:   p.Industry,
		models.FilterTypeCity:       p.City,
		models.FilterTypeRegion:     p.Region,
		models.FilterTypeJobType:    p.JobType,
		models.FilterTypeExperience: p.Experience,
		models.FilterTypeMinSalary:  p.MinSalary,
		models.FilterTypeMaxSalary:  p.MaxSalary,
	}

	out := make(map[string]string)
	for name, value := range all {
		if v := strings.TrimSpace(value); v != "" {
			out[name] = v
		}
	}
	return out
}

// Query encodes params back to query-string form.
func (p Params) Query() url.Values {
	q := url.Values{}
	set := func(name, value string) {
		if value != "" {
			q.Set(name, value)
		}
	}
	set("keyword", p.Keyword)
	set("industry", p.Industry)
	set("city", p.City)
	set("region", p.Region)
	set("jobType", p.JobType)
	set("experience", p.Experience)
	set("minSalary", p.MinSalary)
	set("maxSalary", p.MaxSalary)
	set("sort", p.Sort)
	set("page", p.Page)
	set("limit", p.Limit)
	return q
}
