package search

import (
	"math"
	"strconv"
	"strings"

	"jobsearch/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is one page of search results with its metadata.
type Page struct {
	Items       []models.Job `json:"items"`
	TotalCount  int          `json:"totalCount"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Limit       int          `json:"limit"`
}

// ParsePage reads a page number, defaulting on absent or non-numeric input.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultPage
	}
	if n < 1 {
		return DefaultPage
	}
	return n
}

// ParseLimit reads a page size, defaulting on absent, non-numeric or
// non-positive input.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultLimit
	}
	return n
}

// Paginate converts a page number and size to an offset. Pages below one
// are treated as the first page so skip is never negative. An offset past
// the int range saturates to math.MaxInt, which no store can reach.
func Paginate(page, limit int) (skip, size int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt, limit
	}
	return (page - 1) * limit, limit
}

// PageMeta builds page metadata without items. The current page is not
// clamped to the page count; out of range pages simply have no items.
func PageMeta(totalCount, page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = totalCount / limit
		if totalCount%limit != 0 {
			totalPages++
		}
	}

	return Page{
		Items:       []models.Job{},
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
