package search

import (
	"strings"

	"jobsearch/internal/search/predicate"
)

// DefaultSort is newest first.
var DefaultSort = predicate.Sort{Field: predicate.FieldCreatedAt, Desc: true}

// ResolveSort maps a sort token to a field and direction. A leading "-"
// means descending. Field names are not checked here; stores decide what
// they can order by.
func ResolveSort(token string) predicate.Sort {
	token = strings.TrimSpace(token)
	if token == "" {
		return DefaultSort
	}

	if rest, ok := strings.CutPrefix(token, "-"); ok {
		if rest == "" {
			return DefaultSort
		}
		return predicate.Sort{Field: predicate.Field(rest), Desc: true}
	}

	return predicate.Sort{Field: predicate.Field(token)}
}
