package search

import (
	"math"
	"strconv"
	"strings"

	"jobsearch/internal/search/predicate"
)

// Filters is the validated, normalized form of one search request.
// Empty strings and nil bounds mean the dimension is not constrained.
type Filters struct {
	Keyword  string
	Industry string
	// City is the canonical gazetteer entry, empty when the input did not resolve.
	City    string
	Region  string
	JobType string

	// Experience holds one token, or the parsed members of a comma list
	// when ExperienceList is set.
	Experience     []string
	ExperienceList bool

	SalaryMin *float64
	SalaryMax *float64

	Sort  predicate.Sort
	Page  int
	Limit int
}

// ParseExperience splits a comma-separated list into trimmed, non-empty
// tokens. A value without commas is a single token.
func ParseExperience(raw string) (values []string, list bool) {
	if !strings.Contains(raw, ",") {
		v := strings.TrimSpace(raw)
		if v == "" {
			return nil, false
		}
		return []string{v}, false
	}

	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	return values, true
}

// ParseAmount parses a salary bound; anything that is not a finite number
// is treated as absent.
func ParseAmount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
