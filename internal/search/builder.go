package search

import (
	"time"

	"jobsearch/internal/search/predicate"
	"jobsearch/internal/search/synonym"
)

// Builder turns Filters into a predicate. It is pure: the same filters and
// the same now always produce an identical tree.
type Builder struct {
	synonyms *synonym.Table
}

func NewBuilder(synonyms *synonym.Table) *Builder {
	return &Builder{synonyms: synonyms}
}

// Build returns a top-level conjunction. Keyword terms and the two salary
// bounds are grouped in their own nodes and never flattened into the root.
// The open-deadline term is always present.
func (b *Builder) Build(f Filters, now time.Time) predicate.Expr {
	var terms []predicate.Expr

	if f.Industry != "" {
		terms = append(terms, predicate.Eq{Field: predicate.FieldIndustry, Value: f.Industry})
	}
	if f.City != "" {
		terms = append(terms, predicate.Eq{Field: predicate.FieldCity, Value: f.City})
	}
	if f.Region != "" {
		terms = append(terms, predicate.Eq{Field: predicate.FieldRegion, Value: f.Region})
	}
	if f.JobType != "" {
		terms = append(terms, predicate.Eq{Field: predicate.FieldJobType, Value: f.JobType})
	}
	if e := experienceTerm(f); e != nil {
		terms = append(terms, e)
	}
	if e := salaryTerm(f.SalaryMin, f.SalaryMax); e != nil {
		terms = append(terms, e)
	}
	if e := b.keywordTerm(f.Keyword); e != nil {
		terms = append(terms, e)
	}

	terms = append(terms, predicate.After{Field: predicate.FieldDeadline, Time: now})

	return predicate.And{Terms: terms}
}

func experienceTerm(f Filters) predicate.Expr {
	if len(f.Experience) == 0 {
		return nil
	}
	if !f.ExperienceList {
		return predicate.Eq{Field: predicate.FieldExperience, Value: f.Experience[0]}
	}
	values := make([]string, len(f.Experience))
	copy(values, f.Experience)
	return predicate.In{Field: predicate.FieldExperience, Values: values}
}

// salaryTerm is an overlap test: the job band [min, max] intersects the
// requested band when job.max >= wantMin and job.min <= wantMax.
func salaryTerm(wantMin, wantMax *float64) predicate.Expr {
	var bounds []predicate.Expr
	if wantMin != nil {
		bounds = append(bounds, predicate.Compare{Field: predicate.FieldSalaryMax, Op: predicate.OpGte, Value: *wantMin})
	}
	if wantMax != nil {
		bounds = append(bounds, predicate.Compare{Field: predicate.FieldSalaryMin, Op: predicate.OpLte, Value: *wantMax})
	}

	switch len(bounds) {
	case 0:
		return nil
	case 1:
		return bounds[0]
	default:
		return predicate.And{Terms: bounds}
	}
}

func (b *Builder) keywordTerm(keyword string) predicate.Expr {
	expanded := b.synonyms.Expand(keyword)
	if len(expanded) == 0 {
		return nil
	}

	matches := make([]predicate.Expr, 0, len(expanded)*2)
	for _, term := range expanded {
		matches = append(matches,
			predicate.Contains{Field: predicate.FieldTitle, Term: term},
			predicate.Contains{Field: predicate.FieldDescription, Term: term},
		)
	}
	return predicate.Or{Terms: matches}
}
