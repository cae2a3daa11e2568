package models

import "time"

type User struct {
	ID             int64      `db:"id"`
	Username       *string    `db:"username"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	CreatedAt      time.Time  `db:"created_at"`
	LastCheck      *time.Time `db:"last_check"`
	CheckEnabled   bool       `db:"check_enabled"`
	NotifyInterval int        `db:"notify_interval"` // in min
}

// UserFilter is one saved search parameter. FilterType is the query
// parameter name, FilterValue its raw value.
type UserFilter struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	FilterType  string    `db:"filter_type"`
	FilterValue string    `db:"filter_value"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	FilterTypeKeyword    = "keyword"
	FilterTypeIndustry   = "industry"
	FilterTypeCity       = "city"
	FilterTypeRegion     = "region"
	FilterTypeJobType    = "jobType"
	FilterTypeExperience = "experience"
	FilterTypeMinSalary  = "minSalary"
	FilterTypeMaxSalary  = "maxSalary"
)

// FilterTypes lists saved filter types in display order.
func FilterTypes() []string {
	return []string{
		FilterTypeKeyword,
		FilterTypeIndustry,
		FilterTypeCity,
		FilterTypeRegion,
		FilterTypeJobType,
		FilterTypeExperience,
		FilterTypeMinSalary,
		FilterTypeMaxSalary,
	}
}
