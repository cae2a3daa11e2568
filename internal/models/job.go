package models

import (
	"time"

	"jobsearch/internal/search/predicate"
)

// Job is a job posting as the search subsystem reads it. The surrounding
// CRUD layer owns writes.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	CompanyName string    `json:"companyName,omitempty"`
	Location    Location  `json:"location"`
	Salary      Salary    `json:"salary"`
	JobType     string    `json:"jobType"`
	Experience  string    `json:"experience"`
	Deadline    time.Time `json:"deadline"`
	Views       int       `json:"views"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Location struct {
	City      string   `json:"city"`
	Region    string   `json:"region,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Salary bounds are optional; a job may publish only one side.
type Salary struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

func (j *Job) Text(f predicate.Field) (string, bool) {
	switch f {
	case predicate.FieldTitle:
		return j.Title, true
	case predicate.FieldDescription:
		return j.Description, true
	case predicate.FieldIndustry:
		return j.Industry, j.Industry != ""
	case predicate.FieldCity:
		return j.Location.City, j.Location.City != ""
	case predicate.FieldRegion:
		return j.Location.Region, j.Location.Region != ""
	case predicate.FieldJobType:
		return j.JobType, j.JobType != ""
	case predicate.FieldExperience:
		return j.Experience, j.Experience != ""
	}
	return "", false
}

func (j *Job) Number(f predicate.Field) (float64, bool) {
	switch f {
	case predicate.FieldSalaryMin:
		if j.Salary.Min == nil {
			return 0, false
		}
		return *j.Salary.Min, true
	case predicate.FieldSalaryMax:
		if j.Salary.Max == nil {
			return 0, false
		}
		return *j.Salary.Max, true
	case predicate.FieldViews:
		return float64(j.Views), true
	}
	return 0, false
}

func (j *Job) Time(f predicate.Field) (time.Time, bool) {
	switch f {
	case predicate.FieldDeadline:
		return j.Deadline, !j.Deadline.IsZero()
	case predicate.FieldCreatedAt:
		return j.CreatedAt, !j.CreatedAt.IsZero()
	}
	return time.Time{}, false
}

func Float64(v float64) *float64 {
	return &v
}
