package models

// Experience bands as stored on jobs.
const (
	ExperienceNone      = "Không yêu cầu"
	ExperienceUnder1    = "Dưới 1 năm"
	ExperienceOneToTwo  = "Từ 1-2 năm"
	ExperienceTwoToFive = "Từ 2-5 năm"
	ExperienceOver5     = "Trên 5 năm"
)

// Job types as stored on jobs.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeRemote     = "remote"
	JobTypeInternship = "internship"
	JobTypeContract   = "contract"
)

var FilterDisplayNames = map[string]string{
	FilterTypeKeyword:    "Từ khóa",
	FilterTypeIndustry:   "Ngành nghề",
	FilterTypeCity:       "Thành phố",
	FilterTypeRegion:     "Khu vực",
	FilterTypeJobType:    "Hình thức",
	FilterTypeExperience: "Kinh nghiệm",
	FilterTypeMinSalary:  "Lương từ",
	FilterTypeMaxSalary:  "Lương đến",
}

func ExperienceOptions() []string {
	return []string{
		ExperienceNone,
		ExperienceUnder1,
		ExperienceOneToTwo,
		ExperienceTwoToFive,
		ExperienceOver5,
	}
}

func JobTypeOptions() []string {
	return []string{
		JobTypeFullTime,
		JobTypePartTime,
		JobTypeRemote,
		JobTypeInternship,
		JobTypeContract,
	}
}

func IsValidFilterType(filterType string) bool {
	_, ok := FilterDisplayNames[filterType]
	return ok
}

func GetFilterDisplayName(filterType string) string {
	if name, ok := FilterDisplayNames[filterType]; ok {
		return name
	}
	return filterType
}
