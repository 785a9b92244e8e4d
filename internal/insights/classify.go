package insights

import (
	"strings"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// Baseline buckets for education.
const (
	BucketLessHighSchool = "lessHighSchool"
	BucketHighSchool     = "highSchool"
	BucketSomeCollege    = "someCollege"
	BucketBachelors      = "bachelors"
	BucketGraduate       = "graduate"
)

// Classification is a bucket lookup result. Matched is false when the input
// was unknown and Bucket holds the default.
type Classification struct {
	Matched bool
	Bucket  string
}

var educationBuckets = map[string]string{
	models.EducationLessThanHighSchool: BucketLessHighSchool,
	models.EducationHighSchool:         BucketHighSchool,
	models.EducationSomeCollege:        BucketSomeCollege,
	models.EducationBachelors:          BucketBachelors,
	models.EducationMasters:            BucketGraduate,
	models.EducationDoctoral:           BucketGraduate,
}

// ClassifyEducation maps an education level to its baseline bucket,
// defaulting to high school.
func ClassifyEducation(education string) Classification {
	if bucket, ok := educationBuckets[education]; ok {
		return Classification{Matched: true, Bucket: bucket}
	}
	return Classification{Bucket: BucketHighSchool}
}

// ClassifyMaritalStatus lowercases status and defaults to single.
func ClassifyMaritalStatus(status string) Classification {
	switch normalized := strings.ToLower(status); normalized {
	case "single", "married", "divorced", "widowed", "separated":
		return Classification{Matched: true, Bucket: normalized}
	default:
		return Classification{Bucket: "single"}
	}
}

func educationShare(levels models.EducationLevels, bucket string) float64 {
	switch bucket {
	case BucketLessHighSchool:
		return levels.LessHighSchool
	case BucketSomeCollege:
		return levels.SomeCollege
	case BucketBachelors:
		return levels.Bachelors
	case BucketGraduate:
		return levels.Graduate
	default:
		return levels.HighSchool
	}
}

// maritalShare returns 0 for a bucket the distribution does not carry.
func maritalShare(dist models.MaritalDistribution, bucket string) float64 {
	switch bucket {
	case "single":
		return dist.Single
	case "married":
		return dist.Married
	case "divorced":
		return dist.Divorced
	case "widowed":
		return dist.Widowed
	case "separated":
		return dist.Separated
	default:
		return 0
	}
}
