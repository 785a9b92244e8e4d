package nlp

import "github.com/BerylCAtieno/digital-twin-agent/internal/models"

// Literal defaults for anything Extract leaves unset.
const (
	DefaultAge           = 35
	DefaultMaritalStatus = models.MaritalSingle
	DefaultEducation     = models.EducationHighSchool
	DefaultIncome        = 50000
	DefaultHouseholdSize = 1
)

// InferDemographics turns free text into a complete profile. Every field
// Extract could not set falls back to a fixed default.
func InferDemographics(text string) models.DemographicProfile {
	extracted := Extract(text)

	profile := models.DemographicProfile{
		Age:           DefaultAge,
		Income:        DefaultIncome,
		Education:     DefaultEducation,
		MaritalStatus: DefaultMaritalStatus,
		HouseholdSize: DefaultHouseholdSize,
	}

	if extracted.Age != nil {
		profile.Age = *extracted.Age
	}
	if extracted.Income != nil {
		profile.Income = *extracted.Income
	}
	if extracted.Education != nil {
		profile.Education = *extracted.Education
	}
	if extracted.MaritalStatus != nil {
		profile.MaritalStatus, _ = models.CanonicalMaritalStatus(*extracted.MaritalStatus)
	}
	if extracted.Location.State != nil {
		profile.Location.State = *extracted.Location.State
	}
	if extracted.Location.City != nil {
		profile.Location.City = *extracted.Location.City
	}
	if extracted.Location.ZipCode != nil {
		profile.Location.ZipCode = *extracted.Location.ZipCode
	}

	return profile
}
