package models

type EducationLevels struct {
	LessHighSchool float64 `json:"lessHighSchool"`
	HighSchool     float64 `json:"highSchool"`
	SomeCollege    float64 `json:"someCollege"`
	Bachelors      float64 `json:"bachelors"`
	Graduate       float64 `json:"graduate"`
}

type MaritalDistribution struct {
	Single    float64 `json:"single"`
	Married   float64 `json:"married"`
	Divorced  float64 `json:"divorced"`
	Widowed   float64 `json:"widowed"`
	Separated float64 `json:"separated"`
}

// CensusBaseline is the area-level reference a profile is compared against.
type CensusBaseline struct {
	MedianAge       float64             `json:"medianAge"`
	MedianIncome    float64             `json:"medianIncome"`
	EducationLevels EducationLevels     `json:"educationLevels"`
	HouseholdSize   float64             `json:"householdSize"`
	MaritalStatus   MaritalDistribution `json:"maritalStatus"`
}

// DefaultMaritalDistribution is used for every area; the ACS marital variable
// is fetched but not yet broken down.
func DefaultMaritalDistribution() MaritalDistribution {
	return MaritalDistribution{
		Single:    30,
		Married:   45,
		Divorced:  15,
		Widowed:   5,
		Separated: 5,
	}
}

// FallbackBaseline is returned whenever the statistical source is unavailable.
func FallbackBaseline() CensusBaseline {
	return CensusBaseline{
		MedianAge:    35,
		MedianIncome: 75000,
		EducationLevels: EducationLevels{
			LessHighSchool: 10,
			HighSchool:     25,
			SomeCollege:    30,
			Bachelors:      25,
			Graduate:       10,
		},
		HouseholdSize: 2.5,
		MaritalStatus: DefaultMaritalDistribution(),
	}
}
