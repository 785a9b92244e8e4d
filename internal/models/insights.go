package models

// InsightSet holds the human-readable comparison of a profile against its
// area baseline. When Available is false only the five basic comparisons are
// set and they say the comparison could not be made.
type InsightSet struct {
	Available bool `json:"available"`

	AgeComparison           string `json:"ageComparison"`
	IncomeComparison        string `json:"incomeComparison"`
	EducationComparison     string `json:"educationComparison"`
	HouseholdComparison     string `json:"householdComparison"`
	MaritalStatusComparison string `json:"maritalStatusComparison"`

	IncomePercentile string `json:"incomePercentile,omitempty"`
	IncomeVsState    string `json:"incomeVsState,omitempty"`
	MonthlyIncome    string `json:"monthlyIncome,omitempty"`

	EducationTrends   string `json:"educationTrends,omitempty"`
	EducationVsIncome string `json:"educationVsIncome,omitempty"`

	HouseholdType     string `json:"householdType,omitempty"`
	HouseholdVsMedian string `json:"householdVsMedian,omitempty"`

	LocationDemographics string `json:"locationDemographics,omitempty"`
	CostOfLiving         string `json:"costOfLiving,omitempty"`

	SuggestedSavings      string `json:"suggestedSavings,omitempty"`
	RetirementProjections string `json:"retirementProjections,omitempty"`
	InvestmentPotential   string `json:"investmentPotential,omitempty"`
}

type Insight struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Lines returns the populated insights in display order.
func (s InsightSet) Lines() []Insight {
	all := []Insight{
		{"ageComparison", s.AgeComparison},
		{"incomeComparison", s.IncomeComparison},
		{"educationComparison", s.EducationComparison},
		{"householdComparison", s.HouseholdComparison},
		{"maritalStatusComparison", s.MaritalStatusComparison},
		{"incomePercentile", s.IncomePercentile},
		{"incomeVsState", s.IncomeVsState},
		{"monthlyIncome", s.MonthlyIncome},
		{"educationTrends", s.EducationTrends},
		{"educationVsIncome", s.EducationVsIncome},
		{"householdType", s.HouseholdType},
		{"householdVsMedian", s.HouseholdVsMedian},
		{"locationDemographics", s.LocationDemographics},
		{"costOfLiving", s.CostOfLiving},
		{"suggestedSavings", s.SuggestedSavings},
		{"retirementProjections", s.RetirementProjections},
		{"investmentPotential", s.InvestmentPotential},
	}

	lines := make([]Insight, 0, len(all))
	for _, in := range all {
		if in.Text != "" {
			lines = append(lines, in)
		}
	}
	return lines
}
