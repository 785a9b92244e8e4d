package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/digital-twin-agent/internal/geo"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

func sampleProfile() models.DemographicProfile {
	return models.DemographicProfile{
		Age:           40,
		Income:        100000,
		Location:      models.Location{State: "CA", City: "Fresno"},
		Education:     models.EducationBachelors,
		Occupation:    "Engineer",
		HouseholdSize: 3,
		MaritalStatus: models.MaritalMarried,
	}
}

func TestCompareFullSet(t *testing.T) {
	got := Compare(sampleProfile(), models.FallbackBaseline())

	assert.Equal(t, models.InsightSet{
		Available:               true,
		AgeComparison:           "Age is above the median age (35) for this area",
		IncomeComparison:        "Income is above the median income ($75,000) for this area",
		EducationComparison:     "25.0% of people in this area have a similar education level",
		HouseholdComparison:     "Average household size in this area is 2.5 people",
		MaritalStatusComparison: "45.0% of people in this area have the same marital status",
		IncomePercentile:        "The income is 33.3% above the median for this area",
		IncomeVsState:           "Monthly income of $8,333 suggests comfortable living standards for this area",
		MonthlyIncome:           "Monthly income breakdown: $8,333 gross, suggesting about $6,250 after taxes",
		EducationTrends:         "People with Bachelor's Degree education in this area typically earn below median income",
		EducationVsIncome:       "This income level is typical for this education level in this area",
		HouseholdType:           "This area has predominantly medium households",
		HouseholdVsMedian:       "The household profile aligns with family household patterns in this area",
		LocationDemographics:    "This area has a young population with moderate income levels",
		CostOfLiving:            "Based on median income, this area has moderate cost of living",
		SuggestedSavings:        "Recommended monthly savings: $1,667 (20% of income)",
		RetirementProjections:   "Retirement goal: $1,000,000 in 25 years",
		InvestmentPotential:     "Investment capacity: High based on income vs. area median",
	}, got)
	assert.Len(t, got.Lines(), 17)
}

func TestCompareEqualIncomeIsNotAbove(t *testing.T) {
	profile := sampleProfile()
	profile.Income = 75000

	got := Compare(profile, models.FallbackBaseline())

	assert.Equal(t, "Income is below the median income ($75,000) for this area", got.IncomeComparison)
	assert.Equal(t, "The income is 0.0% below the median for this area", got.IncomePercentile)
	assert.Contains(t, got.IncomeVsState, "tight")
	assert.Contains(t, got.EducationVsIncome, "atypical")
	assert.Equal(t, "Investment capacity: Limited based on income vs. area median", got.InvestmentPotential)
}

func TestCompareHouseholdTiers(t *testing.T) {
	tests := []struct {
		size float64
		want string
	}{
		{1.8, "small"},
		{2, "small"},
		{4, "medium"},
		{4.1, "large"},
	}

	for _, tt := range tests {
		baseline := models.FallbackBaseline()
		baseline.HouseholdSize = tt.size

		got := Compare(sampleProfile(), baseline)
		assert.Equal(t, "This area has predominantly "+tt.want+" households", got.HouseholdType)
	}
}

func TestCompareRetirementNeverNegative(t *testing.T) {
	profile := sampleProfile()
	profile.Age = 72

	got := Compare(profile, models.FallbackBaseline())

	assert.Equal(t, "Retirement goal: $1,000,000 in 0 years", got.RetirementProjections)
}

func TestCompareUnknownCategoriesUseDefaults(t *testing.T) {
	profile := sampleProfile()
	profile.Education = "Trade Certificate"
	profile.MaritalStatus = "Complicated"

	got := Compare(profile, models.FallbackBaseline())

	assert.Equal(t, "25.0% of people in this area have a similar education level", got.EducationComparison)
	assert.Equal(t, "30.0% of people in this area have the same marital status", got.MaritalStatusComparison)
}

func TestInvestmentPotential(t *testing.T) {
	assert.Equal(t, "High", InvestmentPotential(120001, 100000))
	assert.Equal(t, "Moderate", InvestmentPotential(120000, 100000))
	assert.Equal(t, "Moderate", InvestmentPotential(100001, 100000))
	assert.Equal(t, "Limited", InvestmentPotential(100000, 100000))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Classification{Matched: true, Bucket: BucketGraduate}, ClassifyEducation(models.EducationDoctoral))
	assert.Equal(t, Classification{Matched: true, Bucket: BucketSomeCollege}, ClassifyEducation(models.EducationSomeCollege))
	assert.Equal(t, Classification{Matched: false, Bucket: BucketHighSchool}, ClassifyEducation("bootcamp"))

	assert.Equal(t, Classification{Matched: true, Bucket: "married"}, ClassifyMaritalStatus("MARRIED"))
	assert.Equal(t, Classification{Matched: false, Bucket: "single"}, ClassifyMaritalStatus(""))
}

func TestUnavailable(t *testing.T) {
	got := Unavailable()

	assert.False(t, got.Available)
	lines := got.Lines()
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Contains(t, line.Text, "Unable to compare")
	}
}

type stubSource struct {
	baseline models.CensusBaseline
	err      error
}

func (s stubSource) Baseline(context.Context, models.Location) (models.CensusBaseline, error) {
	return s.baseline, s.err
}

func TestComparatorValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("compares against fetched baseline", func(t *testing.T) {
		c := NewComparator(stubSource{baseline: models.FallbackBaseline()}, nil)

		got := c.Validate(ctx, sampleProfile())

		assert.True(t, got.Available)
		assert.Equal(t, Compare(sampleProfile(), models.FallbackBaseline()), got)
	})

	t.Run("baseline errors degrade to generic insights", func(t *testing.T) {
		for _, err := range []error{
			errors.New("connection refused"),
			&geo.InvalidLocationError{Input: "Atlantis"},
		} {
			c := NewComparator(stubSource{err: err}, nil)
			assert.Equal(t, Unavailable(), c.Validate(ctx, sampleProfile()))
		}
	})
}
