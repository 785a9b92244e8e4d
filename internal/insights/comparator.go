// Package insights compares a demographic profile with its area baseline and
// renders the result as readable sentences.
package insights

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

const (
	savingsRate          = 0.20
	afterTaxRate         = 0.75
	retirementAge        = 65
	retirementMultiplier = 10
)

var printer = message.NewPrinter(language.English)

// Compare derives the full insight set for profile against baseline.
func Compare(profile models.DemographicProfile, baseline models.CensusBaseline) models.InsightSet {
	income := profile.Income
	median := baseline.MedianIncome

	incomeDiff := (income - median) / median * 100
	monthlyIncome := income / 12
	suggestedSavings := monthlyIncome * savingsRate
	yearsToRetirement := max(0, retirementAge-profile.Age)
	retirementGoal := income * retirementMultiplier

	householdType := "large"
	switch {
	case baseline.HouseholdSize <= 2:
		householdType = "small"
	case baseline.HouseholdSize <= 4:
		householdType = "medium"
	}

	eduShare := educationShare(baseline.EducationLevels, ClassifyEducation(profile.Education).Bucket)
	maritalPct := maritalShare(baseline.MaritalStatus, ClassifyMaritalStatus(profile.MaritalStatus).Bucket)

	return models.InsightSet{
		Available: true,

		AgeComparison: fmt.Sprintf("Age is %s the median age (%s) for this area",
			aboveBelow(float64(profile.Age) > baseline.MedianAge), plain(baseline.MedianAge)),
		IncomeComparison: fmt.Sprintf("Income is %s the median income ($%s) for this area",
			aboveBelow(income > median), whole(median)),
		EducationComparison:     fmt.Sprintf("%.1f%% of people in this area have a similar education level", eduShare),
		HouseholdComparison:     fmt.Sprintf("Average household size in this area is %s people", plain(baseline.HouseholdSize)),
		MaritalStatusComparison: fmt.Sprintf("%.1f%% of people in this area have the same marital status", maritalPct),

		IncomePercentile: fmt.Sprintf("The income is %.1f%% %s the median for this area",
			math.Abs(incomeDiff), aboveBelow(incomeDiff > 0)),
		IncomeVsState: fmt.Sprintf("Monthly income of $%s suggests %s living standards for this area",
			whole(monthlyIncome), tier(incomeDiff > 20, incomeDiff > 0, "comfortable", "moderate", "tight")),
		MonthlyIncome: fmt.Sprintf("Monthly income breakdown: $%s gross, suggesting about $%s after taxes",
			whole(monthlyIncome), whole(monthlyIncome*afterTaxRate)),

		EducationTrends: fmt.Sprintf("People with %s education in this area typically earn %s median income",
			profile.Education, aboveBelow(eduShare > 50)),
		EducationVsIncome: fmt.Sprintf("This income level is %s for this education level in this area",
			pick(income > median, "typical", "atypical")),

		HouseholdType: fmt.Sprintf("This area has predominantly %s households", householdType),
		HouseholdVsMedian: fmt.Sprintf("The household profile aligns with %s household patterns in this area",
			pick(baseline.HouseholdSize > 2, "family", "non-family")),

		LocationDemographics: fmt.Sprintf("This area has a %s population with %s income levels",
			pick(baseline.MedianAge > 40, "mature", "young"), pick(median > 75000, "high", "moderate")),
		CostOfLiving: fmt.Sprintf("Based on median income, this area has %s cost of living",
			tier(median > 75000, median > 50000, "high", "moderate", "low")),

		SuggestedSavings:      fmt.Sprintf("Recommended monthly savings: $%s (20%% of income)", whole(suggestedSavings)),
		RetirementProjections: fmt.Sprintf("Retirement goal: $%s in %d years", whole(retirementGoal), yearsToRetirement),
		InvestmentPotential: fmt.Sprintf("Investment capacity: %s based on income vs. area median",
			InvestmentPotential(income, median)),
	}
}

// InvestmentPotential grades income against the area median.
func InvestmentPotential(income, medianIncome float64) string {
	return tier(income > medianIncome*1.2, income > medianIncome, "High", "Moderate", "Limited")
}

// Unavailable is the reduced set returned when no baseline could be obtained.
func Unavailable() models.InsightSet {
	return models.InsightSet{
		AgeComparison:           "Unable to compare age with area statistics",
		IncomeComparison:        "Unable to compare income with area statistics",
		EducationComparison:     "Unable to compare education with area statistics",
		HouseholdComparison:     "Unable to compare household size with area statistics",
		MaritalStatusComparison: "Unable to compare marital status with area statistics",
	}
}

// BaselineSource supplies the area baseline for a location.
type BaselineSource interface {
	Baseline(ctx context.Context, loc models.Location) (models.CensusBaseline, error)
}

type Comparator struct {
	source BaselineSource
	logger *zap.Logger
}

func NewComparator(source BaselineSource, logger *zap.Logger) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{source: source, logger: logger}
}

// Validate fetches the baseline for the profile's location and compares. It
// never fails: any baseline error produces Unavailable().
func (c *Comparator) Validate(ctx context.Context, profile models.DemographicProfile) models.InsightSet {
	baseline, err := c.source.Baseline(ctx, profile.Location)
	if err != nil {
		c.logger.Warn("baseline unavailable, returning generic insights",
			zap.String("state", profile.Location.State),
			zap.Error(err))
		return Unavailable()
	}
	return Compare(profile, baseline)
}

func aboveBelow(above bool) string {
	return pick(above, "above", "below")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func tier(first, second bool, a, b, c string) string {
	switch {
	case first:
		return a
	case second:
		return b
	default:
		return c
	}
}

// whole formats v rounded to a whole number with thousands separators.
func whole(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
