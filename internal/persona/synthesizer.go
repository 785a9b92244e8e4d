// Package persona derives lifestyle traits and a spending distribution from a
// demographic profile using fixed bucket tables.
package persona

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// AgeCategory buckets age for traits and spending: young up to and including
// 30, middle age up to and including 50.
func AgeCategory(age int) string {
	switch {
	case age <= 30:
		return AgeYoung
	case age <= 50:
		return AgeMiddleAge
	default:
		return AgeSenior
	}
}

func IncomeCategory(income float64) string {
	switch {
	case income <= 40000:
		return IncomeLow
	case income <= 100000:
		return IncomeMiddle
	default:
		return IncomeHigh
	}
}

// LifeStage uses exclusive bounds, so 30 is already established and 50 is
// already later. This differs from AgeCategory on purpose.
func LifeStage(age int) string {
	switch {
	case age < 30:
		return StageEarly
	case age < 50:
		return StageEstablished
	default:
		return StageLater
	}
}

// Synthesize builds persona traits for profile. Spending percentages are
// computed per category and are not scaled to sum to 100.
func Synthesize(profile models.DemographicProfile) models.PersonaTraits {
	ageCategory := AgeCategory(profile.Age)
	incomeCategory := IncomeCategory(profile.Income)
	stage := stageProfiles[LifeStage(profile.Age)]

	var lifestyle []string
	lifestyle = append(lifestyle, ageTraits[ageCategory]...)
	lifestyle = append(lifestyle, incomeTraits[incomeCategory]...)
	lifestyle = append(lifestyle, educationTraits[profile.Education]...)

	habits := make([]models.SpendingHabit, 0, len(spendingCategories))
	for _, category := range spendingCategories {
		habits = append(habits, category.habit(incomeCategory, ageCategory))
	}

	return models.PersonaTraits{
		Lifestyle:      lifestyle,
		Interests:      clone(stage.interests),
		FinancialGoals: clone(stage.financialGoals),
		Challenges:     clone(stage.challenges),
		Opportunities:  clone(stage.opportunities),
		SpendingHabits: habits,
	}
}

func (c spendingCategory) habit(incomeCategory, ageCategory string) models.SpendingHabit {
	percentage := c.basePercentage
	var notes []string

	if mod, ok := c.income[incomeCategory]; ok && mod != 0 {
		percentage += mod
		notes = append(notes, fmt.Sprintf("%s due to %s income", direction(mod), incomeCategory))
	}
	if mod, ok := c.age[ageCategory]; ok && mod != 0 {
		percentage += mod
		notes = append(notes, fmt.Sprintf("%s due to %s age group", direction(mod), ageCategory))
	}

	return models.SpendingHabit{
		Category:   c.name,
		Percentage: percentage,
		Notes:      strings.Join(notes, "; "),
	}
}

func direction(mod float64) string {
	if mod > 0 {
		return "Increased"
	}
	return "Decreased"
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
