// Package nlp pulls demographic fields out of free text with regular
// expressions and keyword tables, filling gaps with age-based guesses.
package nlp

import (
	"strconv"
	"strings"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// inferencePenalty is applied to the confidence once per inferred field.
const inferencePenalty = 0.8

const directFields = 5

// Extract reads age, state, marital status, education and income from text.
// It never fails; fields it cannot find stay nil.
func Extract(text string) models.ExtractedInfo {
	var info models.ExtractedInfo

	if age, ok := extractAge(text); ok {
		info.Age = &age
	}
	if state, ok := extractState(text); ok {
		info.Location.State = &state
	}
	if status, ok := bestKeywordMatch(text, maritalKeywords); ok {
		info.MaritalStatus = &status
	}
	if education, ok := bestKeywordMatch(text, educationKeywords); ok {
		info.Education = &education
	}
	if income, ok := extractIncome(text); ok {
		info.Income = &income
	}

	matched := 0
	for _, found := range []bool{
		info.Age != nil,
		info.Location.State != nil,
		info.MaritalStatus != nil,
		info.Education != nil,
		info.Income != nil,
	} {
		if found {
			matched++
		}
	}
	info.Confidence = float64(matched) / directFields

	backfill(&info)

	return info
}

// backfill guesses missing fields from the age. Order matters: each guess
// compounds the confidence penalty.
// A zero age counts as unknown.
func backfill(info *models.ExtractedInfo) {
	if info.Age == nil || *info.Age <= 0 {
		return
	}
	age := *info.Age

	if info.Education == nil && age > 65 {
		education := models.EducationHighSchool
		info.Education = &education
		info.Confidence *= inferencePenalty
	}

	if info.Income == nil {
		income := incomeForAge(age)
		info.Income = &income
		info.Confidence *= inferencePenalty
	}

	// Ages 35 through 75 get no marital guess.
	if info.MaritalStatus == nil {
		var status string
		switch {
		case age < 25:
			status = "single"
		case age < 35:
			status = "married"
		case age > 75:
			status = "widowed"
		}
		if status != "" {
			info.MaritalStatus = &status
			info.Confidence *= inferencePenalty
		}
	}
}

func incomeForAge(age int) float64 {
	switch {
	case age < 25:
		return 30000
	case age < 35:
		return 50000
	case age < 50:
		return 75000
	case age < 65:
		return 85000
	default:
		return 45000
	}
}

func extractAge(text string) (int, bool) {
	for _, pattern := range agePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return age, true
	}
	return 0, false
}

func extractState(text string) (string, bool) {
	for _, pattern := range statePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.Join(strings.Fields(m[1]), " "), true
		}
	}
	return "", false
}

func extractIncome(text string) (float64, bool) {
	for _, pattern := range incomePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		income, err := normalizeIncome(m[1], m[2])
		if err != nil {
			continue
		}
		return income, true
	}
	return 0, false
}

func normalizeIncome(amount, suffix string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
	if err != nil {
		return 0, err
	}

	suffix = strings.ToLower(suffix)
	switch {
	case suffix == "":
	case strings.Contains(suffix, "k") || strings.Contains(suffix, "thousand"):
		value *= 1000
	case strings.Contains(suffix, "m") || strings.Contains(suffix, "million"):
		value *= 1000000
	}
	return value, nil
}

// bestKeywordMatch scores every keyword found in text by its share of the
// text length and keeps the strictly highest score.
func bestKeywordMatch(text string, groups []keywordGroup) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)

	best, bestScore := "", 0.0
	for _, group := range groups {
		for _, keyword := range group.keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			score := float64(len(keyword)) / float64(len(text))
			if score > bestScore {
				best, bestScore = group.value, score
			}
		}
	}
	return best, bestScore > 0
}
