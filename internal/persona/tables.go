package persona

import "github.com/BerylCAtieno/digital-twin-agent/internal/models"

// Age buckets used for lifestyle traits and spending modifiers.
const (
	AgeYoung     = "young"
	AgeMiddleAge = "middleAge"
	AgeSenior    = "senior"
)

const (
	IncomeLow    = "low"
	IncomeMiddle = "middle"
	IncomeHigh   = "high"
)

var ageTraits = map[string][]string{
	AgeYoung:     {"active", "social", "tech-savvy", "career-focused"},
	AgeMiddleAge: {"family-oriented", "career-established", "health-conscious"},
	AgeSenior:    {"retirement-focused", "leisure-oriented", "health-prioritizing"},
}

var incomeTraits = map[string][]string{
	IncomeLow:    {"budget-conscious", "value-seeking", "practical"},
	IncomeMiddle: {"balanced-spending", "saving-oriented", "quality-focused"},
	IncomeHigh:   {"luxury-oriented", "investment-focused", "experience-seeking"},
}

// Doctoral Degree has no entry and contributes no traits.
var educationTraits = map[string][]string{
	models.EducationLessThanHighSchool: {"practical-skills", "hands-on-learning"},
	models.EducationHighSchool:         {"traditional-values", "practical-minded"},
	models.EducationSomeCollege:        {"skill-developing", "career-transitioning"},
	models.EducationBachelors:          {"professionally-oriented", "career-focused"},
	models.EducationMasters:            {"academically-inclined", "specialized-expertise"},
}

// Life stages pick the interest, goal, challenge and opportunity lists.
const (
	StageEarly       = "early"
	StageEstablished = "established"
	StageLater       = "later"
)

type stageProfile struct {
	interests      []string
	financialGoals []string
	challenges     []string
	opportunities  []string
}

var stageProfiles = map[string]stageProfile{
	StageEarly: {
		interests:      []string{"social media", "technology", "entertainment"},
		financialGoals: []string{"building credit", "starting investments", "career growth"},
		challenges:     []string{"student debt", "building credit history", "entry-level income"},
		opportunities:  []string{"high growth potential", "tech-savvy advantage", "time to compound investments"},
	},
	StageEstablished: {
		interests:      []string{"home improvement", "family activities", "career development"},
		financialGoals: []string{"retirement savings", "college funds", "mortgage management"},
		challenges:     []string{"work-life balance", "family expenses", "career advancement"},
		opportunities:  []string{"peak earning years", "investment growth", "career advancement"},
	},
	StageLater: {
		interests:      []string{"travel", "health & wellness", "hobbies"},
		financialGoals: []string{"retirement planning", "estate planning", "healthcare savings"},
		challenges:     []string{"healthcare costs", "fixed income management", "market volatility"},
		opportunities:  []string{"retirement benefits", "investment experience", "time for leisure"},
	},
}

// spendingCategory modifiers only list the buckets that move the base; a
// bucket with no key contributes nothing.
type spendingCategory struct {
	name           string
	basePercentage float64
	income         map[string]float64
	age            map[string]float64
}

var spendingCategories = []spendingCategory{
	{
		name:           "housing",
		basePercentage: 30,
		income:         map[string]float64{IncomeLow: 5, IncomeHigh: -5},
		age:            map[string]float64{AgeYoung: 5, AgeSenior: -5},
	},
	{
		name:           "transportation",
		basePercentage: 15,
		income:         map[string]float64{IncomeLow: 2, IncomeHigh: -2},
		age:            map[string]float64{AgeYoung: 3, AgeSenior: -3},
	},
	{
		name:           "food",
		basePercentage: 12,
		income:         map[string]float64{IncomeLow: 3, IncomeHigh: -2},
		age:            map[string]float64{AgeYoung: 2, AgeSenior: -1},
	},
	{
		name:           "healthcare",
		basePercentage: 8,
		income:         map[string]float64{IncomeLow: 2, IncomeHigh: -1},
		age:            map[string]float64{AgeYoung: -3, AgeSenior: 5},
	},
	{
		name:           "entertainment",
		basePercentage: 10,
		income:         map[string]float64{IncomeLow: -3, IncomeHigh: 5},
		age:            map[string]float64{AgeYoung: 5, AgeSenior: -3},
	},
	{
		name:           "savings",
		basePercentage: 15,
		income:         map[string]float64{IncomeLow: -5, IncomeHigh: 10},
		age:            map[string]float64{AgeYoung: -2, AgeSenior: 5},
	},
	{
		name:           "other",
		basePercentage: 10,
		income:         map[string]float64{IncomeLow: -2, IncomeHigh: 3},
		age:            map[string]float64{AgeYoung: 2, AgeSenior: -1},
	},
}
