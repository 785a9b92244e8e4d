package models

type SpendingHabit struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
	Notes      string  `json:"notes"`
}

// Amount is the annual spend the percentage represents for the given income.
func (s SpendingHabit) Amount(income float64) float64 {
	return income * s.Percentage / 100
}

type PersonaTraits struct {
	Lifestyle      []string        `json:"lifestyle"`
	Interests      []string        `json:"interests"`
	FinancialGoals []string        `json:"financialGoals"`
	Challenges     []string        `json:"challenges"`
	Opportunities  []string        `json:"opportunities"`
	SpendingHabits []SpendingHabit `json:"spendingHabits"`
}
