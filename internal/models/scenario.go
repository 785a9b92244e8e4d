package models

import (
	"errors"
	"fmt"
)

const (
	ScenarioIncomeChange   = "income_change"
	ScenarioLocationChange = "location_change"
)

var ErrUnknownScenario = errors.New("unknown scenario type")

// ScenarioAdjustment is a single declarative change applied to a copy of a
// profile for what-if analysis.
type ScenarioAdjustment struct {
	Type                   string  `json:"type"`
	IncomeMultiplier       float64 `json:"incomeMultiplier,omitempty"`
	NewState               string  `json:"newState,omitempty"`
	CostOfLivingAdjustment float64 `json:"costOfLivingAdjustment,omitempty"`
}

// ApplyScenario derives a new profile from p; p itself is never modified.
func ApplyScenario(p DemographicProfile, adj ScenarioAdjustment) (DemographicProfile, error) {
	derived := p

	switch adj.Type {
	case ScenarioIncomeChange:
		derived.Income = p.Income * multiplierOrOne(adj.IncomeMultiplier)
	case ScenarioLocationChange:
		if adj.NewState == "" {
			return DemographicProfile{}, fmt.Errorf("location_change requires newState")
		}
		derived.Location.State = adj.NewState
		derived.Income = p.Income * multiplierOrOne(adj.CostOfLivingAdjustment)
	default:
		return DemographicProfile{}, fmt.Errorf("%w: %q", ErrUnknownScenario, adj.Type)
	}

	return derived, nil
}

// Sliders default to 1 when left untouched.
func multiplierOrOne(m float64) float64 {
	if m == 0 {
		return 1
	}
	return m
}
