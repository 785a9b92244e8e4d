package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Education levels accepted on a profile.
const (
	EducationLessThanHighSchool = "Less than High School"
	EducationHighSchool         = "High School"
	EducationSomeCollege        = "Some College"
	EducationBachelors          = "Bachelor's Degree"
	EducationMasters            = "Master's Degree"
	EducationDoctoral           = "Doctoral Degree"
)

// Marital statuses accepted on a profile. Matching is case-insensitive.
const (
	MaritalSingle    = "Single"
	MaritalMarried   = "Married"
	MaritalDivorced  = "Divorced"
	MaritalWidowed   = "Widowed"
	MaritalSeparated = "Separated"
)

var KnownEducationLevels = []string{
	EducationLessThanHighSchool,
	EducationHighSchool,
	EducationSomeCollege,
	EducationBachelors,
	EducationMasters,
	EducationDoctoral,
}

var KnownMaritalStatuses = []string{
	MaritalSingle,
	MaritalMarried,
	MaritalDivorced,
	MaritalWidowed,
	MaritalSeparated,
}

type Location struct {
	State   string `json:"state"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

type DemographicProfile struct {
	Age           int      `json:"age"`
	Income        float64  `json:"income"`
	Location      Location `json:"location"`
	Education     string   `json:"education"`
	Occupation    string   `json:"occupation"`
	HouseholdSize int      `json:"householdSize"`
	MaritalStatus string   `json:"maritalStatus"`
}

// ValidationError lists every profile field that is missing or out of range.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid demographic profile: %s", strings.Join(e.Fields, "; "))
}

// Validate checks the ranges and enumerations a profile must satisfy before it
// is compared or synthesized.
func (p DemographicProfile) Validate() error {
	var problems []string

	if p.Age < 0 || p.Age > 120 {
		problems = append(problems, fmt.Sprintf("age %d must be between 0 and 120", p.Age))
	}
	if p.Income < 0 {
		problems = append(problems, fmt.Sprintf("income %.2f must not be negative", p.Income))
	}
	if !contains(KnownEducationLevels, p.Education, false) {
		problems = append(problems, fmt.Sprintf("education %q is not a known level", p.Education))
	}
	if p.HouseholdSize < 1 {
		problems = append(problems, fmt.Sprintf("householdSize %d must be at least 1", p.HouseholdSize))
	}
	if !contains(KnownMaritalStatuses, p.MaritalStatus, true) {
		problems = append(problems, fmt.Sprintf("maritalStatus %q is not a known status", p.MaritalStatus))
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

// Key returns a stable digest of the profile's serialized form. Any change to
// any field produces a different key.
func (p DemographicProfile) Key() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func contains(values []string, v string, foldCase bool) bool {
	for _, candidate := range values {
		if candidate == v || (foldCase && strings.EqualFold(candidate, v)) {
			return true
		}
	}
	return false
}

// CanonicalMaritalStatus returns the enumerated spelling of a marital status
// given in any case.
func CanonicalMaritalStatus(status string) (string, bool) {
	for _, known := range KnownMaritalStatuses {
		if strings.EqualFold(known, status) {
			return known, true
		}
	}
	return status, false
}
