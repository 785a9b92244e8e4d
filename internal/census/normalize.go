package census

import (
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// ACS5 variables requested for every baseline.
const (
	VarName                = "NAME"
	VarMedianAge           = "B01002_001E"
	VarMedianIncome        = "B19013_001E"
	VarEducationTotal      = "B15003_001E"
	VarNoSchooling         = "B15003_002E"
	VarHighSchool          = "B15003_017E"
	VarBachelors           = "B15003_022E"
	VarMasters             = "B15003_023E"
	VarTotalHouseholds     = "B11001_001E"
	VarFamilyHouseholds    = "B11001_002E"
	VarNonFamilyHouseholds = "B11001_007E"
	VarMaritalStatus       = "B12001_001E"
)

var Variables = []string{
	VarName,
	VarMedianAge,
	VarMedianIncome,
	VarEducationTotal,
	VarNoSchooling,
	VarHighSchool,
	VarBachelors,
	VarMasters,
	VarTotalHouseholds,
	VarFamilyHouseholds,
	VarNonFamilyHouseholds,
	VarMaritalStatus,
}

// No ACS variable is wired for "some college" yet.
const someCollegePercent = 30

// Average occupants assumed per household type when estimating household size.
const (
	peoplePerFamilyHousehold    = 2.5
	peoplePerNonFamilyHousehold = 1.2
)

// Normalize turns the Census header row and first data row into a baseline.
// It is total: missing, unparseable or zero cells fall back to the values of
// models.FallbackBaseline, and fewer than two rows yields that baseline as is.
func Normalize(rows [][]string) models.CensusBaseline {
	fallback := models.FallbackBaseline()
	if len(rows) < 2 {
		return fallback
	}

	t := table{header: rows[0], row: rows[1]}

	educationTotal := orDefault(t.value(VarEducationTotal), 1)
	totalHouseholds := orDefault(t.value(VarTotalHouseholds), 1)
	familyHouseholds := orDefault(t.value(VarFamilyHouseholds), 0)
	nonFamilyHouseholds := orDefault(t.value(VarNonFamilyHouseholds), 0)

	share := func(variable string, def float64) float64 {
		return orDefault(t.value(variable)/educationTotal*100, def)
	}

	// Household size is an estimate from household type counts, not an
	// ACS-reported figure.
	estimatedPeople := familyHouseholds*peoplePerFamilyHousehold + nonFamilyHouseholds*peoplePerNonFamilyHousehold
	householdSize := orDefault(roundTenth(estimatedPeople/totalHouseholds), fallback.HouseholdSize)

	return models.CensusBaseline{
		MedianAge:    orDefault(t.value(VarMedianAge), fallback.MedianAge),
		MedianIncome: orDefault(t.value(VarMedianIncome), fallback.MedianIncome),
		EducationLevels: models.EducationLevels{
			LessHighSchool: share(VarNoSchooling, fallback.EducationLevels.LessHighSchool),
			HighSchool:     share(VarHighSchool, fallback.EducationLevels.HighSchool),
			SomeCollege:    someCollegePercent,
			Bachelors:      share(VarBachelors, fallback.EducationLevels.Bachelors),
			Graduate:       share(VarMasters, fallback.EducationLevels.Graduate),
		},
		HouseholdSize: householdSize,
		// TODO: derive from the B12001 breakdown instead of fixed shares.
		MaritalStatus: models.DefaultMaritalDistribution(),
	}
}

type table struct {
	header []string
	row    []string
}

// value returns NaN when the column is absent or the cell does not parse.
func (t table) value(variable string) float64 {
	for i, h := range t.header {
		if !strings.HasPrefix(h, variable) {
			continue
		}
		if i >= len(t.row) {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(t.row[i]), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	return math.NaN()
}

// orDefault treats NaN, infinities and zero as missing.
func orDefault(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return def
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
