package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCmd(t *testing.T) {
	out, err := execute(t, "resolve", "tx")
	require.NoError(t, err)
	assert.Equal(t, "48\tTexas\n", out)

	_, err = execute(t, "resolve", "Atlantis")
	assert.Error(t, err)
}

func TestExtractCmd(t *testing.T) {
	out, err := execute(t, "extract", "I'm 29 years old, single, in Oregon making $70k")
	require.NoError(t, err)

	var got struct {
		Profile models.DemographicProfile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 29, got.Profile.Age)
	assert.Equal(t, 70000.0, got.Profile.Income)
	assert.Equal(t, "Oregon", got.Profile.Location.State)
}

func TestPersonaCmd(t *testing.T) {
	out, err := execute(t, "persona", "--age", "25", "--income", "30000")
	require.NoError(t, err)

	var traits models.PersonaTraits
	require.NoError(t, json.Unmarshal([]byte(out), &traits))
	require.Len(t, traits.SpendingHabits, 7)
	assert.Equal(t, 40.0, traits.SpendingHabits[0].Percentage)
}

func TestPersonaCmdRejectsInvalidProfile(t *testing.T) {
	_, err := execute(t, "persona", "--education", "Trade School")
	assert.Error(t, err)
}

func TestCompareOffline(t *testing.T) {
	out, err := execute(t, "compare", "--offline", "--age", "40", "--income", "100000",
		"--education", models.EducationBachelors, "--marital", "married", "--household", "2")
	require.NoError(t, err)

	var set models.InsightSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.True(t, set.Available)
	assert.Equal(t, "Income is above the median income ($75,000) for this area", set.IncomeComparison)
}
