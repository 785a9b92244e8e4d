package twin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/digital-twin-agent/internal/insights"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

type staticBaseline struct {
	err error
}

func (s staticBaseline) Baseline(context.Context, models.Location) (models.CensusBaseline, error) {
	return models.FallbackBaseline(), s.err
}

type fakeSummarizer struct {
	summary     string
	err         error
	description string
}

func (f *fakeSummarizer) Summarize(_ context.Context, description string, _ models.DemographicProfile) (string, error) {
	f.description = description
	return f.summary, f.err
}

type fakeExtractor struct {
	profile models.DemographicProfile
	err     error
}

func (f fakeExtractor) ExtractProfile(context.Context, string) (models.DemographicProfile, error) {
	return f.profile, f.err
}

func sampleProfile() models.DemographicProfile {
	return models.DemographicProfile{
		Age:           40,
		Income:        60000,
		Location:      models.Location{State: "CA", City: "Fresno"},
		Education:     models.EducationBachelors,
		Occupation:    "Teacher",
		HouseholdSize: 3,
		MaritalStatus: models.MaritalMarried,
	}
}

func newService(summarizer Summarizer, extractor ProfileExtractor) *Service {
	svc := NewService(insights.NewComparator(staticBaseline{}, nil), summarizer, extractor, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuildAssemblesReport(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "Solid footing."}
	svc := newService(summarizer, nil)

	report, err := svc.Build(context.Background(), sampleProfile(), "")
	require.NoError(t, err)

	assert.True(t, report.Insights.Available)
	assert.Equal(t, "Age is above the median age (35) for this area", report.Insights.AgeComparison)
	assert.Len(t, report.Persona.SpendingHabits, 7)
	assert.Equal(t, "Solid footing.", report.Summary)
	assert.Equal(t, defaultDescription, summarizer.description)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestBuildSummaryFailureDegrades(t *testing.T) {
	svc := newService(&fakeSummarizer{err: errors.New("model down")}, nil)

	report, err := svc.Build(context.Background(), sampleProfile(), "retiring soon")
	require.NoError(t, err)
	assert.Empty(t, report.Summary)
	assert.True(t, report.Insights.Available)
}

func TestBuildWithoutSummarizer(t *testing.T) {
	report, err := newService(nil, nil).Build(context.Background(), sampleProfile(), "")
	require.NoError(t, err)
	assert.Empty(t, report.Summary)
}

func TestBuildRejectsInvalidProfile(t *testing.T) {
	p := sampleProfile()
	p.HouseholdSize = 0

	_, err := newService(nil, nil).Build(context.Background(), p, "")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBuildUnavailableBaseline(t *testing.T) {
	svc := NewService(insights.NewComparator(staticBaseline{err: errors.New("offline")}, nil), nil, nil, nil, nil)

	report, err := svc.Build(context.Background(), sampleProfile(), "")
	require.NoError(t, err)
	assert.False(t, report.Insights.Available)
	assert.NotEmpty(t, report.Persona.Lifestyle)
}

func TestFromTextPrefersModel(t *testing.T) {
	svc := newService(nil, fakeExtractor{profile: sampleProfile()})

	got := svc.FromText(context.Background(), "a 40 year old teacher in California")
	assert.Equal(t, MethodModel, got.Method)
	assert.Equal(t, sampleProfile(), got.Profile)
	require.NotNil(t, got.Extracted.Age)
	assert.Equal(t, 40, *got.Extracted.Age)
}

func TestFromTextFallsBackToPatterns(t *testing.T) {
	invalid := sampleProfile()
	invalid.Education = "Trade School"

	for name, extractor := range map[string]ProfileExtractor{
		"none":    nil,
		"error":   fakeExtractor{err: errors.New("quota")},
		"invalid": fakeExtractor{profile: invalid},
	} {
		t.Run(name, func(t *testing.T) {
			got := newService(nil, extractor).FromText(context.Background(), "I'm 52 years old, married, living in Ohio")
			assert.Equal(t, MethodPattern, got.Method)
			assert.Equal(t, 52, got.Profile.Age)
			assert.Equal(t, models.MaritalMarried, got.Profile.MaritalStatus)
			assert.Equal(t, "Ohio", got.Profile.Location.State)
			assert.Greater(t, got.Confidence, 0.0)
		})
	}
}

func TestReportMarkdown(t *testing.T) {
	report, err := newService(&fakeSummarizer{summary: "Keep saving."}, nil).Build(context.Background(), sampleProfile(), "")
	require.NoError(t, err)

	md := report.Markdown()
	assert.Contains(t, md, "# Digital Twin Report")
	assert.Contains(t, md, "- **Income:** $60,000")
	assert.Contains(t, md, "- **Location:** Fresno, CA")
	assert.Contains(t, md, "| housing | 30% | $18,000 |")
	assert.Contains(t, md, report.Insights.AgeComparison)
	assert.Contains(t, md, "## Advisor Summary\n\nKeep saving.")
}
