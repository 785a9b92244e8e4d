package profiler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/BerylCAtieno/digital-twin-agent/internal/cache"
	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	chunks  []string
	err     error
	prompts []Prompt
}

func (f *fakeGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	return f.text, f.err
}

func (f *fakeGenerator) Stream(_ context.Context, p Prompt, onChunk func(string) error) error {
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	chunks, err := f.chunks, f.err
	f.mu.Unlock()

	if err != nil {
		return err
	}
	for _, c := range chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeGenerator) lastPrompt() Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[len(f.prompts)-1]
}

type AnalystSuite struct {
	suite.Suite
	gen     *fakeGenerator
	store   *cache.Memory
	metrics *metrics.Metrics
	analyst *Analyst
	profile models.DemographicProfile
}

func TestAnalystSuite(t *testing.T) {
	suite.Run(t, new(AnalystSuite))
}

func (s *AnalystSuite) SetupTest() {
	s.gen = &fakeGenerator{}
	s.store = cache.NewMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.analyst = NewAnalyst(s.gen, WithCache(s.store, 0), WithMetrics(s.metrics))
	s.profile = models.DemographicProfile{
		Age:           34,
		Income:        85000,
		Location:      models.Location{State: "Texas", City: "Austin"},
		Education:     models.EducationBachelors,
		Occupation:    "Software Engineer",
		HouseholdSize: 2,
		MaritalStatus: models.MaritalMarried,
	}
}

func (s *AnalystSuite) TestInsightsStreamsChunksInOrder() {
	s.gen.chunks = []string{"- Strong ", "income\n", "- Build savings"}

	var out strings.Builder
	err := s.analyst.Insights(context.Background(), "saving for a house", s.profile, &out)
	s.Require().NoError(err)
	s.Equal("- Strong income\n- Build savings", out.String())

	p := s.gen.lastPrompt()
	s.False(p.JSON)
	s.Contains(p.User, "Description: saving for a house")
	s.Contains(p.User, `"occupation": "Software Engineer"`)
}

func (s *AnalystSuite) TestInsightsRequiresDescription() {
	err := s.analyst.Insights(context.Background(), "  ", s.profile, &strings.Builder{})
	s.ErrorIs(err, ErrMissingInput)
	s.Equal(0, s.gen.calls())
}

func (s *AnalystSuite) TestPriceProductFillsDefaultVisualizations() {
	s.gen.text = `{"recommendedPrice":{"min":100,"max":200,"optimal":150},"recommendations":["bundle it"]}`

	got, err := s.analyst.PriceProduct(context.Background(), s.profile, models.Product{
		Name:             "Smart Mug",
		Category:         "Kitchen",
		TargetPrice:      129.99,
		Features:         []string{"heated", "app"},
		CompetitorPrices: []float64{99, 149.5},
	})
	s.Require().NoError(err)

	dist := got.Visualizations.PriceDistribution
	s.Require().Len(dist.Prices, 11)
	s.Equal(100.0, dist.Prices[0])
	s.Equal(150.0, dist.Prices[5])
	s.Equal(200.0, dist.Prices[10])
	s.InDelta(1.0/11, dist.Probabilities[3], 1e-12)

	curve := got.Visualizations.SensitivityCurve
	s.Equal(dist.Prices, curve.Prices)
	s.Equal(1.0, curve.Demand[0])
	s.Equal(0.7, curve.Demand[3])
	s.Equal(0.0, curve.Demand[10])

	p := s.gen.lastPrompt()
	s.True(p.JSON)
	s.Contains(p.User, "Target Price: $129.99")
	s.Contains(p.User, "Competitor Prices: $99, $149.50")
	s.Contains(p.User, "Location: Austin, Texas")
}

func (s *AnalystSuite) TestPriceProductKeepsModelVisualizations() {
	s.gen.text = `{"recommendedPrice":{"min":1,"max":2,"optimal":1.5},
		"visualizations":{"priceDistribution":{"prices":[1,2],"probabilities":[0.4,0.6]},
		"sensitivityCurve":{"prices":[1,2],"demand":[0.9,0.5]}}}`

	got, err := s.analyst.PriceProduct(context.Background(), s.profile, models.Product{Name: "Pen"})
	s.Require().NoError(err)
	s.Equal([]float64{0.4, 0.6}, got.Visualizations.PriceDistribution.Probabilities)
}

func (s *AnalystSuite) TestStructuredResponsesAreCachedPerProfile() {
	s.gen.text = `{"socialGraph":{"nodes":[{"id":"roommate","label":"Roommate","type":"primary","influence":7}]}}`

	first, err := s.analyst.SocialGraph(context.Background(), s.profile)
	s.Require().NoError(err)
	second, err := s.analyst.SocialGraph(context.Background(), s.profile)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.gen.calls())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))

	changed := s.profile
	changed.Income++
	_, err = s.analyst.SocialGraph(context.Background(), changed)
	s.Require().NoError(err)
	s.Equal(2, s.gen.calls())
}

func (s *AnalystSuite) TestUndecodableCacheEntryLeavesNoResidue() {
	ctx := context.Background()
	key := cacheKey(AnalysisSocialGraph, s.profile)
	stale := `{"socialGraph":{"nodes":[{"id":"stale"}]},"metrics":"not an object"}`
	s.Require().NoError(s.store.Set(ctx, key, []byte(stale), 0))

	s.gen.text = `{"recommendations":{"networkGrowth":["join a club"]}}`
	got, err := s.analyst.SocialGraph(ctx, s.profile)
	s.Require().NoError(err)

	s.Empty(got.SocialGraph.Nodes)
	s.Equal([]string{"join a club"}, got.Recommendations.NetworkGrowth)
	s.Equal(1, s.gen.calls())
}

func (s *AnalystSuite) TestDayInLifeStripsFencesAndEncodesSchedule() {
	s.gen.text = "Here you go:\n```json\n{\"schedule\": {\"7am\": \"run\"}, \"financialInsights\": {\"riskTolerance\": \"moderate\"}}\n```"

	got, err := s.analyst.DayInLife(context.Background(), s.profile)
	s.Require().NoError(err)
	s.Equal(`{"7am":"run"}`, got.Schedule)
	s.Equal("moderate", got.FinancialInsights.RiskTolerance)
	s.Contains(s.gen.lastPrompt().User, "34 year old Software Engineer in Texas, Austin with an income of $85000")
	s.Contains(s.gen.lastPrompt().User, "They are Married.")
}

func (s *AnalystSuite) TestDayInLifeKeepsStringSchedule() {
	s.gen.text = `{"schedule": "## Morning\n- Coffee"}`

	got, err := s.analyst.DayInLife(context.Background(), s.profile)
	s.Require().NoError(err)
	s.Equal("## Morning\n- Coffee", got.Schedule)
}

func (s *AnalystSuite) TestDayInLifeRequiresFields() {
	p := s.profile
	p.Occupation = ""
	_, err := s.analyst.DayInLife(context.Background(), p)
	s.ErrorIs(err, ErrMissingInput)
}

func (s *AnalystSuite) TestInvalidJSONIsReportedAndNotCached() {
	s.gen.text = "not json"

	_, err := s.analyst.SocialGraph(context.Background(), s.profile)
	s.ErrorIs(err, ErrInvalidResponse)
	s.Equal(0, s.store.Len())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LLMRequests.WithLabelValues(AnalysisSocialGraph, "error")))
}

func (s *AnalystSuite) TestXYComparisonValidatesFullOutput() {
	s.gen.chunks = []string{`{"x":[1,2],`, `"y":[3,4]}`}

	var out strings.Builder
	s.Require().NoError(s.analyst.XYComparison(context.Background(), s.profile, "income", "savings", &out))
	s.Equal(`{"x":[1,2],"y":[3,4]}`, out.String())
	s.Contains(s.gen.lastPrompt().User, "between income and savings")

	s.gen.chunks = []string{`{"x":[1,2],`}
	out.Reset()
	err := s.analyst.XYComparison(context.Background(), s.profile, "income", "savings", &out)
	s.ErrorIs(err, ErrInvalidResponse)
	s.Equal(`{"x":[1,2],`, out.String())
}

func (s *AnalystSuite) TestXYComparisonRequiresMetrics() {
	err := s.analyst.XYComparison(context.Background(), s.profile, "income", "", &strings.Builder{})
	s.ErrorIs(err, ErrMissingInput)
}

func (s *AnalystSuite) TestCorrelationsPromptPerType() {
	s.gen.chunks = []string{`{}`}

	expect := map[string]string{
		CorrelationSpendingVsMarket:  "market volatility",
		CorrelationIncomeVsSpending:  "someone in Texas",
		CorrelationPortfolioVsRisk:   "for a married 34 year old",
		CorrelationLocationVsFinance: "income of $85000 and Bachelor's Degree education",
	}
	for _, kind := range CorrelationTypes {
		s.Require().NoError(s.analyst.Correlations(context.Background(), s.profile, kind, &strings.Builder{}))
		s.Contains(s.gen.lastPrompt().User, expect[kind], kind)
	}
}

func (s *AnalystSuite) TestCorrelationsRejectsUnknownType() {
	err := s.analyst.Correlations(context.Background(), s.profile, "age_vs_height", &strings.Builder{})
	s.ErrorIs(err, ErrInvalidCorrelationType)
	s.Equal(0, s.gen.calls())
}

func (s *AnalystSuite) TestExtractProfile() {
	s.gen.text = `{"age":29,"income":62000,"location":{"state":"Ohio","city":"Columbus","zipCode":""},
		"education":"Master's Degree","occupation":"Nurse","householdSize":1,"maritalStatus":"single"}`

	got, err := s.analyst.ExtractProfile(context.Background(), "a 29 year old nurse in Columbus")
	s.Require().NoError(err)
	s.Equal(29, got.Age)
	s.Equal("Ohio", got.Location.State)
	s.Equal(models.MaritalSingle, got.MaritalStatus)
	s.NoError(got.Validate())
	s.True(s.gen.lastPrompt().JSON)
}

func (s *AnalystSuite) TestSummarizeCachesAndPropagatesErrors() {
	s.gen.text = "You are doing fine."

	got, err := s.analyst.Summarize(context.Background(), "overview", s.profile)
	s.Require().NoError(err)
	s.Equal("You are doing fine.", got)

	_, err = s.analyst.Summarize(context.Background(), "overview", s.profile)
	s.Require().NoError(err)
	s.Equal(1, s.gen.calls())

	s.gen.err = errors.New("quota exceeded")
	_, err = s.analyst.Summarize(context.Background(), "something else", s.profile)
	s.EqualError(err, "quota exceeded")
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}\n"))
}

func TestScheduleText(t *testing.T) {
	got, err := scheduleText([]byte(`[ "wake", "work" ]`))
	require.NoError(t, err)
	assert.Equal(t, `["wake","work"]`, got)

	got, err = scheduleText(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCacheKeyIncludesExtras(t *testing.T) {
	p := models.DemographicProfile{Age: 40}
	assert.Equal(t, cacheKey("a", p), cacheKey("a", p))
	assert.NotEqual(t, cacheKey("a", p), cacheKey("b", p))
	assert.NotEqual(t, cacheKey("a", p, "x"), cacheKey("a", p, "y"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "85000", formatNumber(85000))
	assert.Equal(t, "129.99", formatNumber(129.99))
}
