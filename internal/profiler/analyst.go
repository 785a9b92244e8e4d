package profiler

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/cache"
	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

var (
	ErrInvalidCorrelationType = errors.New("Invalid correlation type")
	ErrMissingInput           = errors.New("missing required parameters")
	ErrInvalidResponse        = errors.New("invalid response format")
)

// Analysis names label metrics and cache keys.
const (
	AnalysisInsights     = "insights"
	AnalysisSummary      = "summary"
	AnalysisPrice        = "price_product"
	AnalysisSocialGraph  = "social_graph"
	AnalysisDayInLife    = "day_in_life"
	AnalysisXYComparison = "xy_comparison"
	AnalysisCorrelations = "correlations"
	AnalysisExtract      = "extract"
)

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

type Analyst struct {
	gen     Generator
	store   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type AnalystOption func(*Analyst)

// WithCache stores structured responses in store for ttl.
func WithCache(store cache.Store, ttl time.Duration) AnalystOption {
	return func(a *Analyst) {
		a.store = store
		a.ttl = ttl
	}
}

func WithLogger(logger *zap.Logger) AnalystOption {
	return func(a *Analyst) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) AnalystOption {
	return func(a *Analyst) { a.metrics = m }
}

func NewAnalyst(gen Generator, opts ...AnalystOption) *Analyst {
	a := &Analyst{gen: gen, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Insights streams financial feedback on the profile and its description to w.
func (a *Analyst) Insights(ctx context.Context, description string, profile models.DemographicProfile, w io.Writer) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: prompt", ErrMissingInput)
	}

	err := a.gen.Stream(ctx, insightsPrompt(description, profile), func(chunk string) error {
		_, err := io.WriteString(w, chunk)
		return err
	})
	a.record(AnalysisInsights, err)
	return err
}

// Summarize returns the same feedback as Insights in one piece.
func (a *Analyst) Summarize(ctx context.Context, description string, profile models.DemographicProfile) (string, error) {
	key := cacheKey(AnalysisSummary, profile, description)
	if data, ok := a.lookup(ctx, key); ok {
		var summary string
		if err := json.Unmarshal(data, &summary); err == nil {
			return summary, nil
		}
	}

	summary, err := a.gen.Generate(ctx, insightsPrompt(description, profile))
	a.record(AnalysisSummary, err)
	if err != nil {
		return "", err
	}

	a.save(ctx, key, summary)
	return summary, nil
}

func (a *Analyst) PriceProduct(ctx context.Context, profile models.DemographicProfile, product models.Product) (*models.PriceAnalysis, error) {
	if product.Name == "" {
		return nil, fmt.Errorf("%w: product", ErrMissingInput)
	}

	var out models.PriceAnalysis
	err := a.structured(ctx, AnalysisPrice, cacheKey(AnalysisPrice, profile, product), pricePrompt(profile, product), &out, func() error {
		if len(out.Visualizations.PriceDistribution.Prices) == 0 {
			out.Visualizations = DefaultPriceVisualizations(out.RecommendedPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DefaultPriceVisualizations spreads eleven price points across the
// recommended range with a uniform purchase probability and demand falling by
// a tenth per step.
func DefaultPriceVisualizations(r models.PriceRange) models.PriceVisualizations {
	const points = 11
	step := (r.Max - r.Min) / (points - 1)

	prices := make([]float64, points)
	probabilities := make([]float64, points)
	demand := make([]float64, points)
	for i := range prices {
		prices[i] = r.Min + float64(i)*step
		probabilities[i] = 1.0 / points
		demand[i] = math.Max(0, math.Round((1-float64(i)*0.1)*100)/100)
	}

	return models.PriceVisualizations{
		PriceDistribution: models.PriceDistribution{Prices: prices, Probabilities: probabilities},
		SensitivityCurve:  models.SensitivityCurve{Prices: append([]float64(nil), prices...), Demand: demand},
	}
}

func (a *Analyst) SocialGraph(ctx context.Context, profile models.DemographicProfile) (*models.SocialGraphAnalysis, error) {
	var out models.SocialGraphAnalysis
	if err := a.structured(ctx, AnalysisSocialGraph, cacheKey(AnalysisSocialGraph, profile), socialGraphPrompt(profile), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DayInLife needs occupation, education and state to describe a day.
func (a *Analyst) DayInLife(ctx context.Context, profile models.DemographicProfile) (*models.LifestyleAnalysis, error) {
	if profile.Occupation == "" || profile.Education == "" || profile.Location.State == "" {
		return nil, fmt.Errorf("%w: demographic fields", ErrMissingInput)
	}

	var raw lifestyleResponse
	if err := a.structured(ctx, AnalysisDayInLife, cacheKey(AnalysisDayInLife, profile), dayInLifePrompt(profile), &raw, nil); err != nil {
		return nil, err
	}

	schedule, err := scheduleText(raw.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule: %v", ErrInvalidResponse, err)
	}

	return &models.LifestyleAnalysis{
		Schedule:          schedule,
		MarketingInsights: raw.MarketingInsights,
		FinancialInsights: raw.FinancialInsights,
		LocationInsights:  raw.LocationInsights,
	}, nil
}

// lifestyleResponse accepts a schedule of any JSON type.
type lifestyleResponse struct {
	Schedule          json.RawMessage          `json:"schedule"`
	MarketingInsights models.MarketingInsights `json:"marketingInsights"`
	FinancialInsights models.FinancialInsights `json:"financialInsights"`
	LocationInsights  models.LocationInsights  `json:"locationInsights"`
}

// scheduleText returns a string schedule as is and any other value as its
// compact JSON encoding.
func scheduleText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// XYComparison streams comparison data for two metrics to w. The complete
// output must be a JSON object; ErrInvalidResponse is returned after the last
// chunk otherwise.
func (a *Analyst) XYComparison(ctx context.Context, profile models.DemographicProfile, xMetric, yMetric string, w io.Writer) error {
	if xMetric == "" || yMetric == "" {
		return fmt.Errorf("%w: xMetric and yMetric", ErrMissingInput)
	}

	err := a.streamJSON(ctx, comparisonPrompt(profile, xMetric, yMetric), w)
	a.record(AnalysisXYComparison, err)
	return err
}

// Correlations streams correlation data of the given type to w. Unknown types
// are rejected before the model is called.
func (a *Analyst) Correlations(ctx context.Context, profile models.DemographicProfile, kind string, w io.Writer) error {
	prompt, err := correlationPrompt(profile, kind)
	if err != nil {
		return err
	}

	err = a.streamJSON(ctx, prompt, w)
	a.record(AnalysisCorrelations, err)
	return err
}

// ExtractProfile asks the model for a complete profile described by text. The
// result is not validated.
func (a *Analyst) ExtractProfile(ctx context.Context, text string) (models.DemographicProfile, error) {
	if strings.TrimSpace(text) == "" {
		return models.DemographicProfile{}, fmt.Errorf("%w: text", ErrMissingInput)
	}

	out, err := a.gen.Generate(ctx, extractPrompt(text))
	a.record(AnalysisExtract, err)
	if err != nil {
		return models.DemographicProfile{}, err
	}

	var profile models.DemographicProfile
	if err := json.Unmarshal([]byte(cleanJSON(out)), &profile); err != nil {
		return models.DemographicProfile{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if status, ok := models.CanonicalMaritalStatus(profile.MaritalStatus); ok {
		profile.MaritalStatus = status
	}
	return profile, nil
}

func (a *Analyst) streamJSON(ctx context.Context, p Prompt, w io.Writer) error {
	var full strings.Builder
	err := a.gen.Stream(ctx, p, func(chunk string) error {
		full.WriteString(chunk)
		_, err := io.WriteString(w, chunk)
		return err
	})
	if err != nil {
		return err
	}
	if !json.Valid([]byte(full.String())) {
		return ErrInvalidResponse
	}
	return nil
}

// structured generates a JSON response for p, decodes it into out and runs
// finish before the result is cached.
func (a *Analyst) structured(ctx context.Context, analysis, key string, p Prompt, out any, finish func() error) error {
	if data, ok := a.lookup(ctx, key); ok {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
		a.logger.Warn("discarding undecodable cache entry", zap.String("analysis", analysis))
		reflect.ValueOf(out).Elem().SetZero()
	}

	text, err := a.gen.Generate(ctx, p)
	if err == nil {
		if jerr := json.Unmarshal([]byte(cleanJSON(text)), out); jerr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidResponse, jerr)
		}
	}
	if err == nil && finish != nil {
		err = finish()
	}
	a.record(analysis, err)
	if err != nil {
		return err
	}

	a.save(ctx, key, out)
	return nil
}

func (a *Analyst) lookup(ctx context.Context, key string) ([]byte, bool) {
	if a.store == nil {
		return nil, false
	}
	data, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	a.metrics.CacheLookup(ok)
	return data, ok
}

func (a *Analyst) save(ctx context.Context, key string, v any) {
	if a.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.store.Set(ctx, key, data, a.ttl); err != nil {
		a.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (a *Analyst) record(analysis string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		a.logger.Error("analysis failed", zap.String("analysis", analysis), zap.Error(err))
	}
	a.metrics.LLMRequest(analysis, outcome)
}

// cleanJSON strips a markdown code fence around a JSON object.
func cleanJSON(content string) string {
	if m := codeFence.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return strings.TrimSpace(content)
}

// cacheKey combines the analysis name, the profile digest and a digest of any
// extra inputs.
func cacheKey(analysis string, profile models.DemographicProfile, extra ...any) string {
	key := analysis + ":" + profile.Key()
	if len(extra) == 0 {
		return key
	}
	data, _ := json.Marshal(extra)
	sum := sha256.Sum256(data)
	return key + ":" + hex.EncodeToString(sum[:8])
}
